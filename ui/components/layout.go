package components

// Layout splits the terminal into the two panes. Header, help and status
// take one line each.
type Layout struct {
	GalleryWidth int
	ChatWidth    int
	BodyHeight   int
}

const chromeLines = 3

func NewLayout(width, height int) Layout {
	gallery := width * 3 / 5
	return Layout{
		GalleryWidth: gallery,
		ChatWidth:    width - gallery,
		BodyHeight:   max(height-chromeLines, 3),
	}
}

// GalleryInnerWidth is the room for cells inside the pane border
func (l Layout) GalleryInnerWidth() int {
	return max(l.GalleryWidth-2, 1)
}

func (l Layout) ChatInnerWidth() int {
	return max(l.ChatWidth-2, 1)
}
