package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Rorical/glassdash/internal/models"
	"github.com/Rorical/glassdash/ui/styles"
)

const (
	EmptyGalleryText = "No images captured yet"

	cellWidth = 26 // inner width, the border adds two columns
)

// GalleryColumns is the number of cells per row that fit in width
func GalleryColumns(width int) int {
	return max(1, width/(cellWidth+2))
}

// GalleryCells renders one cell per image, in list order
func GalleryCells(images []models.CapturedImage, cursor int, focused bool) []string {
	cells := make([]string, len(images))
	for i, img := range images {
		cells[i] = renderCell(img, focused && i == cursor)
	}
	return cells
}

func renderCell(img models.CapturedImage, selected bool) string {
	inner := cellWidth - 2
	lines := []string{
		runewidth.Truncate(img.Filename, inner, "…"),
		styles.CellTimestampStyle().Render(runewidth.Truncate(img.Timestamp, inner, "…")),
	}
	if img.Size > 0 {
		lines = append(lines, styles.HelpStyle().Render(FormatSize(img.Size)))
	}
	return styles.CellStyle(cellWidth, selected).Render(strings.Join(lines, "\n"))
}

// RenderGallery lays the cells out in a grid, scrolled so the row holding
// the cursor is visible
func RenderGallery(images []models.CapturedImage, cursor int, focused bool, width, height int) string {
	if len(images) == 0 {
		return styles.PlaceholderStyle().Width(width).Align(lipgloss.Center).Render(EmptyGalleryText)
	}

	cols := GalleryColumns(width)
	cells := GalleryCells(images, cursor, focused)

	var rows []string
	for i := 0; i < len(cells); i += cols {
		end := min(i+cols, len(cells))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}

	rowHeight := max(1, lipgloss.Height(rows[0]))
	visible := max(1, height/rowHeight)
	first := 0
	if cursorRow := cursor / cols; cursorRow >= visible {
		first = cursorRow - visible + 1
	}
	last := min(first+visible, len(rows))

	return lipgloss.JoinVertical(lipgloss.Left, rows[first:last]...)
}

// FormatSize prints a byte count the way file browsers do
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
