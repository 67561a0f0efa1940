package components

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// RenderImage draws img with upper half blocks, two pixel rows per line
func RenderImage(img image.Image) string {
	if img == nil {
		return ""
	}

	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top, _ := colorful.MakeColor(img.At(x, y))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(top.Hex()))
			if y+1 < b.Max.Y {
				bottom, _ := colorful.MakeColor(img.At(x, y+1))
				style = style.Background(lipgloss.Color(bottom.Hex()))
			}
			sb.WriteString(style.Render("▀"))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
