package components

import (
	"github.com/Rorical/glassdash/ui/styles"
)

const cursor = "█"

// RenderInput draws a single-line text input. The placeholder is shown while
// the value is empty.
func RenderInput(value, placeholder string, focused bool, width int) string {
	inputStyle := styles.InputStyle(width, focused)

	content := value
	if content == "" && !focused {
		content = styles.PlaceholderStyle().Render(placeholder)
	} else if focused {
		content += cursor
	}
	return inputStyle.Render(content)
}
