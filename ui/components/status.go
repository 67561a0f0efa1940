package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/glassdash/internal/models"
	"github.com/Rorical/glassdash/ui/styles"
)

// RenderStatus draws the status bar with the newest toast right-aligned
func RenderStatus(status string, toasts []models.Toast, loading bool, loadingDots int, width int) string {
	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}

	if len(toasts) == 0 {
		return styles.StatusStyle(width).Render(statusContent)
	}

	newest := toasts[len(toasts)-1]
	toast := styles.ToastStyle(newest.Kind).Render(newest.Message)
	if more := len(toasts) - 1; more > 0 {
		toast = styles.HelpStyle().Render("+"+strconv.Itoa(more)+" ") + toast
	}

	left := styles.StatusStyle(max(width-lipgloss.Width(toast), 0)).Render(statusContent)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, toast)
}

// RenderHelp is the key binding hint line
func RenderHelp(focus models.Pane, modalOpen bool, width int) string {
	var help string
	switch {
	case modalOpen:
		help = "enter/ctrl+a analyze • esc close • ctrl+x dismiss"
	case focus == models.PaneChat:
		help = "enter send • esc/tab gallery • ctrl+x dismiss • ctrl+c quit"
	default:
		help = "←↑↓→ move • enter open • s start/stop • c capture • r refresh • tab chat • q quit"
	}
	return styles.HelpStyle().Width(width).Render(help)
}
