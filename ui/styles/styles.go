package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/glassdash/internal/models"
)

var (
	colorGreen  = lipgloss.Color("42")
	colorDimGrn = lipgloss.Color("28")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("196")
	colorBlue   = lipgloss.Color("33")
	colorAccent = lipgloss.Color("62")
	colorMuted  = lipgloss.Color("241")
)

func InputStyle(width int, focused bool) lipgloss.Style {
	border := colorMuted
	if focused {
		border = colorAccent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(width-4, 1))
}

func PlaceholderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorMuted).
		Italic(true)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func HeaderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("236")).
		Padding(0, 1).
		Width(width)
}

func PaneStyle(width, height int, focused bool) lipgloss.Style {
	border := colorMuted
	if focused {
		border = colorAccent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-2, 1)).
		Height(max(height-2, 1))
}

func UserStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1).
		MarginLeft(2)
}

func AssistantStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("214")).
		Padding(0, 1).
		MarginLeft(2)
}

// ErrorMessageStyle is an assistant message carrying an error
func ErrorMessageStyle() lipgloss.Style {
	return AssistantStyle().
		Foreground(colorRed).
		BorderForeground(colorRed)
}

func TypingStyle() lipgloss.Style {
	return AssistantStyle().
		Foreground(colorMuted).
		Italic(true)
}

func ProgramStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 2).
		Align(lipgloss.Center)
}

func TimestampStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginLeft(3)
}

// IndicatorColor is the status dot colour. A running camera pulses between
// two greens on alternate ticks.
func IndicatorColor(status models.CameraStatus, pulse bool) lipgloss.Color {
	switch status {
	case models.CameraRunning:
		if pulse {
			return colorDimGrn
		}
		return colorGreen
	case models.CameraConnected:
		return colorYellow
	default:
		return colorRed
	}
}

func IndicatorStyle(status models.CameraStatus, pulse bool) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(IndicatorColor(status, pulse))
}

// ToggleButtonStyle is red for stop and blue for start
func ToggleButtonStyle(action models.CameraAction, busy bool) lipgloss.Style {
	bg := colorBlue
	if action == models.ActionStop {
		bg = colorRed
	}
	if busy {
		bg = colorMuted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(bg).
		Padding(0, 1)
}

func ButtonStyle(busy bool) lipgloss.Style {
	bg := colorAccent
	if busy {
		bg = colorMuted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(bg).
		Padding(0, 1)
}

func CellStyle(width int, selected bool) lipgloss.Style {
	border := lipgloss.Color("238")
	if selected {
		border = colorAccent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width)
}

func CellTimestampStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))
}

func ModalStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Width(width)
}

func AnalysisErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("203"))
}

func ToastStyle(kind models.ToastKind) lipgloss.Style {
	var bg lipgloss.Color
	switch kind {
	case models.ToastSuccess:
		bg = lipgloss.Color("28")
	case models.ToastWarning:
		bg = lipgloss.Color("130")
	case models.ToastError:
		bg = lipgloss.Color("124")
	default:
		bg = lipgloss.Color("24")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(bg).
		Padding(0, 1)
}

func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorMuted)
}
