package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/glassdash/internal/models"
	"github.com/Rorical/glassdash/ui/styles"
)

// RenderCameraBar is the header: title, status indicator and the camera
// controls. Busy controls are greyed out and relabelled.
func RenderCameraBar(camera models.CameraState, busy models.Busy, pulse bool, width int) string {
	status := camera.Status()

	indicator := styles.IndicatorStyle(status, pulse).Render("●")
	label := indicator + " " + status.Label()

	toggleLabel := status.ToggleLabel()
	if busy.Toggle {
		toggleLabel = "Starting..."
		if status.ToggleAction() == models.ActionStop {
			toggleLabel = "Stopping..."
		}
	} else {
		toggleLabel = "[s] " + toggleLabel
	}
	toggle := styles.ToggleButtonStyle(status.ToggleAction(), busy.Toggle).Render(toggleLabel)

	captureLabel := "[c] Capture"
	if busy.Capture {
		captureLabel = "Capturing..."
	}
	capture := styles.ButtonStyle(busy.Capture).Render(captureLabel)

	refreshLabel := "[r] Refresh"
	if busy.Images {
		refreshLabel = "Loading..."
	}
	refresh := styles.ButtonStyle(busy.Images).Render(refreshLabel)

	content := lipgloss.JoinHorizontal(lipgloss.Center,
		"GlassDash  ", label, "   ", toggle, " ", capture, " ", refresh)
	return styles.HeaderStyle(width).Render(content)
}
