package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/glassdash/internal/models"
	"github.com/Rorical/glassdash/internal/utils"
	"github.com/Rorical/glassdash/ui/styles"
)

const (
	QuestionPlaceholder = "Ask a question about this image (optional)"

	maxModalWidth = 72
)

// Rect is a cell-based box on screen
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func modalWidth(termWidth int) int {
	return max(20, min(termWidth-4, maxModalWidth))
}

// RenderModal draws the image inspection modal for the selected image
func RenderModal(m *models.AppModel) string {
	snap := m.Dashboard
	width := modalWidth(m.Width)
	inner := width - 6

	title := snap.Selected
	if img, ok := snap.SelectedImage(); ok && img.Timestamp != "" {
		title += " - " + img.Timestamp
	}

	sections := []string{
		utils.BoldStyle().Render(title),
		styles.HelpStyle().Render(snap.Preview.URL),
		"",
		renderPreview(snap.Preview, m.LoadingDots),
		"",
		RenderInput(m.Question, QuestionPlaceholder, true, inner),
		renderAnalyzeButton(snap.Busy.Analyze),
		"",
		renderAnalysis(snap.Analysis, m.LoadingDots, inner),
	}

	return styles.ModalStyle(width).Render(strings.Join(sections, "\n"))
}

func renderPreview(p models.Preview, loadingDots int) string {
	switch {
	case p.Loading:
		return styles.HelpStyle().Render("Loading preview" + strings.Repeat(".", loadingDots))
	case p.Err != "":
		return styles.AnalysisErrorStyle().Render(p.Err)
	case p.Image != nil:
		return RenderImage(p.Image)
	default:
		return ""
	}
}

func renderAnalyzeButton(busy bool) string {
	label := "[enter] Analyze Image"
	if busy {
		label = "Analyzing..."
	}
	return styles.ButtonStyle(busy).Render(label)
}

func renderAnalysis(a models.Analysis, loadingDots, width int) string {
	switch a.Phase {
	case models.AnalysisLoading:
		return styles.HelpStyle().Render("Analyzing image" + strings.Repeat(".", loadingDots))
	case models.AnalysisDone:
		return lipgloss.NewStyle().Width(width).Render(utils.FormatAnalysis(a.Text, utils.Terminal()))
	case models.AnalysisFailed:
		return styles.AnalysisErrorStyle().Width(width).Render(a.Text)
	default:
		return styles.HelpStyle().Render("Ask a question or press enter for a general description.")
	}
}

// modalAreaHeight leaves the last line for the status bar
func modalAreaHeight(m *models.AppModel) int {
	return max(m.Height-1, 1)
}

// ModalRect is where PlaceModal puts the modal box
func ModalRect(m *models.AppModel) Rect {
	view := RenderModal(m)
	w, h := lipgloss.Width(view), lipgloss.Height(view)
	return Rect{
		X: max(0, (m.Width-w)/2),
		Y: max(0, (modalAreaHeight(m)-h)/2),
		W: w,
		H: h,
	}
}

// PlaceModal centres the modal above the status bar
func PlaceModal(m *models.AppModel) string {
	return lipgloss.Place(m.Width, modalAreaHeight(m), lipgloss.Center, lipgloss.Center, RenderModal(m))
}
