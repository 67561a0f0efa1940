package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/glassdash/internal/dispatcher"
	"github.com/Rorical/glassdash/internal/models"
	"github.com/Rorical/glassdash/internal/update"
	"github.com/Rorical/glassdash/ui/components"
	"github.com/Rorical/glassdash/ui/styles"
)

const chatPlaceholder = "Ask about what your glasses have seen..."

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	cmd := update.HandleUpdate(&m.appModel, msg, m.dispatcher.GetEventBus())
	return m, cmd
}

func (m *AppModel) View() string {
	am := &m.appModel
	if am.Width == 0 {
		return "Loading..."
	}

	snap := am.Dashboard
	status := components.RenderStatus(am.Status, am.Toasts, busy(snap.Busy), am.LoadingDots, am.Width)

	if snap.ModalOpen() {
		return components.PlaceModal(am) + "\n" + status
	}

	layout := components.NewLayout(am.Width, am.Height)
	pulse := am.LoadingDots%2 == 1

	header := components.RenderCameraBar(snap.Camera, snap.Busy, pulse, am.Width)

	galleryFocused := am.Focus == models.PaneGallery
	gallery := styles.PaneStyle(layout.GalleryWidth, layout.BodyHeight, galleryFocused).Render(
		components.RenderGallery(snap.Images, am.Cursor, galleryFocused,
			layout.GalleryInnerWidth(), layout.BodyHeight-2))

	chatFocused := am.Focus == models.PaneChat
	input := components.RenderInput(am.ChatInput, chatPlaceholder, chatFocused, layout.ChatInnerWidth())
	messagesHeight := layout.BodyHeight - 2 - lipgloss.Height(input)
	chat := styles.PaneStyle(layout.ChatWidth, layout.BodyHeight, chatFocused).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Height(max(messagesHeight, 0)).Render(
				components.RenderMessages(snap.Messages, layout.ChatInnerWidth(), messagesHeight, am.LoadingDots)),
			input))

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, gallery, chat))
	b.WriteString("\n")
	b.WriteString(components.RenderHelp(am.Focus, false, am.Width))
	b.WriteString("\n")
	b.WriteString(status)

	return b.String()
}

func busy(b models.Busy) bool {
	return b.Toggle || b.Capture || b.Images || b.Analyze || b.Chat
}
