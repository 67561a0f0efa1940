package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/glassdash/internal/eventbus"
	"github.com/Rorical/glassdash/internal/models"
	"github.com/Rorical/glassdash/ui/components"
)

const (
	ToastDuration = 5 * time.Second
	maxToasts     = 5
)

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

type TickMsg time.Time

// ToastExpiredMsg evicts one toast once its timer fires
type ToastExpiredMsg struct {
	ID int
}

// HandleKeyMsg handles keyboard input. With the modal open every key goes to
// the modal; otherwise keys go to the focused pane.
func HandleKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+x":
		appModel.Toasts = nil
		return nil
	}

	if appModel.Dashboard.ModalOpen() {
		handleModalKey(appModel, keyMsg, eb)
		return nil
	}

	if keyMsg.String() == "tab" {
		if appModel.Focus == models.PaneGallery {
			appModel.Focus = models.PaneChat
		} else {
			appModel.Focus = models.PaneGallery
		}
		return nil
	}

	if appModel.Focus == models.PaneChat {
		return handleChatKey(appModel, keyMsg, eb)
	}
	return handleGalleryKey(appModel, keyMsg, eb)
}

func handleGalleryKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	images := appModel.Dashboard.Images
	layout := components.NewLayout(appModel.Width, appModel.Height)
	cols := components.GalleryColumns(layout.GalleryInnerWidth())

	switch keyMsg.String() {
	case "q":
		return tea.Quit
	case "left", "h":
		moveCursor(appModel, -1)
	case "right", "l":
		moveCursor(appModel, 1)
	case "up", "k":
		moveCursor(appModel, -cols)
	case "down", "j":
		moveCursor(appModel, cols)
	case "enter":
		if appModel.Cursor < len(images) {
			appModel.Question = ""
			send(appModel, eb, eventbus.OpenImageEvent{Filename: images[appModel.Cursor].Filename})
		}
	case "s":
		if !appModel.Dashboard.Busy.Toggle {
			send(appModel, eb, eventbus.ToggleCameraEvent{})
		}
	case "c":
		if !appModel.Dashboard.Busy.Capture {
			send(appModel, eb, eventbus.CaptureEvent{})
		}
	case "r":
		send(appModel, eb, eventbus.RefreshStatusEvent{})
		send(appModel, eb, eventbus.LoadImagesEvent{})
	}
	return nil
}

func moveCursor(appModel *models.AppModel, delta int) {
	next := appModel.Cursor + delta
	if next < 0 || next >= len(appModel.Dashboard.Images) {
		return
	}
	appModel.Cursor = next
}

func handleChatKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.Type {
	case tea.KeyEsc:
		appModel.Focus = models.PaneGallery
	case tea.KeyEnter:
		return submitChat(appModel, eb)
	default:
		appModel.ChatInput = editText(appModel.ChatInput, keyMsg)
	}
	return nil
}

// submitChat leaves the input untouched when there is nothing to send or a
// reply is still pending
func submitChat(appModel *models.AppModel, eb *eventbus.EventBus) tea.Cmd {
	if strings.TrimSpace(appModel.ChatInput) == "" {
		return nil
	}
	if appModel.Dashboard.Busy.Chat {
		return AddToast(appModel, models.ToastWarning, "Still waiting for the assistant")
	}
	if send(appModel, eb, eventbus.SendMessageEvent{Message: appModel.ChatInput}) {
		appModel.ChatInput = ""
	}
	return nil
}

func handleModalKey(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) {
	switch keyMsg.String() {
	case "esc":
		send(appModel, eb, eventbus.CloseImageEvent{})
	case "enter", "ctrl+a":
		if !appModel.Dashboard.Busy.Analyze {
			send(appModel, eb, eventbus.AnalyzeImageEvent{Question: appModel.Question})
		}
	default:
		appModel.Question = editText(appModel.Question, keyMsg)
	}
}

// editText applies typing and backspace to a single-line input
func editText(value string, keyMsg tea.KeyMsg) string {
	switch keyMsg.Type {
	case tea.KeyRunes:
		return value + string(keyMsg.Runes)
	case tea.KeySpace:
		return value + " "
	case tea.KeyBackspace:
		runes := []rune(value)
		if len(runes) > 0 {
			return string(runes[:len(runes)-1])
		}
	}
	return value
}

// HandleMouseMsg closes the modal on a left click outside its box
func HandleMouseMsg(appModel *models.AppModel, mouseMsg tea.MouseMsg, eb *eventbus.EventBus) {
	if !appModel.Dashboard.ModalOpen() {
		return
	}
	if mouseMsg.Action != tea.MouseActionPress || mouseMsg.Button != tea.MouseButtonLeft {
		return
	}
	if components.ModalRect(appModel).Contains(mouseMsg.X, mouseMsg.Y) {
		return
	}
	send(appModel, eb, eventbus.CloseImageEvent{})
}

// send reports bus failures in the status bar and returns false
func send(appModel *models.AppModel, eb *eventbus.EventBus, event eventbus.UIEvent) bool {
	if err := eb.SendToCore(event); err != nil {
		appModel.Status = "Error sending event: " + err.Error()
		return false
	}
	return true
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		// Pushes come from several goroutines; never go back in time
		if event.Snapshot.Version < appModel.Dashboard.Version {
			return nil
		}
		appModel.Dashboard = event.Snapshot
		clampCursor(appModel)
		appModel.Status = statusText(event.Snapshot)
	case eventbus.NotificationEvent:
		return AddToast(appModel, event.Kind, event.Message)
	case eventbus.ChatRejectedEvent:
		if appModel.ChatInput == "" {
			appModel.ChatInput = event.Message
		}
	}
	return nil
}

func clampCursor(appModel *models.AppModel) {
	n := len(appModel.Dashboard.Images)
	if appModel.Cursor >= n {
		appModel.Cursor = n - 1
	}
	if appModel.Cursor < 0 {
		appModel.Cursor = 0
	}
}

func statusText(snap models.Snapshot) string {
	switch n := len(snap.Images); n {
	case 0:
		return "No images"
	case 1:
		return "1 image"
	default:
		return fmt.Sprintf("%d images", n)
	}
}

// AddToast shows a notification and schedules its removal
func AddToast(appModel *models.AppModel, kind models.ToastKind, message string) tea.Cmd {
	appModel.NextToastID++
	id := appModel.NextToastID

	appModel.Toasts = append(appModel.Toasts, models.Toast{
		ID:        id,
		Kind:      kind,
		Message:   message,
		ExpiresAt: time.Now().Add(ToastDuration),
	})
	if len(appModel.Toasts) > maxToasts {
		appModel.Toasts = appModel.Toasts[len(appModel.Toasts)-maxToasts:]
	}

	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

func HandleToastExpired(appModel *models.AppModel, msg ToastExpiredMsg) {
	for i, t := range appModel.Toasts {
		if t.ID == msg.ID {
			appModel.Toasts = append(appModel.Toasts[:i], appModel.Toasts[i+1:]...)
			return
		}
	}
}

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

// HandleTickMsg drives the loading dots and the running indicator pulse
func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	return TickCmd()
}
