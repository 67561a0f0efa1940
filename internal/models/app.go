package models

// Busy marks controls whose request is still in flight
type Busy struct {
	Toggle  bool
	Capture bool
	Images  bool
	Analyze bool
	Chat    bool
}

// Snapshot is a copy of the core dashboard state pushed to the UI.
// Version increases with every state change so stale pushes can be dropped.
type Snapshot struct {
	Version  uint64
	Camera   CameraState
	Images   []CapturedImage
	Selected string
	Analysis Analysis
	Preview  Preview
	Messages []Message
	Busy     Busy
}

// ModalOpen reports whether an image is selected
func (s Snapshot) ModalOpen() bool {
	return s.Selected != ""
}

// SelectedImage returns the selected image from the current list
func (s Snapshot) SelectedImage() (CapturedImage, bool) {
	for _, img := range s.Images {
		if img.Filename == s.Selected {
			return img, true
		}
	}
	return CapturedImage{}, false
}

type Pane int

const (
	PaneGallery Pane = iota
	PaneChat
)

// AppModel represents the UI state - only local UI concerns plus the last
// snapshot received from the core
type AppModel struct {
	Dashboard   Snapshot // Last state pushed by core
	ChatInput   string   // Chat input field
	Question    string   // Image modal question field
	Focus       Pane     // Focused pane while no modal is open
	Cursor      int      // Selected gallery cell
	Toasts      []Toast  // Visible notifications, oldest first
	NextToastID int
	Status      string // Status bar text
	LoadingDots int    // Animation counter for loading dots and the pulse
	Width       int    // Terminal width
	Height      int    // Terminal height
}
