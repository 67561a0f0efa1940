package models

// CameraState is refreshed from the backend and never persisted
type CameraState struct {
	Running   bool
	Connected bool
}

// CameraStatus is the three-way view of CameraState the UI renders
type CameraStatus int

const (
	CameraDisconnected CameraStatus = iota
	CameraConnected
	CameraRunning
)

// CameraAction is what the toggle control does for a given status
type CameraAction string

const (
	ActionStart CameraAction = "start"
	ActionStop  CameraAction = "stop"
)

// Status maps the raw flags onto exactly one CameraStatus. Running wins over
// connected so a running camera reporting connected=false still shows running.
func (s CameraState) Status() CameraStatus {
	switch {
	case s.Running:
		return CameraRunning
	case s.Connected:
		return CameraConnected
	default:
		return CameraDisconnected
	}
}

func (s CameraStatus) Label() string {
	switch s {
	case CameraRunning:
		return "Camera Running"
	case CameraConnected:
		return "Camera Connected"
	default:
		return "Camera Disconnected"
	}
}

func (s CameraStatus) ToggleAction() CameraAction {
	if s == CameraRunning {
		return ActionStop
	}
	return ActionStart
}

func (s CameraStatus) ToggleLabel() string {
	if s.ToggleAction() == ActionStop {
		return "Stop Camera"
	}
	return "Start Camera"
}
