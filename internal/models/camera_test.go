package models

import "testing"

func TestCameraStatusMapping(t *testing.T) {
	tests := []struct {
		state  CameraState
		status CameraStatus
		label  string
		toggle string
		action CameraAction
	}{
		{CameraState{Running: true, Connected: true}, CameraRunning, "Camera Running", "Stop Camera", ActionStop},
		{CameraState{Running: true, Connected: false}, CameraRunning, "Camera Running", "Stop Camera", ActionStop},
		{CameraState{Running: false, Connected: true}, CameraConnected, "Camera Connected", "Start Camera", ActionStart},
		{CameraState{Running: false, Connected: false}, CameraDisconnected, "Camera Disconnected", "Start Camera", ActionStart},
	}

	for _, tt := range tests {
		got := tt.state.Status()
		if got != tt.status {
			t.Errorf("%+v: expected status %d, got %d", tt.state, tt.status, got)
		}
		if got.Label() != tt.label {
			t.Errorf("%+v: expected label %q, got %q", tt.state, tt.label, got.Label())
		}
		if got.ToggleLabel() != tt.toggle {
			t.Errorf("%+v: expected toggle %q, got %q", tt.state, tt.toggle, got.ToggleLabel())
		}
		if got.ToggleAction() != tt.action {
			t.Errorf("%+v: expected action %q, got %q", tt.state, tt.action, got.ToggleAction())
		}
	}
}

func TestCameraStatusLabelsDistinct(t *testing.T) {
	seen := map[string]CameraStatus{}
	for _, s := range []CameraStatus{CameraRunning, CameraConnected, CameraDisconnected} {
		if other, ok := seen[s.Label()]; ok {
			t.Errorf("status %d shares label %q with %d", s, s.Label(), other)
		}
		seen[s.Label()] = s
	}
}

func TestSnapshotSelectedImage(t *testing.T) {
	snap := Snapshot{
		Images:   []CapturedImage{{Filename: "a.jpg"}, {Filename: "b.jpg", Timestamp: "t"}},
		Selected: "b.jpg",
	}
	if !snap.ModalOpen() {
		t.Fatal("expected modal open")
	}
	img, ok := snap.SelectedImage()
	if !ok || img.Timestamp != "t" {
		t.Errorf("unexpected selected image %+v, %v", img, ok)
	}

	snap.Selected = ""
	if snap.ModalOpen() {
		t.Error("expected modal closed")
	}
}
