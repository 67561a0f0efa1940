package api

// CameraStatus is the body of GET /api/camera/status
type CameraStatus struct {
	Running   bool `json:"running"`
	Connected bool `json:"connected"`
}

// MessageResponse is returned by the camera start/stop/capture endpoints
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Path    string `json:"path,omitempty"`
}

// ImageInfo describes one captured image as listed by GET /api/images
type ImageInfo struct {
	Filename  string `json:"filename"`
	Timestamp string `json:"timestamp"`
	Size      int64  `json:"size,omitempty"`
}

// analyzeRequest keeps Question as a pointer so an absent question is sent as null
type analyzeRequest struct {
	Question *string `json:"question"`
}

type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// ChatTurn is one stored exchange from GET /api/chat/history
type ChatTurn struct {
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
	Timestamp   string `json:"timestamp,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}
