package models

import "time"

type MessageType int

const (
	User MessageType = iota
	Assistant
	Program // welcome placeholder, dropped on the first real message
	Typing  // "AI is thinking" placeholder while a chat request is in flight
)

type Message struct {
	Content   string
	Type      MessageType
	Timestamp time.Time // client clock
	IsError   bool      // assistant-styled error text
}

// DisplayTime is the client-side clock time shown next to a message
func (m Message) DisplayTime() string {
	if m.Timestamp.IsZero() {
		return ""
	}
	return m.Timestamp.Format("15:04:05")
}

// ChatTurn is one replayed exchange from the backend's chat history
type ChatTurn struct {
	UserMessage string
	AIResponse  string
}
