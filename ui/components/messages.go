package components

import (
	"strings"

	"github.com/Rorical/glassdash/internal/models"
	"github.com/Rorical/glassdash/internal/utils"
	"github.com/Rorical/glassdash/ui/styles"
)

// RenderMessages draws the transcript, keeping only the lines that fit in
// height so the newest messages stay visible
func RenderMessages(messages []models.Message, width, height, loadingDots int) string {
	var b strings.Builder

	userStyle := styles.UserStyle().Width(max(width-4, 1))
	assistantStyle := styles.AssistantStyle().Width(max(width-4, 1))
	errorStyle := styles.ErrorMessageStyle().Width(max(width-4, 1))
	typingStyle := styles.TypingStyle()
	programStyle := styles.ProgramStyle().Width(max(width, 1))
	timestampStyle := styles.TimestampStyle()

	mk := utils.Terminal()

	for _, msg := range messages {
		switch msg.Type {
		case models.Program:
			b.WriteString(programStyle.Render(msg.Content) + "\n\n")
		case models.User:
			b.WriteString(timestampStyle.Render("You  "+msg.DisplayTime()) + "\n")
			b.WriteString(userStyle.Render(utils.FormatMessage(msg.Content, mk)) + "\n\n")
		case models.Assistant:
			b.WriteString(timestampStyle.Render("AI  "+msg.DisplayTime()) + "\n")
			if msg.IsError {
				b.WriteString(errorStyle.Render(utils.FormatMessage(msg.Content, mk)) + "\n\n")
			} else {
				b.WriteString(assistantStyle.Render(utils.FormatMessage(msg.Content, mk)) + "\n\n")
			}
		case models.Typing:
			b.WriteString(typingStyle.Render("AI is thinking"+strings.Repeat(".", loadingDots)) + "\n\n")
		}
	}

	return tail(strings.TrimRight(b.String(), "\n"), height)
}

// tail keeps the last n lines of s
func tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
