package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/glassdash/internal/api"
	"github.com/Rorical/glassdash/internal/utils"
)

var historyFormat string

var chatCmd = &cobra.Command{
	Use:   "chat <message...>",
	Short: "Send one message to the assistant",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			log.Fatalf("Message is empty")
		}

		resp, err := newClient(loadConfig()).Chat(cmd.Context(), message)
		if err != nil {
			if api.IsBackend(err) {
				log.Fatalf("Error: %s", api.Describe(err, "Chat failed", ""))
			}
			log.Fatalf("Error communicating with AI assistant: %v", err)
		}

		fmt.Println(utils.FormatMessage(resp.Response, outputMarkup()))
	},
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var mk utils.Markup
		switch historyFormat {
		case "text":
			mk = outputMarkup()
		case "html":
			mk = utils.HTML()
		default:
			log.Fatalf("Unknown format %q, expected text or html", historyFormat)
		}

		turns, err := newClient(loadConfig()).ChatHistory(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to load chat history: %v", err)
		}

		for _, turn := range turns {
			if historyFormat == "html" {
				fmt.Printf("<div class=\"message user\">%s</div>\n", utils.FormatMessage(turn.UserMessage, mk))
				fmt.Printf("<div class=\"message ai\">%s</div>\n", utils.FormatMessage(turn.AIResponse, mk))
				continue
			}
			fmt.Printf("You: %s\n", utils.FormatMessage(turn.UserMessage, mk))
			fmt.Printf("AI:  %s\n\n", utils.FormatMessage(turn.AIResponse, mk))
		}
	},
}

func init() {
	chatHistoryCmd.Flags().StringVar(&historyFormat, "format", "text", "output format: text or html")

	chatCmd.AddCommand(chatHistoryCmd)
	rootCmd.AddCommand(chatCmd)
}
