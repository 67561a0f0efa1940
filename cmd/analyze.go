package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/glassdash/internal/api"
	"github.com/Rorical/glassdash/internal/utils"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <filename> [question...]",
	Short: "Ask the assistant about a captured image",
	Long: `Analyze a captured image. Without a question the assistant gives a
general description.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]
		question := strings.Join(args[1:], " ")

		resp, err := newClient(loadConfig()).Analyze(cmd.Context(), filename, question)
		if err != nil {
			if api.IsBackend(err) {
				log.Fatalf("Error: %s", api.Describe(err, "Analysis failed", ""))
			}
			log.Fatalf("Error analyzing image: %v", err)
		}

		fmt.Println(utils.FormatAnalysis(resp.Analysis, outputMarkup()))
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
