package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/glassdash/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the dashboard",
	Long:  `Switch to the specified profile and immediately start the dashboard.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := args[0]

		stored, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := stored.Use(profileName); err != nil {
			log.Fatalf("%v", err)
		}
		// Save before any run-time override is applied
		if err := stored.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runDashboard(loadConfig())
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
