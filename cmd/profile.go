package cmd

import (
	"fmt"
	"log"
	"sort"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/glassdash/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage backend profiles",
	Long:  `Manage backend profiles, one per pair of glasses or backend host.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range profileNames(cfg, "") {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			printProfile(cfg.Profiles[name], "    ")
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		printProfile(profile, "")
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
			}
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		profile := promptProfile(config.Profile{
			BaseURL:         config.DefaultBaseURL,
			TimeoutSec:      config.DefaultTimeoutSec,
			PollIntervalSec: config.DefaultPollIntervalSec,
		})

		cfg.Profiles[profileName] = profile

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := profileArg(cfg, args, "Select profile to edit", "")

		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.Profiles[profileName] = promptProfile(profile)

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := profileArg(cfg, args, "Select profile to delete", "")

		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		delete(cfg.Profiles, profileName)

		if cfg.ActiveProfile == profileName {
			if remaining := profileNames(cfg, ""); len(remaining) > 0 {
				cfg.ActiveProfile = remaining[0]
			} else {
				// Never leave the file without a profile
				cfg.ActiveProfile = "default"
				cfg.Profiles["default"] = config.Profile{BaseURL: config.DefaultBaseURL}
			}
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if len(args) == 0 && len(profileNames(cfg, cfg.ActiveProfile)) == 0 {
			fmt.Println("No other profiles available to switch to")
			return
		}
		profileName := profileArg(cfg, args, "Select profile to switch to", cfg.ActiveProfile)

		if err := cfg.Use(profileName); err != nil {
			log.Fatalf("%v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

// profileNames lists profiles alphabetically, leaving out skip
func profileNames(cfg *config.Config, skip string) []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if name != skip {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// profileArg takes the name from args or lets the user pick one
func profileArg(cfg *config.Config, args []string, label, skip string) string {
	if len(args) > 0 {
		return args[0]
	}

	names := profileNames(cfg, skip)
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

func promptProfile(profile config.Profile) config.Profile {
	baseURLPrompt := promptui.Prompt{
		Label:    "Backend URL",
		Default:  profile.BaseURL,
		Validate: config.ValidateBaseURL,
	}
	baseURL, err := baseURLPrompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	profile.BaseURL = baseURL

	profile.TimeoutSec = promptSeconds("Request timeout (seconds)", profile.TimeoutSec)
	profile.PollIntervalSec = promptSeconds("Gallery refresh interval (seconds)", profile.PollIntervalSec)
	return profile
}

func promptSeconds(label string, current int) int {
	prompt := promptui.Prompt{
		Label:   label,
		Default: strconv.Itoa(current),
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil || n <= 0 {
				return fmt.Errorf("enter a positive number of seconds")
			}
			return nil
		},
	}
	value, err := prompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	n, _ := strconv.Atoi(value)
	return n
}

func printProfile(profile config.Profile, indent string) {
	fmt.Printf("%sBackend URL: %s\n", indent, profile.BaseURL)
	if profile.TimeoutSec > 0 {
		fmt.Printf("%sTimeout: %ds\n", indent, profile.TimeoutSec)
	}
	if profile.PollIntervalSec > 0 {
		fmt.Printf("%sRefresh interval: %ds\n", indent, profile.PollIntervalSec)
	}
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
