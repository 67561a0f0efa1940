package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Rorical/glassdash/internal/api"
	"github.com/Rorical/glassdash/internal/app"
	"github.com/Rorical/glassdash/internal/config"
	"github.com/Rorical/glassdash/internal/logging"
	"github.com/Rorical/glassdash/internal/utils"
)

var (
	debug   bool
	logFile string
	baseURL string
)

var rootCmd = &cobra.Command{
	Use:   "glassdash",
	Short: "Terminal dashboard for a smart-glasses camera",
	Long: `GlassDash controls a smart-glasses camera backend from the terminal:
start and stop the camera, browse and analyze captured images, and chat
with the assistant about what the glasses have seen.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		runDashboard(cfg)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv)

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (default $GLASSDASH_HOME/.glassdash/glassdash.log)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend URL, overriding the active profile")

	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}

// loadDotEnv reads .env from the working directory, if there is one
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}
}

// loadConfig loads the active profile and applies the environment and
// --base-url overrides, in that order
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyEnv()
	if baseURL != "" {
		cfg.SetBaseURL(baseURL)
	}
	if !cfg.IsValid() {
		log.Fatalf("Invalid backend URL %q for profile '%s'", cfg.GetBaseURL(), cfg.GetCurrentProfileName())
	}
	return cfg
}

func openLogger() (*slog.Logger, io.Closer) {
	path := logFile
	if path == "" {
		var err error
		if path, err = config.LogPath(); err != nil {
			log.Fatalf("Failed to resolve log path: %v", err)
		}
	}

	logger, closer, err := logging.Open(path, debug)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	return logger, closer
}

func runDashboard(cfg *config.Config) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatalf("The dashboard needs an interactive terminal; see 'glassdash --help' for one-shot commands")
	}

	logger, closer := openLogger()
	defer closer.Close()

	application := app.NewApplication(cfg, logger)
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(api.Config{
		BaseURL: cfg.GetBaseURL(),
		Timeout: cfg.GetTimeout(),
	})
}

// outputMarkup styles emphasis on a terminal and strips it otherwise
func outputMarkup() utils.Markup {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return utils.Terminal()
	}
	return utils.Plain()
}
