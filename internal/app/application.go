package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/glassdash/internal/api"
	"github.com/Rorical/glassdash/internal/config"
	"github.com/Rorical/glassdash/internal/core"
	"github.com/Rorical/glassdash/internal/dispatcher"
	"github.com/Rorical/glassdash/internal/eventbus"
	"github.com/Rorical/glassdash/internal/logging"
	"github.com/Rorical/glassdash/internal/models"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	logger     *slog.Logger
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.DashboardService
	model      *AppModel
}

func NewApplication(cfg *config.Config, logger *slog.Logger) *Application {
	if logger == nil {
		logger = logging.Discard()
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.GetBaseURL(),
		Timeout: cfg.GetTimeout(),
	})

	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb, logger)

	service := core.NewDashboardService(client, eb, core.Options{
		ProfileName:  cfg.GetCurrentProfileName(),
		PollInterval: cfg.GetPollInterval(),
		Logger:       logger,
	})

	model := &AppModel{
		appModel:   createInitialAppModel(),
		dispatcher: disp,
	}

	return &Application{
		config:     cfg,
		logger:     logger,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
	}
}

func (app *Application) Start() error {
	// The error callback has to be in place before the service sends anything
	app.dispatcher.Start()
	app.service.Start()

	app.logger.Info("dashboard started", "base_url", app.config.GetBaseURL())

	p := tea.NewProgram(app.model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()

	return err
}

// Stop shuts the service down before closing the bus it sends on
func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	app.logger.Info("dashboard stopped")
}

func createInitialAppModel() models.AppModel {
	// Messages, images and camera state all come from core
	return models.AppModel{
		Focus:  models.PaneGallery,
		Status: "Connecting",
	}
}
