package dispatcher

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/glassdash/internal/eventbus"
	"github.com/Rorical/glassdash/internal/logging"
	"github.com/Rorical/glassdash/internal/update"
)

// EventDispatcher feeds core events into the Bubble Tea program
type EventDispatcher struct {
	eventBus *eventbus.EventBus
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewEventDispatcher(eventBus *eventbus.EventBus, logger *slog.Logger) *EventDispatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		eventBus: eventBus,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start routes bus errors to the log. Must run before the service starts.
func (ed *EventDispatcher) Start() {
	ed.eventBus.SetErrorCallback(func(err eventbus.EventBusError) {
		ed.logger.Warn("event bus error",
			"operation", err.Operation,
			"error", err.Err,
			"circuit", ed.eventBus.GetCircuitBreakerState())
	})
}

func (ed *EventDispatcher) Stop() {
	ed.cancel()
}

// ListenForCoreEvents waits for the next core event. The model re-issues it
// after every delivered event; it yields nil once stopped or the bus closes.
func (ed *EventDispatcher) ListenForCoreEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ed.ctx.Done():
			return nil
		case event, ok := <-ed.eventBus.CoreToUI():
			if !ok {
				return nil
			}
			return update.CoreEventMsg{Event: event}
		}
	}
}

func (ed *EventDispatcher) GetEventBus() *eventbus.EventBus {
	return ed.eventBus
}
