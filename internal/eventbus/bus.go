package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/Rorical/glassdash/internal/models"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// RefreshStatusEvent - UI asks core to re-read the camera status
type RefreshStatusEvent struct{}

func (e RefreshStatusEvent) UIEvent() {}

// ToggleCameraEvent - UI asks core to start or stop the camera
type ToggleCameraEvent struct{}

func (e ToggleCameraEvent) UIEvent() {}

// CaptureEvent - UI asks core for a single capture
type CaptureEvent struct{}

func (e CaptureEvent) UIEvent() {}

// LoadImagesEvent - UI asks core to reload the gallery
type LoadImagesEvent struct{}

func (e LoadImagesEvent) UIEvent() {}

// OpenImageEvent - UI opens the inspection modal for one image
type OpenImageEvent struct {
	Filename string
}

func (e OpenImageEvent) UIEvent() {}

// CloseImageEvent - UI closes the inspection modal
type CloseImageEvent struct{}

func (e CloseImageEvent) UIEvent() {}

// AnalyzeImageEvent - UI requests analysis of the selected image
type AnalyzeImageEvent struct {
	Question string
}

func (e AnalyzeImageEvent) UIEvent() {}

// SendMessageEvent - UI requests core to send a chat message
type SendMessageEvent struct {
	Message string
}

func (e SendMessageEvent) UIEvent() {}

// StateUpdateEvent - Core pushes state changes to UI
type StateUpdateEvent struct {
	Snapshot models.Snapshot
}

func (e StateUpdateEvent) CoreEvent() {}

// NotificationEvent - Core asks UI to show a toast
type NotificationEvent struct {
	Kind    models.ToastKind
	Message string
}

func (e NotificationEvent) CoreEvent() {}

// ChatRejectedEvent - Core refused a chat message; UI may restore the input
type ChatRejectedEvent struct {
	Message string
}

func (e ChatRejectedEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

var (
	ErrCircuitOpen  = errors.New("circuit breaker is open")
	ErrUIToCoreFull = errors.New("UI to Core channel is full")
	ErrCoreToUIFull = errors.New("Core to UI channel is full")
)

// CircuitBreakerState represents the state of circuit breaker
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker implements circuit breaker pattern. Both sides of the bus
// report into it from different goroutines.
type CircuitBreaker struct {
	mu              sync.Mutex
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitBreakerState
	now             func() time.Time
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
		now:          time.Now,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitOpen {
		// Check if we should transition to half-open
		if cb.now().Sub(cb.lastFailureTime) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
		}
	}
	return cb.state == CircuitOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.lastFailureTime = cb.now()

	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
}

func NewEventBus() *EventBus {
	return NewEventBusWithSize(100)
}

func NewEventBusWithSize(size int) *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, size),
		coreToUI:       make(chan CoreEvent, size),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

// SetErrorCallback must be called before events start flowing
func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}

	eb.circuitBreaker.RecordFailure()

	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToCore", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.uiToCore <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToCore", ErrUIToCoreFull)
		return ErrUIToCoreFull
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToUI", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.coreToUI <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToUI", ErrCoreToUIFull)
		return ErrCoreToUIFull
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

// Close must only be called once nothing sends on the bus any more
func (eb *EventBus) Close() {
	close(eb.uiToCore)
	close(eb.coreToUI)
}
