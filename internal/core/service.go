package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Rorical/glassdash/internal/api"
	"github.com/Rorical/glassdash/internal/eventbus"
	"github.com/Rorical/glassdash/internal/logging"
	"github.com/Rorical/glassdash/internal/models"
	"github.com/Rorical/glassdash/internal/preview"
)

const (
	DefaultPollInterval = 30 * time.Second
	DefaultRefreshDelay = time.Second

	previewWidth  = 48
	previewHeight = 32
)

type Options struct {
	ProfileName  string
	PollInterval time.Duration // Gallery refresh while the camera runs
	RefreshDelay time.Duration // Wait between a capture and the gallery reload
	Logger       *slog.Logger
}

// DashboardService owns the dashboard state and performs every backend call.
// UI events arrive on the event bus; each request runs on its own goroutine
// and the resulting state is pushed back as a snapshot.
type DashboardService struct {
	client       *api.Client
	state        *DashboardState
	eventBus     *eventbus.EventBus
	logger       *slog.Logger
	profileName  string
	pollInterval time.Duration
	refreshDelay time.Duration
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

func NewDashboardService(client *api.Client, eb *eventbus.EventBus, opts Options) *DashboardService {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.RefreshDelay <= 0 {
		opts.RefreshDelay = DefaultRefreshDelay
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	ctx, cancel := context.WithCancel(context.Background())

	service := &DashboardService{
		client:       client,
		state:        NewDashboardState(),
		eventBus:     eb,
		logger:       opts.Logger,
		profileName:  opts.ProfileName,
		pollInterval: opts.PollInterval,
		refreshDelay: opts.RefreshDelay,
		ctx:          ctx,
		cancel:       cancel,
	}

	service.addWelcomeMessages()

	return service
}

// Start pushes the initial state, kicks off the initial loads and runs the
// event and poll loops
func (s *DashboardService) Start() {
	s.pushState()

	s.spawn(s.eventLoop)
	s.spawn(s.pollLoop)
	s.spawn(s.checkCameraStatus)
	s.spawn(func() { s.loadImages(true) })
	s.spawn(s.loadChatHistory)
}

// Stop cancels in-flight requests and waits for every goroutine to exit
func (s *DashboardService) Stop() {
	s.cancel()
	s.state.Shutdown()
	s.wg.Wait()
}

func (s *DashboardService) State() *DashboardState {
	return s.state
}

func (s *DashboardService) spawn(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

func (s *DashboardService) eventLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *DashboardService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.RefreshStatusEvent:
		s.spawn(s.checkCameraStatus)
	case eventbus.ToggleCameraEvent:
		s.spawn(s.toggleCamera)
	case eventbus.CaptureEvent:
		s.spawn(s.captureSingle)
	case eventbus.LoadImagesEvent:
		s.spawn(func() { s.loadImages(true) })
	case eventbus.OpenImageEvent:
		s.openImage(e.Filename)
	case eventbus.CloseImageEvent:
		s.closeImage()
	case eventbus.AnalyzeImageEvent:
		s.spawn(func() { s.analyzeImage(e.Question) })
	case eventbus.SendMessageEvent:
		s.spawn(func() { s.sendMessage(e.Message) })
	default:
		s.logger.Warn("unhandled UI event", "type", fmt.Sprintf("%T", event))
	}
}

func (s *DashboardService) pollLoop() {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if s.state.Camera().Running {
				s.loadImages(false)
			}
		}
	}
}

// CameraStatus never fails: any error reads as stopped and disconnected
func (s *DashboardService) CameraStatus(ctx context.Context) models.CameraState {
	status, err := s.client.CameraStatus(ctx)
	if err != nil {
		s.logger.Warn("camera status check failed", "error", err)
		return models.CameraState{}
	}
	return models.CameraState{Running: status.Running, Connected: status.Connected}
}

func (s *DashboardService) checkCameraStatus() {
	s.state.SetCamera(s.CameraStatus(s.ctx))
	s.pushState()
}

func (s *DashboardService) toggleCamera() {
	ctx, token, err := s.state.Begin(s.ctx, ActionToggle)
	if err != nil {
		s.logger.Debug("toggle rejected", "error", err)
		return
	}
	s.pushState()

	// The busy flag is cleared on every path, success or not
	defer func() {
		s.state.Finish(ActionToggle, token)
		s.pushState()
	}()

	var resp *api.MessageResponse
	if s.state.Camera().Running {
		resp, err = s.client.StopCamera(ctx)
	} else {
		resp, err = s.client.StartCamera(ctx)
	}

	if err != nil {
		s.logger.Error("camera toggle failed", "error", err)
		s.notify(models.ToastError, api.Describe(err, "Camera operation failed", "Error communicating with camera"))
		return
	}

	s.notify(models.ToastSuccess, resp.Message)
	s.state.SetCamera(s.CameraStatus(ctx))
}

func (s *DashboardService) captureSingle() {
	ctx, token, err := s.state.Begin(s.ctx, ActionCapture)
	if err != nil {
		s.logger.Debug("capture rejected", "error", err)
		return
	}
	s.pushState()

	defer func() {
		s.state.Finish(ActionCapture, token)
		s.pushState()
	}()

	if _, err := s.client.Capture(ctx); err != nil {
		s.logger.Error("capture failed", "error", err)
		s.notify(models.ToastError, api.Describe(err, "Capture failed", "Error capturing image"))
		return
	}

	s.notify(models.ToastSuccess, "Image captured successfully!")

	// Give the backend time to write the file before listing
	s.spawn(func() {
		timer := time.NewTimer(s.refreshDelay)
		defer timer.Stop()
		select {
		case <-s.ctx.Done():
		case <-timer.C:
			s.loadImages(true)
		}
	})
}

// loadImages replaces the gallery. Only user-triggered loads surface errors;
// poll failures are logged to avoid notification spam. A user-triggered load
// cancels any load already running so its list always lands; a poll yields
// to whatever load is running.
func (s *DashboardService) loadImages(userTriggered bool) {
	var (
		ctx   context.Context
		token string
	)
	if userTriggered {
		ctx, token = s.state.Supersede(s.ctx, ActionImages)
	} else {
		var err error
		ctx, token, err = s.state.Begin(s.ctx, ActionImages)
		if err != nil {
			s.logger.Debug("image load skipped", "error", err)
			return
		}
	}
	s.pushState()
	defer s.pushState()

	infos, err := s.client.Images(ctx)
	if err != nil {
		if !s.state.Finish(ActionImages, token) {
			s.logger.Debug("superseded image load ended", "error", err)
			return
		}
		s.logger.Warn("loading images failed", "error", err, "user_triggered", userTriggered)
		if userTriggered && !errors.Is(err, context.Canceled) {
			s.notify(models.ToastError, "Error loading images")
		}
		return
	}

	images := make([]models.CapturedImage, len(infos))
	for i, info := range infos {
		images[i] = models.CapturedImage{
			Filename:  info.Filename,
			Timestamp: info.Timestamp,
			Size:      info.Size,
		}
	}

	applied, closed := s.state.FinishImages(token, images)
	if !applied {
		s.logger.Debug("discarding superseded image list", "count", len(images))
		return
	}
	if closed {
		s.notify(models.ToastInfo, "The selected image is no longer available")
	}
	s.logger.Debug("images loaded", "count", len(images))
}

// OpenImage selects an image and starts loading its preview
func (s *DashboardService) OpenImage(filename string) error {
	if err := s.state.SelectImage(filename, s.client.ImageURL(filename)); err != nil {
		return err
	}
	s.pushState()
	s.spawn(s.loadPreview)
	return nil
}

func (s *DashboardService) openImage(filename string) {
	if err := s.OpenImage(filename); err != nil {
		s.logger.Warn("open image failed", "filename", filename, "error", err)
		s.notify(models.ToastError, fmt.Sprintf("Image %s not found", filename))
	}
}

func (s *DashboardService) closeImage() {
	s.state.CloseSelection()
	s.pushState()
}

func (s *DashboardService) loadPreview() {
	ctx, token, filename, err := s.state.BeginPreview(s.ctx)
	if err != nil {
		return
	}
	s.pushState()

	data, err := s.client.Image(ctx, filename)
	if err != nil {
		s.logger.Warn("preview fetch failed", "filename", filename, "error", err)
		if s.state.FinishPreview(token, nil, err) {
			s.pushState()
		}
		return
	}

	thumb, err := preview.Load(data, previewWidth, previewHeight)
	if err != nil {
		s.logger.Warn("preview decode failed", "filename", filename, "error", err)
	}
	if s.state.FinishPreview(token, thumb, err) {
		s.pushState()
	}
}

// analyzeImage is a no-op when no image is selected
func (s *DashboardService) analyzeImage(question string) {
	ctx, token, filename, err := s.state.BeginAnalysis(s.ctx)
	if err != nil {
		if errors.Is(err, ErrActionInFlight) {
			s.logger.Debug("analysis rejected", "error", err)
		}
		return
	}
	s.pushState()

	resp, err := s.client.Analyze(ctx, filename, question)

	var applied bool
	switch {
	case errors.Is(err, context.Canceled):
		// Modal closed or another image selected; the token is already gone
	case err == nil:
		applied = s.state.FinishAnalysis(token, resp.Analysis, false)
	case api.IsBackend(err):
		s.logger.Error("analysis failed", "filename", filename, "error", err)
		applied = s.state.FinishAnalysis(token, "Error: "+api.Describe(err, "Analysis failed", ""), true)
	default:
		s.logger.Error("analysis failed", "filename", filename, "error", err)
		applied = s.state.FinishAnalysis(token, "Error analyzing image", true)
	}

	if !applied {
		s.logger.Debug("discarding stale analysis", "filename", filename)
		return
	}
	s.pushState()
}

func (s *DashboardService) sendMessage(message string) {
	ctx, token, trimmed, err := s.state.BeginChat(s.ctx, message)
	switch {
	case errors.Is(err, ErrEmptyMessage):
		return
	case errors.Is(err, ErrActionInFlight):
		s.sendToUI(eventbus.ChatRejectedEvent{Message: message})
		s.notify(models.ToastWarning, "Still waiting for the assistant")
		return
	case err != nil:
		s.logger.Error("chat rejected", "error", err)
		return
	}
	s.pushState()

	resp, err := s.client.Chat(ctx, trimmed)

	var applied bool
	switch {
	case err == nil:
		applied = s.state.FinishChat(token, resp.Response, false)
	case api.IsBackend(err):
		s.logger.Error("chat failed", "error", err)
		applied = s.state.FinishChat(token, "Error: "+api.Describe(err, "Chat failed", ""), true)
	default:
		s.logger.Error("chat failed", "error", err)
		applied = s.state.FinishChat(token, "Error communicating with AI assistant", true)
	}

	if applied {
		s.pushState()
	}
}

// loadChatHistory failures are logged and otherwise ignored
func (s *DashboardService) loadChatHistory() {
	turns, err := s.client.ChatHistory(s.ctx)
	if err != nil {
		s.logger.Warn("loading chat history failed", "error", err)
		return
	}

	history := make([]models.ChatTurn, len(turns))
	for i, turn := range turns {
		history[i] = models.ChatTurn{UserMessage: turn.UserMessage, AIResponse: turn.AIResponse}
	}
	s.state.PrependHistory(history)
	s.pushState()
}

func (s *DashboardService) addWelcomeMessages() {
	s.state.AddProgramMessage("Ask me anything about what your glasses have seen.")
	if s.profileName != "" {
		s.state.AddProgramMessage(fmt.Sprintf("Profile: %s (%s)", s.profileName, s.client.BaseURL()))
	}
}

func (s *DashboardService) notify(kind models.ToastKind, message string) {
	if message == "" {
		return
	}
	s.sendToUI(eventbus.NotificationEvent{Kind: kind, Message: message})
}

func (s *DashboardService) pushState() {
	s.sendToUI(eventbus.StateUpdateEvent{Snapshot: s.state.Snapshot()})
}

func (s *DashboardService) sendToUI(event eventbus.CoreEvent) {
	if err := s.eventBus.SendToUI(event); err != nil {
		// The UI catches up on the next push; nothing else to do here
		s.logger.Warn("sending event to UI failed", "event", fmt.Sprintf("%T", event), "error", err)
	}
}
