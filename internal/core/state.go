package core

import (
	"context"
	"errors"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/Rorical/glassdash/internal/models"
)

var (
	ErrImageNotFound  = errors.New("image not found")
	ErrNoSelection    = errors.New("no image selected")
	ErrEmptyMessage   = errors.New("empty message")
	ErrActionInFlight = errors.New("action already in flight")
)

// DashboardState is the single source of truth for the dashboard. Every
// method is one atomic transition; the UI only ever sees Snapshot copies.
type DashboardState struct {
	mu         sync.RWMutex
	version    uint64
	camera     models.CameraState
	images     []models.CapturedImage
	selected   string
	analysis   models.Analysis
	preview    models.Preview
	transcript []models.Message // Append-only, except for placeholder removal
	welcome    bool             // Program messages still at the head of transcript
	inflight   *Inflight
	now        func() time.Time
}

func NewDashboardState() *DashboardState {
	return &DashboardState{
		images:     make([]models.CapturedImage, 0),
		transcript: make([]models.Message, 0),
		inflight:   NewInflight(),
		now:        time.Now,
	}
}

// changed must be called with mu held for writing
func (ds *DashboardState) changed() {
	ds.version++
}

func (ds *DashboardState) Snapshot() models.Snapshot {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	images := make([]models.CapturedImage, len(ds.images))
	copy(images, ds.images)
	messages := make([]models.Message, len(ds.transcript))
	copy(messages, ds.transcript)

	return models.Snapshot{
		Version:  ds.version,
		Camera:   ds.camera,
		Images:   images,
		Selected: ds.selected,
		Analysis: ds.analysis,
		Preview:  ds.preview,
		Messages: messages,
		Busy: models.Busy{
			Toggle:  ds.inflight.Active(ActionToggle),
			Capture: ds.inflight.Active(ActionCapture),
			Images:  ds.inflight.Active(ActionImages),
			Analyze: ds.inflight.Active(ActionAnalyze),
			Chat:    ds.inflight.Active(ActionChat),
		},
	}
}

// Begin starts a request that has no state of its own beyond the busy flag
func (ds *DashboardState) Begin(parent context.Context, a Action) (context.Context, string, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ctx, token, err := ds.inflight.Begin(parent, a)
	if err != nil {
		return nil, "", err
	}
	ds.changed()
	return ctx, token, nil
}

// Supersede starts a request that replaces any outstanding one of the same kind
func (ds *DashboardState) Supersede(parent context.Context, a Action) (context.Context, string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ctx, token := ds.inflight.Restart(parent, a)
	ds.changed()
	return ctx, token
}

func (ds *DashboardState) Finish(a Action, token string) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.inflight.Finish(a, token) {
		return false
	}
	ds.changed()
	return true
}

// Camera

func (ds *DashboardState) SetCamera(cs models.CameraState) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.camera = cs
	ds.changed()
}

func (ds *DashboardState) Camera() models.CameraState {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.camera
}

// Gallery

// ReplaceImages swaps in a freshly loaded list. If the selected image is no
// longer part of it the modal is closed, and true is returned.
func (ds *DashboardState) ReplaceImages(images []models.CapturedImage) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.replaceImagesLocked(images)
}

// FinishImages applies a loaded list only while token is current, so an
// older load that was superseded can never overwrite a newer one
func (ds *DashboardState) FinishImages(token string, images []models.CapturedImage) (applied, closed bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.inflight.Finish(ActionImages, token) {
		return false, false
	}
	return true, ds.replaceImagesLocked(images)
}

func (ds *DashboardState) replaceImagesLocked(images []models.CapturedImage) bool {
	ds.images = make([]models.CapturedImage, len(images))
	copy(ds.images, images)
	ds.changed()

	if ds.selected != "" && ds.indexOfLocked(ds.selected) < 0 {
		ds.closeSelectionLocked()
		return true
	}
	return false
}

func (ds *DashboardState) Images() []models.CapturedImage {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	result := make([]models.CapturedImage, len(ds.images))
	copy(result, ds.images)
	return result
}

func (ds *DashboardState) indexOfLocked(filename string) int {
	for i, img := range ds.images {
		if img.Filename == filename {
			return i
		}
	}
	return -1
}

// SelectImage opens the modal for filename. Any analysis or preview still
// running for the previous selection is cancelled.
func (ds *DashboardState) SelectImage(filename, url string) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.indexOfLocked(filename) < 0 {
		return ErrImageNotFound
	}

	ds.inflight.Cancel(ActionAnalyze)
	ds.inflight.Cancel(ActionPreview)
	ds.selected = filename
	ds.analysis = models.Analysis{Phase: models.AnalysisIdle}
	ds.preview = models.Preview{Filename: filename, URL: url}
	ds.changed()
	return nil
}

func (ds *DashboardState) Selected() string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.selected
}

// CloseSelection closes the modal and drops everything bound to it
func (ds *DashboardState) CloseSelection() {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.closeSelectionLocked()
}

func (ds *DashboardState) closeSelectionLocked() {
	ds.inflight.Cancel(ActionAnalyze)
	ds.inflight.Cancel(ActionPreview)
	ds.selected = ""
	ds.analysis = models.Analysis{}
	ds.preview = models.Preview{}
	ds.changed()
}

// Analysis

// BeginAnalysis moves the analysis view to loading for the selected image.
// It returns ErrNoSelection without touching state when nothing is selected.
func (ds *DashboardState) BeginAnalysis(parent context.Context) (context.Context, string, string, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.selected == "" {
		return nil, "", "", ErrNoSelection
	}

	ctx, token, err := ds.inflight.Begin(parent, ActionAnalyze)
	if err != nil {
		return nil, "", "", err
	}

	ds.analysis = models.Analysis{Phase: models.AnalysisLoading}
	ds.changed()
	return ctx, token, ds.selected, nil
}

// FinishAnalysis applies a result unless the request was superseded
func (ds *DashboardState) FinishAnalysis(token, text string, failed bool) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.inflight.Finish(ActionAnalyze, token) {
		return false
	}

	phase := models.AnalysisDone
	if failed {
		phase = models.AnalysisFailed
	}
	ds.analysis = models.Analysis{Phase: phase, Text: text}
	ds.changed()
	return true
}

// Preview

func (ds *DashboardState) BeginPreview(parent context.Context) (context.Context, string, string, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.selected == "" {
		return nil, "", "", ErrNoSelection
	}

	ctx, token, err := ds.inflight.Begin(parent, ActionPreview)
	if err != nil {
		return nil, "", "", err
	}

	ds.preview = models.Preview{Filename: ds.selected, URL: ds.preview.URL, Loading: true}
	ds.changed()
	return ctx, token, ds.selected, nil
}

func (ds *DashboardState) FinishPreview(token string, img image.Image, err error) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.inflight.Finish(ActionPreview, token) {
		return false
	}

	preview := models.Preview{Filename: ds.selected, URL: ds.preview.URL, Image: img}
	if err != nil {
		preview.Image = nil
		preview.Err = "Preview unavailable"
	}
	ds.preview = preview
	ds.changed()
	return true
}

// Chat

// AddProgramMessage adds the welcome placeholder shown until the first real message
func (ds *DashboardState) AddProgramMessage(content string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.transcript = append(ds.transcript, models.Message{
		Content: content,
		Type:    models.Program,
	})
	ds.welcome = true
	ds.changed()
}

// BeginChat validates and records a user message. Atomic: the trimmed message
// and the typing placeholder are appended together.
func (ds *DashboardState) BeginChat(parent context.Context, message string) (context.Context, string, string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, "", "", ErrEmptyMessage
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	ctx, token, err := ds.inflight.Begin(parent, ActionChat)
	if err != nil {
		return nil, "", "", err
	}

	ds.appendLocked(models.Message{Content: message, Type: models.User})
	ds.transcript = append(ds.transcript, models.Message{
		Type:      models.Typing,
		Timestamp: ds.now(),
	})
	ds.changed()
	return ctx, token, message, nil
}

// FinishChat removes the typing placeholder and appends the reply (or the
// error text, styled as an assistant message) in one step.
func (ds *DashboardState) FinishChat(token, reply string, isError bool) bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.inflight.Finish(ActionChat, token) {
		return false
	}

	ds.removeTypingLocked()
	ds.appendLocked(models.Message{Content: reply, Type: models.Assistant, IsError: isError})
	ds.changed()
	return true
}

// PrependHistory replays stored turns as user/assistant pairs in order. They
// go ahead of anything sent this session, so a history response that arrives
// after the first message never lands behind the typing placeholder.
func (ds *DashboardState) PrependHistory(turns []models.ChatTurn) {
	if len(turns) == 0 {
		return
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	now := ds.now()
	replayed := make([]models.Message, 0, 2*len(turns)+len(ds.transcript))
	for _, turn := range turns {
		replayed = append(replayed,
			models.Message{Content: turn.UserMessage, Type: models.User, Timestamp: now},
			models.Message{Content: turn.AIResponse, Type: models.Assistant, Timestamp: now},
		)
	}
	for _, m := range ds.transcript {
		if ds.welcome && m.Type == models.Program {
			continue
		}
		replayed = append(replayed, m)
	}
	ds.transcript = replayed
	ds.welcome = false
	ds.changed()
}

func (ds *DashboardState) Transcript() []models.Message {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	result := make([]models.Message, len(ds.transcript))
	copy(result, ds.transcript)
	return result
}

func (ds *DashboardState) appendLocked(msg models.Message) {
	if ds.welcome {
		kept := ds.transcript[:0]
		for _, m := range ds.transcript {
			if m.Type != models.Program {
				kept = append(kept, m)
			}
		}
		ds.transcript = kept
		ds.welcome = false
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = ds.now()
	}
	ds.transcript = append(ds.transcript, msg)
}

// removeTypingLocked drops the most recent typing placeholder, if any
func (ds *DashboardState) removeTypingLocked() {
	for i := len(ds.transcript) - 1; i >= 0; i-- {
		if ds.transcript[i].Type == models.Typing {
			ds.transcript = append(ds.transcript[:i], ds.transcript[i+1:]...)
			return
		}
	}
}

// Shutdown cancels every request still in flight
func (ds *DashboardState) Shutdown() {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.inflight.CancelAll()
}
