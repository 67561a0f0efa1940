package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rorical/glassdash/internal/models"
)

func newTestState() *DashboardState {
	ds := NewDashboardState()
	ds.now = func() time.Time { return time.Date(2025, 3, 1, 14, 30, 5, 0, time.UTC) }
	return ds
}

func galleryOf(names ...string) []models.CapturedImage {
	images := make([]models.CapturedImage, len(names))
	for i, n := range names {
		images[i] = models.CapturedImage{Filename: n, Timestamp: "2025-03-01 14:30:0" + string(rune('0'+i))}
	}
	return images
}

func TestSelectImage_NotFound(t *testing.T) {
	ds := newTestState()
	ds.ReplaceImages(galleryOf("a.jpg"))

	if err := ds.SelectImage("missing.jpg", ""); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("expected ErrImageNotFound, got %v", err)
	}
	if ds.Selected() != "" {
		t.Errorf("selection changed to %q", ds.Selected())
	}
}

func TestSelectImage_ResetsAnalysis(t *testing.T) {
	ds := newTestState()
	ds.ReplaceImages(galleryOf("a.jpg", "b.jpg"))
	ds.SelectImage("a.jpg", "http://host/api/image/a.jpg")

	_, token, _, err := ds.BeginAnalysis(context.Background())
	if err != nil {
		t.Fatalf("BeginAnalysis failed: %v", err)
	}
	ds.FinishAnalysis(token, "a cat", false)

	if err := ds.SelectImage("b.jpg", ""); err != nil {
		t.Fatalf("SelectImage failed: %v", err)
	}
	snap := ds.Snapshot()
	if snap.Analysis.Phase != models.AnalysisIdle || snap.Analysis.Text != "" {
		t.Errorf("expected idle analysis, got %+v", snap.Analysis)
	}
	if snap.Selected != "b.jpg" || snap.Preview.Filename != "b.jpg" {
		t.Errorf("unexpected selection %q / preview %q", snap.Selected, snap.Preview.Filename)
	}
}

func TestBeginAnalysis_NoSelection(t *testing.T) {
	ds := newTestState()
	before := ds.Snapshot()

	if _, _, _, err := ds.BeginAnalysis(context.Background()); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}

	after := ds.Snapshot()
	if after.Analysis != before.Analysis || after.Version != before.Version {
		t.Error("state changed on a rejected analysis")
	}
}

func TestFinishAnalysis_DiscardedAfterReselect(t *testing.T) {
	ds := newTestState()
	ds.ReplaceImages(galleryOf("a.jpg", "b.jpg"))
	ds.SelectImage("a.jpg", "")

	ctx, token, filename, err := ds.BeginAnalysis(context.Background())
	if err != nil || filename != "a.jpg" {
		t.Fatalf("BeginAnalysis: %q %v", filename, err)
	}

	ds.SelectImage("b.jpg", "")

	if ctx.Err() == nil {
		t.Error("expected the old request to be cancelled")
	}
	if ds.FinishAnalysis(token, "result for a", false) {
		t.Error("late result must be discarded")
	}
	if got := ds.Snapshot().Analysis; got.Phase != models.AnalysisIdle {
		t.Errorf("analysis overwritten: %+v", got)
	}
}

func TestFinishAnalysis_DiscardedAfterClose(t *testing.T) {
	ds := newTestState()
	ds.ReplaceImages(galleryOf("a.jpg"))
	ds.SelectImage("a.jpg", "")

	_, token, _, _ := ds.BeginAnalysis(context.Background())
	ds.CloseSelection()

	if ds.FinishAnalysis(token, "late", true) {
		t.Error("late result must be discarded")
	}
	snap := ds.Snapshot()
	if snap.ModalOpen() || snap.Busy.Analyze {
		t.Errorf("unexpected state after close: %+v", snap)
	}
}

func TestAnalysis_SecondBeginRejected(t *testing.T) {
	ds := newTestState()
	ds.ReplaceImages(galleryOf("a.jpg"))
	ds.SelectImage("a.jpg", "")

	if _, _, _, err := ds.BeginAnalysis(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !ds.Snapshot().Busy.Analyze {
		t.Error("expected analyze busy")
	}
	if _, _, _, err := ds.BeginAnalysis(context.Background()); !errors.Is(err, ErrActionInFlight) {
		t.Errorf("expected ErrActionInFlight, got %v", err)
	}
}

func TestReplaceImages_ClosesDanglingSelection(t *testing.T) {
	ds := newTestState()
	ds.ReplaceImages(galleryOf("a.jpg", "b.jpg"))
	ds.SelectImage("a.jpg", "")
	ctx, _, _, _ := ds.BeginAnalysis(context.Background())

	if closed := ds.ReplaceImages(galleryOf("a.jpg", "c.jpg")); closed {
		t.Error("selection still present, modal should stay open")
	}
	if closed := ds.ReplaceImages(galleryOf("c.jpg")); !closed {
		t.Error("expected modal to close")
	}
	if ds.Selected() != "" {
		t.Errorf("selection left at %q", ds.Selected())
	}
	if ctx.Err() == nil {
		t.Error("expected in-flight analysis cancelled")
	}
}

func TestFinishImages_DropsSupersededList(t *testing.T) {
	ds := newTestState()

	_, old, err := ds.Begin(context.Background(), ActionImages)
	if err != nil {
		t.Fatal(err)
	}
	_, current := ds.Supersede(context.Background(), ActionImages)

	if applied, _ := ds.FinishImages(current, galleryOf("new.jpg", "a.jpg")); !applied {
		t.Fatal("current list not applied")
	}
	if applied, _ := ds.FinishImages(old, galleryOf("a.jpg")); applied {
		t.Error("superseded list must not be applied")
	}

	if images := ds.Images(); len(images) != 2 || images[0].Filename != "new.jpg" {
		t.Errorf("gallery overwritten by superseded list: %+v", images)
	}
	if ds.Snapshot().Busy.Images {
		t.Error("images still busy")
	}
}

func TestReplaceImages_KeepsServerOrder(t *testing.T) {
	ds := newTestState()
	ds.ReplaceImages(galleryOf("z.jpg", "a.jpg", "m.jpg"))

	images := ds.Images()
	for i, want := range []string{"z.jpg", "a.jpg", "m.jpg"} {
		if images[i].Filename != want {
			t.Errorf("index %d: expected %s, got %s", i, want, images[i].Filename)
		}
	}
}

func TestBeginChat_EmptyIsNoop(t *testing.T) {
	ds := newTestState()
	ds.AddProgramMessage("welcome")
	before := ds.Transcript()

	for _, msg := range []string{"", "   ", "\n\t"} {
		if _, _, _, err := ds.BeginChat(context.Background(), msg); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("%q: expected ErrEmptyMessage, got %v", msg, err)
		}
	}
	if got := ds.Transcript(); len(got) != len(before) {
		t.Errorf("transcript changed: %+v", got)
	}
}

func TestChat_Lifecycle(t *testing.T) {
	ds := newTestState()
	ds.AddProgramMessage("welcome")

	_, token, trimmed, err := ds.BeginChat(context.Background(), "  what did I see?  ")
	if err != nil {
		t.Fatalf("BeginChat failed: %v", err)
	}
	if trimmed != "what did I see?" {
		t.Errorf("expected trimmed message, got %q", trimmed)
	}

	transcript := ds.Transcript()
	if len(transcript) != 2 || transcript[0].Type != models.User || transcript[1].Type != models.Typing {
		t.Fatalf("unexpected transcript while waiting: %+v", transcript)
	}
	if transcript[0].DisplayTime() != "14:30:05" {
		t.Errorf("unexpected display time %q", transcript[0].DisplayTime())
	}

	if _, _, _, err := ds.BeginChat(context.Background(), "again"); !errors.Is(err, ErrActionInFlight) {
		t.Errorf("expected ErrActionInFlight, got %v", err)
	}

	if !ds.FinishChat(token, "a **red** door", false) {
		t.Fatal("FinishChat rejected current token")
	}
	transcript = ds.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("expected 2 entries, got %+v", transcript)
	}
	if transcript[1].Type != models.Assistant || transcript[1].Content != "a **red** door" {
		t.Errorf("unexpected reply %+v", transcript[1])
	}
	if ds.Snapshot().Busy.Chat {
		t.Error("chat still busy")
	}
}

func TestFinishChat_ErrorReply(t *testing.T) {
	ds := newTestState()
	_, token, _, _ := ds.BeginChat(context.Background(), "hi")
	ds.FinishChat(token, "Error communicating with AI assistant", true)

	transcript := ds.Transcript()
	last := transcript[len(transcript)-1]
	if last.Type != models.Assistant || !last.IsError {
		t.Errorf("expected assistant-styled error, got %+v", last)
	}
	for _, m := range transcript {
		if m.Type == models.Typing {
			t.Error("typing placeholder left behind")
		}
	}
}

func TestPrependHistory_ReplaysPairs(t *testing.T) {
	ds := newTestState()
	ds.AddProgramMessage("welcome")

	turns := []models.ChatTurn{
		{UserMessage: "q1", AIResponse: "a1"},
		{UserMessage: "q2", AIResponse: "a2"},
		{UserMessage: "q3", AIResponse: "a3"},
	}
	ds.PrependHistory(turns)

	transcript := ds.Transcript()
	if len(transcript) != 2*len(turns) {
		t.Fatalf("expected %d entries, got %d", 2*len(turns), len(transcript))
	}
	for i, turn := range turns {
		user, ai := transcript[2*i], transcript[2*i+1]
		if user.Type != models.User || user.Content != turn.UserMessage {
			t.Errorf("entry %d: unexpected user message %+v", 2*i, user)
		}
		if ai.Type != models.Assistant || ai.Content != turn.AIResponse {
			t.Errorf("entry %d: unexpected AI message %+v", 2*i+1, ai)
		}
	}
}

func TestPrependHistory_EmptyKeepsWelcome(t *testing.T) {
	ds := newTestState()
	ds.AddProgramMessage("welcome")
	ds.PrependHistory(nil)

	transcript := ds.Transcript()
	if len(transcript) != 1 || transcript[0].Type != models.Program {
		t.Errorf("expected welcome to remain, got %+v", transcript)
	}
}

func TestPrependHistory_AheadOfPendingChat(t *testing.T) {
	ds := newTestState()
	ds.AddProgramMessage("welcome")

	_, token, _, err := ds.BeginChat(context.Background(), "live")
	if err != nil {
		t.Fatal(err)
	}
	ds.PrependHistory([]models.ChatTurn{{UserMessage: "q1", AIResponse: "a1"}})

	assertTranscript(t, ds.Transcript(), []models.MessageType{models.User, models.Assistant, models.User, models.Typing},
		[]string{"q1", "a1", "live", ""})

	if !ds.FinishChat(token, "reply", false) {
		t.Fatal("reply not applied")
	}
	assertTranscript(t, ds.Transcript(), []models.MessageType{models.User, models.Assistant, models.User, models.Assistant},
		[]string{"q1", "a1", "live", "reply"})
}

func assertTranscript(t *testing.T, got []models.Message, types []models.MessageType, contents []string) {
	t.Helper()
	if len(got) != len(types) {
		t.Fatalf("expected %d entries, got %+v", len(types), got)
	}
	for i := range types {
		if got[i].Type != types[i] || got[i].Content != contents[i] {
			t.Errorf("entry %d: got %+v, want %v %q", i, got[i], types[i], contents[i])
		}
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	ds := newTestState()
	ds.ReplaceImages(galleryOf("a.jpg"))

	snap := ds.Snapshot()
	snap.Images[0].Filename = "changed"

	if ds.Images()[0].Filename != "a.jpg" {
		t.Error("snapshot shares memory with state")
	}
	if next := ds.Snapshot(); next.Version != snap.Version {
		t.Errorf("reading changed the version: %d -> %d", snap.Version, next.Version)
	}
}
