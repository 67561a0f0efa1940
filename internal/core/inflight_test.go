package core

import (
	"context"
	"errors"
	"testing"
)

func TestInflight_RejectsSecondBegin(t *testing.T) {
	f := NewInflight()

	_, token, err := f.Begin(context.Background(), ActionChat)
	if err != nil {
		t.Fatalf("first Begin failed: %v", err)
	}
	if _, _, err := f.Begin(context.Background(), ActionChat); !errors.Is(err, ErrActionInFlight) {
		t.Errorf("expected ErrActionInFlight, got %v", err)
	}

	// Other actions are independent
	if _, _, err := f.Begin(context.Background(), ActionToggle); err != nil {
		t.Errorf("unexpected error for other action: %v", err)
	}

	if !f.Finish(ActionChat, token) {
		t.Fatal("expected Finish to succeed")
	}
	if f.Active(ActionChat) {
		t.Error("expected chat to be idle after Finish")
	}
}

func TestInflight_StaleTokenIgnored(t *testing.T) {
	f := NewInflight()

	ctx, old, _ := f.Begin(context.Background(), ActionAnalyze)
	f.Cancel(ActionAnalyze)

	if ctx.Err() == nil {
		t.Error("expected cancelled context")
	}

	_, current, err := f.Begin(context.Background(), ActionAnalyze)
	if err != nil {
		t.Fatalf("Begin after Cancel failed: %v", err)
	}
	if f.Finish(ActionAnalyze, old) {
		t.Error("stale token must not finish the new request")
	}
	if !f.Active(ActionAnalyze) {
		t.Error("new request should still be active")
	}
	if !f.Finish(ActionAnalyze, current) {
		t.Error("current token should finish")
	}
}

func TestInflight_CancelAll(t *testing.T) {
	f := NewInflight()
	ctxA, _, _ := f.Begin(context.Background(), ActionImages)
	ctxB, _, _ := f.Begin(context.Background(), ActionPreview)

	f.CancelAll()

	if ctxA.Err() == nil || ctxB.Err() == nil {
		t.Error("expected every context cancelled")
	}
	if f.Active(ActionImages) || f.Active(ActionPreview) {
		t.Error("expected no active actions")
	}
}

func TestInflight_RestartReplacesRunning(t *testing.T) {
	f := NewInflight()

	oldCtx, old, _ := f.Begin(context.Background(), ActionImages)
	newCtx, current := f.Restart(context.Background(), ActionImages)

	if oldCtx.Err() == nil {
		t.Error("expected the replaced request cancelled")
	}
	if newCtx.Err() != nil {
		t.Error("new request should not be cancelled")
	}
	if f.Finish(ActionImages, old) {
		t.Error("replaced token must not finish the new request")
	}
	if !f.Finish(ActionImages, current) {
		t.Error("current token should finish")
	}

	// Restart on an idle action is a plain Begin
	if _, token := f.Restart(context.Background(), ActionImages); !f.Finish(ActionImages, token) {
		t.Error("expected Restart to begin when idle")
	}
}
