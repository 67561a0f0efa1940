package components

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/glassdash/internal/models"
)

func TestRenderGallery_Empty(t *testing.T) {
	out := RenderGallery(nil, 0, true, 80, 20)
	if !strings.Contains(out, EmptyGalleryText) {
		t.Errorf("expected placeholder, got %q", out)
	}
	if cells := GalleryCells(nil, 0, true); len(cells) != 0 {
		t.Errorf("expected no cells, got %d", len(cells))
	}
}

func TestGalleryCells_OnePerImage(t *testing.T) {
	images := []models.CapturedImage{
		{Filename: "capture_1.jpg", Timestamp: "2025-03-01 10:00:00"},
		{Filename: "capture_2.jpg", Timestamp: "2025-03-01 10:00:05", Size: 2048},
		{Filename: "capture_3.jpg", Timestamp: "2025-03-01 10:00:10"},
	}

	cells := GalleryCells(images, 1, true)
	if len(cells) != len(images) {
		t.Fatalf("expected %d cells, got %d", len(images), len(cells))
	}
	for i, img := range images {
		if !strings.Contains(cells[i], img.Filename) || !strings.Contains(cells[i], img.Timestamp) {
			t.Errorf("cell %d does not show its own image:\n%s", i, cells[i])
		}
	}
	if !strings.Contains(cells[1], "2.0 KB") {
		t.Errorf("expected size in cell, got:\n%s", cells[1])
	}

	out := RenderGallery(images, 0, true, 200, 40)
	if strings.Contains(out, EmptyGalleryText) {
		t.Error("placeholder shown for a non-empty gallery")
	}
}

func TestRenderGallery_ScrollsToCursor(t *testing.T) {
	var images []models.CapturedImage
	for i := 0; i < 12; i++ {
		images = append(images, models.CapturedImage{Filename: "img_" + string(rune('a'+i)) + ".jpg"})
	}

	// One column, room for about two cells
	out := RenderGallery(images, 11, true, cellWidth+2, 8)
	if !strings.Contains(out, "img_l.jpg") {
		t.Errorf("cursor cell not visible:\n%s", out)
	}
	if strings.Contains(out, "img_a.jpg") {
		t.Errorf("first cell should have scrolled away:\n%s", out)
	}
}

func TestGalleryColumns(t *testing.T) {
	if GalleryColumns(10) != 1 {
		t.Error("expected at least one column")
	}
	if got := GalleryColumns(3 * (cellWidth + 2)); got != 3 {
		t.Errorf("expected 3 columns, got %d", got)
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		512:             "512 B",
		2048:            "2.0 KB",
		5 * 1024 * 1024: "5.0 MB",
	}
	for n, want := range tests {
		if got := FormatSize(n); got != want {
			t.Errorf("FormatSize(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestRenderImage_HalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	out := RenderImage(img)
	if lipgloss.Height(out) != 2 {
		t.Errorf("expected 2 lines for 4 pixel rows, got %d", lipgloss.Height(out))
	}
	if strings.Count(out, "▀") != 6 {
		t.Errorf("expected 6 half blocks, got %d", strings.Count(out, "▀"))
	}
	if RenderImage(nil) != "" {
		t.Error("expected empty output for nil image")
	}
}

func TestModalRect_Contains(t *testing.T) {
	m := &models.AppModel{Width: 100, Height: 60}
	m.Dashboard.Images = []models.CapturedImage{{Filename: "a.jpg", Timestamp: "t"}}
	m.Dashboard.Selected = "a.jpg"

	r := ModalRect(m)
	if r.W > m.Width || r.H > m.Height {
		t.Fatalf("modal larger than terminal: %+v", r)
	}
	if !r.Contains(r.X, r.Y) || r.Contains(r.X+r.W, r.Y) || r.Contains(r.X-1, r.Y) {
		t.Errorf("unexpected bounds %+v", r)
	}
	if !strings.Contains(RenderModal(m), "a.jpg - t") {
		t.Error("expected filename and timestamp in the modal title")
	}
}

func TestRenderMessages(t *testing.T) {
	messages := []models.Message{
		{Type: models.User, Content: "hello"},
		{Type: models.Assistant, Content: "Error: down", IsError: true},
		{Type: models.Typing},
	}
	out := RenderMessages(messages, 60, 100, 2)
	for _, want := range []string{"hello", "Error: down", "AI is thinking.."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderMessages_ErrorTextFormatted(t *testing.T) {
	messages := []models.Message{
		{Type: models.Assistant, Content: "Error: **model** offline", IsError: true},
	}
	out := RenderMessages(messages, 60, 100, 0)
	if strings.Contains(out, "**") {
		t.Errorf("expected bold markers consumed, got:\n%s", out)
	}
	if !strings.Contains(out, "model") {
		t.Errorf("expected error text kept, got:\n%s", out)
	}
}
