package extractor

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractFramesMissingVideo(t *testing.T) {
	dir := t.TempDir()
	err := ExtractFrames(filepath.Join(dir, "missing.mp4"), dir, 5, slog.New(slog.DiscardHandler))
	if err == nil {
		t.Fatal("expected error for missing video file")
	}
}

func TestExtractFramesSkipsWhenFramesExist(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "lecture.mp4")
	if err := os.WriteFile(video, []byte("fake"), 0644); err != nil {
		t.Fatal(err)
	}

	frameDir := filepath.Join(dir, "frames")
	if err := os.MkdirAll(frameDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(frameDir, "1.jpg"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// Existing frames short-circuit before ffmpeg would run.
	if err := ExtractFrames(video, frameDir, 5, slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("expected skip, got %v", err)
	}
}
