package scans

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/lawnlog/internal/diagnosis"
)

func TestWriteThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lawn.png")
	dst := filepath.Join(dir, "lawn-thumb.jpg")

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 800, 600))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	if err := os.WriteFile(src, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}

	if err := writeThumbnail(src, dst); err != nil {
		t.Fatalf("writeThumbnail() error: %v", err)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatalf("thumbnail not written: %v", err)
	}
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	if err != nil {
		t.Fatalf("thumbnail is not a jpeg: %v", err)
	}
	if cfg.Width != diagnosis.ThumbnailWidth || cfg.Height != diagnosis.ThumbnailHeight {
		t.Errorf("thumbnail = %dx%d, want %dx%d", cfg.Width, cfg.Height, diagnosis.ThumbnailWidth, diagnosis.ThumbnailHeight)
	}
}

func TestWriteThumbnailMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := writeThumbnail(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.jpg")); err == nil {
		t.Error("writeThumbnail() returned nil error for missing source")
	}
}
