package diagnosis

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxUploadDimension bounds the longest side of a photo sent for diagnosis.
	MaxUploadDimension = 1600
	ThumbnailWidth     = 300
	ThumbnailHeight    = 225

	uploadQuality    = 85
	thumbnailQuality = 75
)

// PrepareUpload decodes a photo, shrinks it so neither side exceeds
// MaxUploadDimension and re-encodes it as JPEG.
func PrepareUpload(data []byte) ([]byte, error) {
	return resize(data, MaxUploadDimension, MaxUploadDimension, uploadQuality)
}

// Thumbnail renders a small JPEG preview that fits in ThumbnailWidth x ThumbnailHeight.
func Thumbnail(data []byte) ([]byte, error) {
	return resize(data, ThumbnailWidth, ThumbnailHeight, thumbnailQuality)
}

func resize(data []byte, maxW, maxH, quality int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	sb := src.Bounds()
	w, h := fitWithin(sb.Dx(), sb.Dy(), maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha; flatten transparent pixels onto white.
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales w x h down to fit maxW x maxH, keeping the aspect ratio.
// Images that already fit are left alone.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || (w <= maxW && h <= maxH) {
		return w, h
	}
	ratio := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(math.Round(float64(w)*ratio)))
	nh := max(1, int(math.Round(float64(h)*ratio)))
	return nw, nh
}
