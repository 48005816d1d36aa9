package avatars

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/atfurman/taskapp/internal/common"
)

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode error: %v", err)
	}
	return buf.Bytes()
}

func TestNormalize_JPEGBecomesFixedSizePNG(t *testing.T) {
	out, err := Normalize(jpegBytes(t, 120, 80))
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != Size || b.Dy() != Size {
		t.Fatalf("expected %dx%d, got %dx%d", Size, Size, b.Dx(), b.Dy())
	}
}

func TestNormalize_PNGInputAccepted(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 500))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode error: %v", err)
	}

	out, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
	if decoded.Bounds().Dx() != Size {
		t.Fatalf("expected width %d, got %d", Size, decoded.Bounds().Dx())
	}
}

func TestNormalize_GarbageIsValidationError(t *testing.T) {
	_, err := Normalize([]byte("definitely not an image"))
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected ErrorValidation, got %v", err)
	}
}
