package thumbs

import (
	"image"
	"strings"
	"testing"
)

func TestScalePreservesAspectRatio(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	out := Scale(src, 160, 160)

	b := out.Bounds()
	if b.Dx() != 160 {
		t.Errorf("width = %d, expected 160", b.Dx())
	}
	if b.Dy() != 90 {
		t.Errorf("height = %d, expected 90", b.Dy())
	}
}

func TestScaleLeavesSmallImagesAlone(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 48))
	if out := Scale(src, 160, 160); out != image.Image(src) {
		t.Error("small image should be returned unchanged")
	}
}

func TestHandleIsDataURL(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 320, 240))
	h, err := Handle(src)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.HasPrefix(h, "data:image/png;base64,") {
		t.Errorf("handle prefix wrong: %.40s", h)
	}
}
