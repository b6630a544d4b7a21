// Package thumbs produces the opaque thumbnail handles clips carry.
// The engine never decodes media itself; callers hand in a decoded
// frame and get back a compact handle for the UI layer.
package thumbs

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// DefaultMaxSize bounds thumbnail dimensions in pixels.
const DefaultMaxSize = 160

// Scale resizes src to fit inside maxW x maxH, preserving aspect ratio.
// Images already small enough are returned unchanged.
func Scale(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// Handle encodes a frame as an opaque thumbnail handle: a PNG data URL
// scaled to the default bounds.
func Handle(frame image.Image) (string, error) {
	scaled := Scale(frame, DefaultMaxSize, DefaultMaxSize)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("encoding thumbnail: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
