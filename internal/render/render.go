// Package render is the boundary contract toward the GPU/compositing
// collaborator: it folds engine state into the flat parameter bundles a
// renderer consumes, and can express them as FFmpeg filter expressions
// for offline pipelines.
package render

import (
	"fmt"

	"github.com/ivlev/montage/internal/timeline"
	"github.com/ivlev/montage/internal/transitions"
)

// Uniforms is the normalized filter bundle handed to a renderer.
// Engine filter values live in [-100,100]; uniforms are in [-1,1].
type Uniforms struct {
	Brightness float64
	Contrast   float64
	Saturation float64
}

// NormalizeFilters converts engine filter values to renderer uniforms.
func NormalizeFilters(f timeline.Filters) Uniforms {
	c := f.Clamp()
	return Uniforms{
		Brightness: c.Brightness / 100,
		Contrast:   c.Contrast / 100,
		Saturation: c.Saturation / 100,
	}
}

// EqFilter renders the uniforms as an FFmpeg eq filter. FFmpeg expects
// brightness in [-1,1] and contrast/saturation as multipliers around 1.
func EqFilter(u Uniforms) string {
	return fmt.Sprintf("eq=brightness=%.4f:contrast=%.4f:saturation=%.4f",
		u.Brightness, 1+u.Contrast, 1+u.Saturation)
}

// BlendMode tags which parameter set of BlendParams is meaningful.
type BlendMode string

const (
	BlendNone      BlendMode = "none"
	BlendCrossfade BlendMode = "crossfade"
	BlendWipe      BlendMode = "wipe"
	BlendFadeColor BlendMode = "fade-color"
)

// BlendParams is the flat per-frame blend bundle for an active
// transition window.
type BlendParams struct {
	Mode        BlendMode
	FromOpacity float64
	ToOpacity   float64
	Wipe        transitions.WipeParams
	FadeColor   transitions.FadeColorParams
}

// BlendAt computes the blend bundle for a transition at the given
// elapsed time within its window.
func BlendAt(tr *transitions.Transition, elapsed float64) BlendParams {
	switch tr.Type {
	case transitions.TypeCrossfade:
		from, to := tr.CrossfadeOpacities(elapsed)
		return BlendParams{Mode: BlendCrossfade, FromOpacity: from, ToOpacity: to}
	case transitions.TypeWipeLeft, transitions.TypeWipeRight,
		transitions.TypeWipeUp, transitions.TypeWipeDown:
		wipe, _ := tr.Wipe(elapsed)
		return BlendParams{Mode: BlendWipe, FromOpacity: 1, ToOpacity: 1, Wipe: wipe}
	case transitions.TypeFadeToBlack, transitions.TypeFadeToWhite:
		fade, _ := tr.FadeColor(elapsed)
		return BlendParams{
			Mode:        BlendFadeColor,
			FromOpacity: fade.ClipOpacity,
			ToOpacity:   fade.ClipOpacity,
			FadeColor:   fade,
		}
	}
	return BlendParams{Mode: BlendNone, FromOpacity: 1, ToOpacity: 0}
}

// xfadeNames maps transition types to FFmpeg xfade transition names.
var xfadeNames = map[transitions.Type]string{
	transitions.TypeCrossfade:   "fade",
	transitions.TypeWipeLeft:    "wipeleft",
	transitions.TypeWipeRight:   "wiperight",
	transitions.TypeWipeUp:      "wipeup",
	transitions.TypeWipeDown:    "wipedown",
	transitions.TypeFadeToBlack: "fadeblack",
	transitions.TypeFadeToWhite: "fadewhite",
}

// XfadeFilter renders the transition as an FFmpeg xfade filter with
// the given stream offset in seconds. ok is false for none transitions,
// which render nothing.
func XfadeFilter(tr *transitions.Transition, offset float64) (string, bool) {
	name, found := xfadeNames[tr.Type]
	if !found {
		return "", false
	}
	return fmt.Sprintf("xfade=transition=%s:duration=%.3f:offset=%.3f",
		name, tr.Duration, offset), true
}
