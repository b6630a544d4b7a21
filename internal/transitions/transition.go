package transitions

import (
	"github.com/google/uuid"

	"github.com/ivlev/montage/internal/easing"
)

// Type identifies the blend effect between two adjacent clips.
type Type string

const (
	TypeNone        Type = "none"
	TypeCrossfade   Type = "crossfade"
	TypeWipeLeft    Type = "wipe-left"
	TypeWipeRight   Type = "wipe-right"
	TypeWipeUp      Type = "wipe-up"
	TypeWipeDown    Type = "wipe-down"
	TypeFadeToBlack Type = "fade-to-black"
	TypeFadeToWhite Type = "fade-to-white"
)

// DurationRange bounds the valid duration for a transition type.
type DurationRange struct {
	Min     float64
	Max     float64
	Default float64
}

// RangeFor returns the duration bounds for the transition type.
func RangeFor(t Type) DurationRange {
	switch t {
	case TypeNone:
		return DurationRange{Min: 0, Max: 0, Default: 0}
	case TypeCrossfade:
		return DurationRange{Min: 0.1, Max: 5.0, Default: 1.0}
	case TypeWipeLeft, TypeWipeRight, TypeWipeUp, TypeWipeDown:
		return DurationRange{Min: 0.1, Max: 3.0, Default: 0.75}
	case TypeFadeToBlack, TypeFadeToWhite:
		return DurationRange{Min: 0.2, Max: 4.0, Default: 1.0}
	}
	return DurationRange{Min: 0.1, Max: 5.0, Default: 1.0}
}

// Valid reports whether t is a known transition type.
func Valid(t Type) bool {
	switch t {
	case TypeNone, TypeCrossfade,
		TypeWipeLeft, TypeWipeRight, TypeWipeUp, TypeWipeDown,
		TypeFadeToBlack, TypeFadeToWhite:
		return true
	}
	return false
}

// Axis of a wipe boundary.
type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

// Transition describes a timed blend connecting two clips. The clip
// references are ids only; resolving them is the owner's concern.
type Transition struct {
	ID         string
	Type       Type
	Duration   float64
	Easing     easing.Name
	FromClipID string
	ToClipID   string
}

// New builds a transition, clamping duration into the type's range.
func New(t Type, duration float64, ease easing.Name, fromClipID, toClipID string) *Transition {
	if !Valid(t) {
		t = TypeNone
	}
	if !easing.Valid(ease) {
		ease = easing.Linear
	}
	tr := &Transition{
		ID:         uuid.NewString(),
		Type:       t,
		Easing:     ease,
		FromClipID: fromClipID,
		ToClipID:   toClipID,
	}
	tr.SetDuration(duration)
	return tr
}

// SetDuration clamps d into the current type's range and stores it.
func (tr *Transition) SetDuration(d float64) {
	r := RangeFor(tr.Type)
	if d <= 0 {
		d = r.Default
	}
	if d < r.Min {
		d = r.Min
	}
	if d > r.Max {
		d = r.Max
	}
	tr.Duration = d
}

// SetType switches the transition type and re-clamps the existing
// duration into the new type's range instead of resetting it.
func (tr *Transition) SetType(t Type) {
	if !Valid(t) {
		return
	}
	tr.Type = t
	tr.SetDuration(tr.Duration)
}

// Progress maps elapsed seconds within the transition window to eased
// progress in [0,1]. A none transition always reports 0.
func (tr *Transition) Progress(elapsed float64) float64 {
	if tr.Type == TypeNone || tr.Duration <= 0 {
		return 0
	}
	raw := elapsed / tr.Duration
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}
	return easing.Apply(tr.Easing, raw)
}

// CrossfadeOpacities returns the outgoing and incoming clip opacities
// at the given elapsed time.
func (tr *Transition) CrossfadeOpacities(elapsed float64) (from, to float64) {
	p := tr.Progress(elapsed)
	return 1 - p, p
}

// WipeParams describes the reveal boundary of a wipe at one instant.
// Position is the boundary offset as a fraction of the frame along the
// wipe axis; Reversed means the reveal travels against the axis.
type WipeParams struct {
	Position float64
	Axis     Axis
	Reversed bool
}

// Wipe computes the reveal boundary for wipe transitions. ok is false
// for non-wipe types.
func (tr *Transition) Wipe(elapsed float64) (WipeParams, bool) {
	p := tr.Progress(elapsed)
	switch tr.Type {
	case TypeWipeLeft:
		return WipeParams{Position: p, Axis: AxisHorizontal, Reversed: true}, true
	case TypeWipeRight:
		return WipeParams{Position: p, Axis: AxisHorizontal, Reversed: false}, true
	case TypeWipeUp:
		return WipeParams{Position: p, Axis: AxisVertical, Reversed: true}, true
	case TypeWipeDown:
		return WipeParams{Position: p, Axis: AxisVertical, Reversed: false}, true
	}
	return WipeParams{}, false
}

// FadeColorParams describes a fade-through-color blend at one instant.
type FadeColorParams struct {
	Color        string
	ColorOpacity float64
	ClipOpacity  float64
}

// FadeColor computes the two-phase fade-through-color blend: first half
// fades into the solid color, second half fades back out to the next
// clip. ok is false for other types.
func (tr *Transition) FadeColor(elapsed float64) (FadeColorParams, bool) {
	var color string
	switch tr.Type {
	case TypeFadeToBlack:
		color = "#000000"
	case TypeFadeToWhite:
		color = "#FFFFFF"
	default:
		return FadeColorParams{}, false
	}

	p := tr.Progress(elapsed)
	var colorOpacity float64
	if p < 0.5 {
		colorOpacity = 2 * p
	} else {
		colorOpacity = 2 * (1 - p)
	}

	return FadeColorParams{
		Color:        color,
		ColorOpacity: colorOpacity,
		ClipOpacity:  1 - colorOpacity,
	}, true
}

// Clone returns an independent copy of the transition.
func (tr *Transition) Clone() *Transition {
	if tr == nil {
		return nil
	}
	c := *tr
	return &c
}
