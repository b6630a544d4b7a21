package keyframes

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ivlev/montage/internal/easing"
)

// timeTolerance is the window within which two keyframe times are
// considered the same sample: inserting inside it replaces instead of
// duplicating.
const timeTolerance = 0.001

// Keyframe is one (time, value, easing) sample of an automation curve.
// Time is in seconds relative to the owning entity's local start.
type Keyframe struct {
	ID     string
	Time   float64
	Value  float64
	Easing easing.Name
}

// Update carries optional field changes for an existing keyframe.
type Update struct {
	Time   *float64
	Value  *float64
	Easing *easing.Name
}

// Track stores the automation curve for a single property of a single
// entity. Keyframes are kept sorted ascending by time at all times.
type Track struct {
	Property Property
	Enabled  bool
	frames   []Keyframe
}

// NewTrack returns an enabled, empty track for the property.
func NewTrack(p Property) *Track {
	return &Track{Property: p, Enabled: true}
}

// Add inserts a keyframe, clamping value into the property's range and
// clamping negative times to 0. An existing keyframe within the time
// tolerance is replaced rather than duplicated.
func (t *Track) Add(time, value float64, ease easing.Name) Keyframe {
	if time < 0 {
		time = 0
	}
	if !easing.Valid(ease) {
		ease = easing.Linear
	}

	kf := Keyframe{
		ID:     uuid.NewString(),
		Time:   time,
		Value:  t.Property.Clamp(value),
		Easing: ease,
	}

	for i := range t.frames {
		if abs(t.frames[i].Time-time) < timeTolerance {
			kf.ID = t.frames[i].ID
			t.frames[i] = kf
			return kf
		}
	}

	t.frames = append(t.frames, kf)
	t.sortFrames()
	return kf
}

// Restore inserts a keyframe preserving its id, for deserialization.
// Value and easing are still normalized; a missing id gets a fresh one.
func (t *Track) Restore(kf Keyframe) {
	if kf.ID == "" {
		kf.ID = uuid.NewString()
	}
	if kf.Time < 0 {
		kf.Time = 0
	}
	kf.Value = t.Property.Clamp(kf.Value)
	if !easing.Valid(kf.Easing) {
		kf.Easing = easing.Linear
	}
	t.frames = append(t.frames, kf)
	t.sortFrames()
}

// Remove deletes the keyframe with the given id. Unknown ids are a no-op.
func (t *Track) Remove(id string) bool {
	for i := range t.frames {
		if t.frames[i].ID == id {
			t.frames = append(t.frames[:i], t.frames[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateKeyframe applies the provided field changes, re-clamping value
// and re-sorting when time moved.
func (t *Track) UpdateKeyframe(id string, upd Update) bool {
	for i := range t.frames {
		if t.frames[i].ID != id {
			continue
		}
		if upd.Value != nil {
			t.frames[i].Value = t.Property.Clamp(*upd.Value)
		}
		if upd.Easing != nil && easing.Valid(*upd.Easing) {
			t.frames[i].Easing = *upd.Easing
		}
		if upd.Time != nil {
			nt := *upd.Time
			if nt < 0 {
				nt = 0
			}
			t.frames[i].Time = nt
			t.sortFrames()
		}
		return true
	}
	return false
}

// ValueAt evaluates the curve at the given local time. A disabled or
// empty track yields the property default; times outside the keyframe
// range hold the nearest keyframe's value. Between two keyframes the
// segment is eased with the earlier keyframe's easing.
func (t *Track) ValueAt(time float64) float64 {
	if !t.Enabled || len(t.frames) == 0 {
		return t.Property.Range().Default
	}

	first := t.frames[0]
	if time <= first.Time {
		return first.Value
	}

	last := t.frames[len(t.frames)-1]
	if time >= last.Time {
		return last.Value
	}

	for i := 0; i < len(t.frames)-1; i++ {
		before := t.frames[i]
		after := t.frames[i+1]
		if time < before.Time || time >= after.Time {
			continue
		}

		span := after.Time - before.Time
		if span <= 0 {
			return after.Value
		}
		progress := (time - before.Time) / span
		eased := easing.Apply(before.Easing, progress)
		return before.Value + (after.Value-before.Value)*eased
	}

	return last.Value
}

// Keyframes returns a copy of the sorted keyframe list.
func (t *Track) Keyframes() []Keyframe {
	out := make([]Keyframe, len(t.frames))
	copy(out, t.frames)
	return out
}

// Len reports the number of keyframes on the track.
func (t *Track) Len() int { return len(t.frames) }

// Clone returns an independent deep copy of the track.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	c := &Track{Property: t.Property, Enabled: t.Enabled}
	c.frames = make([]Keyframe, len(t.frames))
	copy(c.frames, t.frames)
	return c
}

// SplitAt partitions the track at the given local time: keyframes at or
// after the split move to the returned track rebased by -splitTime,
// earlier keyframes stay.
func (t *Track) SplitAt(splitTime float64) *Track {
	after := &Track{Property: t.Property, Enabled: t.Enabled}

	var kept []Keyframe
	for _, kf := range t.frames {
		if kf.Time >= splitTime {
			moved := kf
			moved.Time = kf.Time - splitTime
			after.frames = append(after.frames, moved)
		} else {
			kept = append(kept, kf)
		}
	}
	t.frames = kept
	return after
}

func (t *Track) sortFrames() {
	sort.Slice(t.frames, func(i, j int) bool {
		return t.frames[i].Time < t.frames[j].Time
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
