package keyframes

import (
	"math"
	"testing"

	"github.com/ivlev/montage/internal/easing"
)

func TestLinearInterpolation(t *testing.T) {
	track := NewTrack(PropertyVolume)
	track.Add(0, 0, easing.Linear)
	track.Add(2, 1, easing.Linear)

	tests := []struct {
		time float64
		want float64
	}{
		{0, 0},
		{1, 0.5},
		{2, 1},
	}

	for _, tc := range tests {
		if got := track.ValueAt(tc.time); got != tc.want {
			t.Errorf("ValueAt(%f) = %f, expected %f", tc.time, got, tc.want)
		}
	}
}

func TestHoldSemantics(t *testing.T) {
	track := NewTrack(PropertyVolume)
	track.Add(2, 0.5, easing.Linear)

	if got := track.ValueAt(0); got != 0.5 {
		t.Errorf("before first keyframe: got %f, expected 0.5", got)
	}
	if got := track.ValueAt(100); got != 0.5 {
		t.Errorf("after last keyframe: got %f, expected 0.5", got)
	}
}

func TestDefaultWhenEmptyOrDisabled(t *testing.T) {
	track := NewTrack(PropertyVolume)
	if got := track.ValueAt(1); got != 1 {
		t.Errorf("empty volume track should return default 1, got %f", got)
	}

	track.Add(0, 0.2, easing.Linear)
	track.Enabled = false
	if got := track.ValueAt(0); got != 1 {
		t.Errorf("disabled track should return default 1, got %f", got)
	}
}

func TestValueAtHitsKeyframesExactly(t *testing.T) {
	track := NewTrack(PropertyVolume)
	track.Add(0, 0.1, easing.EaseInOut)
	track.Add(1.5, 0.8, easing.BounceOut)
	track.Add(4, 0.3, easing.CubicIn)

	for _, kf := range track.Keyframes() {
		if got := track.ValueAt(kf.Time); got != kf.Value {
			t.Errorf("ValueAt(%f) = %f, expected keyframe value %f", kf.Time, got, kf.Value)
		}
	}
}

func TestSegmentUsesEarlierKeyframeEasing(t *testing.T) {
	track := NewTrack(PropertyVolume)
	track.Add(0, 0, easing.EaseIn)
	track.Add(2, 1, easing.Linear)

	// Midpoint under the BEFORE keyframe's ease-in: 0.5^2 = 0.25. If the
	// later keyframe's linear easing were used this would be 0.5.
	if got := track.ValueAt(1); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("ValueAt(1) = %f, expected 0.25 (ease-in of earlier keyframe)", got)
	}
}

func TestNearDuplicateTimeReplaces(t *testing.T) {
	track := NewTrack(PropertyVolume)
	first := track.Add(1.0, 0.2, easing.Linear)
	second := track.Add(1.0005, 0.9, easing.EaseOut)

	if track.Len() != 1 {
		t.Fatalf("expected 1 keyframe after near-duplicate insert, got %d", track.Len())
	}
	if second.ID != first.ID {
		t.Error("replacement should keep the original keyframe id")
	}
	if got := track.Keyframes()[0].Value; got != 0.9 {
		t.Errorf("replacement value not applied, got %f", got)
	}
}

func TestValueClamping(t *testing.T) {
	track := NewTrack(PropertyVolume)
	kf := track.Add(0, 3.5, easing.Linear)
	if kf.Value != 1 {
		t.Errorf("volume should clamp to 1, got %f", kf.Value)
	}

	pan := NewTrack(PropertyPan)
	kf = pan.Add(0, -7, easing.Linear)
	if kf.Value != -1 {
		t.Errorf("pan should clamp to -1, got %f", kf.Value)
	}
}

func TestInsertKeepsSorted(t *testing.T) {
	track := NewTrack(PropertyVolume)
	track.Add(3, 0.3, easing.Linear)
	track.Add(1, 0.1, easing.Linear)
	track.Add(2, 0.2, easing.Linear)

	frames := track.Keyframes()
	for i := 1; i < len(frames); i++ {
		if frames[i].Time < frames[i-1].Time {
			t.Fatalf("keyframes not sorted: %v", frames)
		}
	}
}

func TestUpdateKeyframe(t *testing.T) {
	track := NewTrack(PropertyVolume)
	kf := track.Add(1, 0.5, easing.Linear)
	track.Add(2, 1, easing.Linear)

	newTime := 3.0
	newValue := 9.0
	if !track.UpdateKeyframe(kf.ID, Update{Time: &newTime, Value: &newValue}) {
		t.Fatal("update of existing keyframe failed")
	}

	frames := track.Keyframes()
	if frames[len(frames)-1].ID != kf.ID {
		t.Error("keyframe should have re-sorted to the end after time change")
	}
	if frames[len(frames)-1].Value != 1 {
		t.Errorf("updated value should re-clamp to 1, got %f", frames[len(frames)-1].Value)
	}

	if track.UpdateKeyframe("missing", Update{Value: &newValue}) {
		t.Error("updating an unknown id should report false")
	}
}

func TestRemoveKeyframe(t *testing.T) {
	track := NewTrack(PropertyVolume)
	kf := track.Add(1, 0.5, easing.Linear)

	if !track.Remove(kf.ID) {
		t.Fatal("remove of existing keyframe failed")
	}
	if track.Len() != 0 {
		t.Errorf("expected empty track, got %d keyframes", track.Len())
	}
	if track.Remove(kf.ID) {
		t.Error("second remove should report false")
	}
}

func TestSplitAt(t *testing.T) {
	track := NewTrack(PropertyVolume)
	track.Add(0, 0, easing.Linear)
	track.Add(1, 0.4, easing.Linear)
	track.Add(3, 0.8, easing.Linear)
	track.Add(5, 1, easing.Linear)

	after := track.SplitAt(3)

	if track.Len() != 2 {
		t.Errorf("expected 2 keyframes before the split, got %d", track.Len())
	}
	if after.Len() != 2 {
		t.Fatalf("expected 2 keyframes after the split, got %d", after.Len())
	}

	frames := after.Keyframes()
	if frames[0].Time != 0 || frames[0].Value != 0.8 {
		t.Errorf("first moved keyframe should rebase to t=0, got t=%f v=%f", frames[0].Time, frames[0].Value)
	}
	if frames[1].Time != 2 {
		t.Errorf("second moved keyframe should rebase to t=2, got %f", frames[1].Time)
	}
}

func TestPropertyRangeTable(t *testing.T) {
	tests := []struct {
		prop Property
		want Range
	}{
		{PropertyVolume, Range{0, 1, 1}},
		{PropertyPan, Range{-1, 1, 0}},
		{PropertyOpacity, Range{0, 1, 1}},
		{PropertyBrightness, Range{-100, 100, 0}},
		{PropertyContrast, Range{-100, 100, 0}},
		{PropertySaturation, Range{-100, 100, 0}},
	}

	for _, tc := range tests {
		if got := tc.prop.Range(); got != tc.want {
			t.Errorf("%s range = %+v, expected %+v", tc.prop, got, tc.want)
		}
	}
}
