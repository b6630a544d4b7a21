package project

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ivlev/montage/internal/easing"
	"github.com/ivlev/montage/internal/timeline"
	"github.com/ivlev/montage/internal/transitions"
)

// buildTimeline assembles an arrangement exercising every serialized
// field: two tracks, three clips (one with keyframes and fades), and a
// transition.
func buildTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	tl := timeline.New()
	video := tl.TrackByType(timeline.TrackVideo)
	audio := tl.TrackByType(timeline.TrackAudio)

	a, err := tl.AddClip(video.ID, timeline.ClipSpec{
		Name: "intro", Source: "media/intro.mp4", Kind: timeline.MediaVideo, Duration: 5,
		Thumbnail: "thumb:intro",
	})
	if err != nil {
		t.Fatalf("AddClip failed: %v", err)
	}
	b, err := tl.AddClip(video.ID, timeline.ClipSpec{
		Name: "main", Source: "media/main.mp4", Kind: timeline.MediaVideo, Duration: 12,
	})
	if err != nil {
		t.Fatalf("AddClip failed: %v", err)
	}

	music, err := tl.AddClip(audio.ID, timeline.ClipSpec{
		Name: "music", Source: "media/music.wav", Kind: timeline.MediaAudio, Duration: 17,
	})
	if err != nil {
		t.Fatalf("AddClip failed: %v", err)
	}
	music.Audio.Volume = 0.8
	music.Audio.Pan = -0.25
	music.Audio.FadeIn = timeline.FadeSettings{Enabled: true, Duration: 2, Curve: easing.Linear}
	music.Audio.FadeOut = timeline.FadeSettings{Enabled: true, Duration: 3, Curve: easing.EaseOut}
	music.Audio.Automation.Add(0, 0.2, easing.Linear)
	music.Audio.Automation.Add(8, 1.0, easing.EaseInOut)

	tl.AddTransition(transitions.New(transitions.TypeCrossfade, 1.5, easing.EaseInOut, a.ID, b.ID))
	tl.SetFilters(timeline.Filters{Brightness: 10, Contrast: -5, Saturation: 30})
	return tl
}

func TestRoundTrip(t *testing.T) {
	tl := buildTimeline(t)
	meta := NewMeta("demo")

	first := Snapshot(meta, tl)
	data, err := Serialize(first)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	second := Snapshot(Meta{
		ID: parsed.ID, Name: parsed.Name,
		Created: parsed.Created, Modified: parsed.Modified,
		Settings: parsed.Settings,
	}, parsed.Timeline())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRoundTripPreservesKeyframes(t *testing.T) {
	tl := buildTimeline(t)
	p := Snapshot(NewMeta("demo"), tl)

	data, _ := Serialize(p)
	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	restored := parsed.Timeline()
	audio := restored.TrackByType(timeline.TrackAudio)
	if audio == nil || len(audio.Clips) != 1 {
		t.Fatal("audio track not restored")
	}
	music := audio.Clips[0]
	if music.Audio == nil {
		t.Fatal("audio settings not restored")
	}

	frames := music.Audio.Automation.Keyframes()
	if len(frames) != 2 {
		t.Fatalf("keyframes = %d, expected 2", len(frames))
	}
	if frames[0].Value != 0.2 || frames[1].Time != 8 {
		t.Errorf("keyframes not restored: %+v", frames)
	}
	if frames[0].ID == "" {
		t.Error("keyframe ids must survive the round trip")
	}

	if got := restored.Duration(); got != 17 {
		t.Errorf("restored duration = %f, expected 17", got)
	}
}

func TestMissingVersionDefaultsAndStamps(t *testing.T) {
	doc := []byte(`{
		"id": "p1", "name": "old",
		"settings": {"width": 1280, "height": 720, "fps": 30, "backgroundColor": "#000000"},
		"tracks": [], "transitions": [],
		"filters": {"brightness": 0, "contrast": 0, "saturation": 0}
	}`)

	p, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Version != SchemaVersion {
		t.Errorf("version = %q, expected stamp %q", p.Version, SchemaVersion)
	}
}

func TestParseRejectsMalformedSnapshots(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{"id": `},
		{"missing id", `{"name": "x", "tracks": []}`},
		{"bad track type", `{"id": "p", "tracks": [{"id": "t", "type": "subtitle", "items": []}]}`},
		{"bad clip duration", `{"id": "p", "tracks": [{"id": "t", "type": "video", "items": [
			{"id": "c", "name": "c", "path": "c.mp4", "type": "video", "startTime": 0, "duration": 0, "thumbnail": null}
		]}]}`},
		{"bad transition type", `{"id": "p", "tracks": [], "transitions": [
			{"id": "tr", "type": "spiral", "duration": 1, "easing": "linear", "fromClipId": "a", "toClipId": "b"}
		]}`},
	}

	for _, tc := range tests {
		p, err := Parse([]byte(tc.doc))
		if err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
		if p != nil {
			t.Errorf("%s: nothing may be returned on failure", tc.name)
		}
		if tc.name != "invalid json" && !errors.Is(err, ErrMalformedSnapshot) {
			t.Errorf("%s: expected ErrMalformedSnapshot, got %v", tc.name, err)
		}
	}
}

func TestSaveLoadFile(t *testing.T) {
	tl := buildTimeline(t)
	p := Snapshot(NewMeta("disk"), tl)

	path := filepath.Join(t.TempDir(), "project.json")
	if err := Save(p, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "disk" {
		t.Errorf("name = %q", loaded.Name)
	}
	if len(loaded.Tracks) != 2 {
		t.Errorf("tracks = %d, expected 2", len(loaded.Tracks))
	}
}

func TestVideoClipsOmitAudioFields(t *testing.T) {
	tl := timeline.New()
	video := tl.TrackByType(timeline.TrackVideo)
	tl.AddClip(video.ID, timeline.ClipSpec{Name: "v", Source: "v.mp4", Kind: timeline.MediaVideo, Duration: 3})

	p := Snapshot(NewMeta("x"), tl)
	clip := p.Tracks[0].Items[0]
	if clip.Volume != nil || clip.FadeIn != nil || clip.VolumeKeyframes != nil {
		t.Error("video clips must not carry audio fields")
	}
	if clip.Thumbnail != nil {
		t.Error("absent thumbnail should serialize as null")
	}
}
