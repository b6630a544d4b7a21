package timeline

import (
	"github.com/google/uuid"

	"github.com/ivlev/montage/internal/easing"
	"github.com/ivlev/montage/internal/keyframes"
)

// MediaKind is the kind of source a clip plays.
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
)

// MinClipDuration is the shortest a clip may be trimmed to.
const MinClipDuration = 0.1

// FadeSettings describes a fade ramp at one end of an audio clip.
type FadeSettings struct {
	Enabled  bool
	Duration float64
	Curve    easing.Name
}

// AudioSettings bundles the mixing state of an audio clip.
type AudioSettings struct {
	Volume     float64 // [0,1]
	Pan        float64 // [-1,1]
	Muted      bool
	Solo       bool
	FadeIn     FadeSettings
	FadeOut    FadeSettings
	Automation *keyframes.Track // volume automation, local time
}

// DefaultAudioSettings returns full volume, centered, no fades, with an
// empty volume automation track.
func DefaultAudioSettings() *AudioSettings {
	return &AudioSettings{
		Volume:     1,
		Pan:        0,
		FadeIn:     FadeSettings{Duration: 1, Curve: easing.Linear},
		FadeOut:    FadeSettings{Duration: 1, Curve: easing.Linear},
		Automation: keyframes.NewTrack(keyframes.PropertyVolume),
	}
}

// Clone returns an independent deep copy of the settings.
func (a *AudioSettings) Clone() *AudioSettings {
	if a == nil {
		return nil
	}
	c := *a
	c.Automation = a.Automation.Clone()
	return &c
}

// Clip is a placed instance of a media source on a track. StartTime and
// Duration are timeline seconds; TrimStart/TrimEnd are offsets into the
// original source.
type Clip struct {
	ID        string
	Name      string
	Source    string // path or URI, opaque to the engine
	Kind      MediaKind
	StartTime float64
	Duration  float64
	TrimStart float64
	TrimEnd   float64
	Thumbnail string // opaque handle, empty when absent
	Audio     *AudioSettings
}

func newClipID() string { return uuid.NewString() }

// NewClip builds a clip with a fresh id. Audio clips get default audio
// settings attached.
func NewClip(name, source string, kind MediaKind, startTime, duration float64) *Clip {
	c := &Clip{
		ID:        uuid.NewString(),
		Name:      name,
		Source:    source,
		Kind:      kind,
		StartTime: startTime,
		Duration:  duration,
	}
	if kind == MediaAudio {
		c.Audio = DefaultAudioSettings()
	}
	return c
}

// End returns the clip's exclusive end time on the timeline.
func (c *Clip) End() float64 { return c.StartTime + c.Duration }

// Contains reports whether the clip covers the timeline instant t using
// half-open [start, end) semantics, so adjacent clips never double-hit
// at a shared boundary.
func (c *Clip) Contains(t float64) bool {
	return t >= c.StartTime && t < c.End()
}

// Clone returns an independent deep copy of the clip.
func (c *Clip) Clone() *Clip {
	if c == nil {
		return nil
	}
	d := *c
	d.Audio = c.Audio.Clone()
	return &d
}

// VolumeAt folds mute, base volume, keyframe automation and fade ramps
// into a single gain for the given clip-local time. Non-audio clips are
// unity gain.
func (c *Clip) VolumeAt(local float64) float64 {
	if c.Audio == nil {
		return 1
	}
	a := c.Audio
	if a.Muted {
		return 0
	}

	v := a.Volume
	if a.Automation != nil && a.Automation.Len() > 0 {
		v *= a.Automation.ValueAt(local)
	}

	if a.FadeIn.Enabled && a.FadeIn.Duration > 0 && local < a.FadeIn.Duration {
		v *= easing.Apply(a.FadeIn.Curve, local/a.FadeIn.Duration)
	}
	if a.FadeOut.Enabled && a.FadeOut.Duration > 0 {
		fromEnd := c.Duration - local
		if fromEnd < a.FadeOut.Duration {
			v *= easing.Apply(a.FadeOut.Curve, fromEnd/a.FadeOut.Duration)
		}
	}

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}
