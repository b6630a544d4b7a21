// Package project defines the snapshot schema the engine persists and
// loads. The contract is a JSON document; loading is all-or-nothing and
// stamps the current schema version as a migration seam.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ivlev/montage/internal/easing"
	"github.com/ivlev/montage/internal/keyframes"
	"github.com/ivlev/montage/internal/timeline"
	"github.com/ivlev/montage/internal/transitions"
)

// SchemaVersion is stamped on every snapshot written or loaded.
const SchemaVersion = "1.0.0"

// legacyVersion is assumed for snapshots that predate the version
// field.
const legacyVersion = "0.0.0"

var ErrMalformedSnapshot = errors.New("malformed project snapshot")

// Settings is the project's render canvas configuration.
type Settings struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	FPS             int    `json:"fps"`
	BackgroundColor string `json:"backgroundColor"`
}

// DefaultSettings is a 1080p 30fps black canvas.
func DefaultSettings() Settings {
	return Settings{Width: 1920, Height: 1080, FPS: 30, BackgroundColor: "#000000"}
}

// Keyframe is the serialized form of one automation sample.
type Keyframe struct {
	ID     string  `json:"id"`
	Time   float64 `json:"time"`
	Value  float64 `json:"value"`
	Easing string  `json:"easing"`
}

// Fade is the serialized form of a fade ramp.
type Fade struct {
	Enabled  bool    `json:"enabled"`
	Duration float64 `json:"duration"`
	Curve    string  `json:"curve,omitempty"`
}

// Clip is the serialized form of a placed clip. Audio-only fields are
// pointers so video and image clips omit them entirely.
type Clip struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	Type      string  `json:"type"`
	StartTime float64 `json:"startTime"`
	Duration  float64 `json:"duration"`
	TrimStart float64 `json:"trimStart,omitempty"`
	TrimEnd   float64 `json:"trimEnd,omitempty"`
	Thumbnail *string `json:"thumbnail"`

	Volume          *float64   `json:"volume,omitempty"`
	Pan             *float64   `json:"pan,omitempty"`
	Muted           *bool      `json:"muted,omitempty"`
	Solo            *bool      `json:"solo,omitempty"`
	FadeIn          *Fade      `json:"fadeIn,omitempty"`
	FadeOut         *Fade      `json:"fadeOut,omitempty"`
	VolumeKeyframes []Keyframe `json:"volumeKeyframes,omitempty"`
}

// Track is the serialized form of one lane.
type Track struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Items []Clip `json:"items"`
}

// Transition is the serialized form of one blend.
type Transition struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Duration   float64 `json:"duration"`
	Easing     string  `json:"easing"`
	FromClipID string  `json:"fromClipId"`
	ToClipID   string  `json:"toClipId"`
}

// Filters is the serialized global color adjustment state.
type Filters struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
}

// Project is the full snapshot document.
type Project struct {
	Version     string       `json:"version"`
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Created     time.Time    `json:"created"`
	Modified    time.Time    `json:"modified"`
	Settings    Settings     `json:"settings"`
	Tracks      []Track      `json:"tracks"`
	Transitions []Transition `json:"transitions"`
	Filters     Filters      `json:"filters"`
}

// Meta is the project-level metadata that wraps a timeline.
type Meta struct {
	ID       string
	Name     string
	Created  time.Time
	Modified time.Time
	Settings Settings
}

// NewMeta returns metadata for a fresh project.
func NewMeta(name string) Meta {
	now := time.Now().UTC()
	return Meta{
		ID:       uuid.NewString(),
		Name:     name,
		Created:  now,
		Modified: now,
		Settings: DefaultSettings(),
	}
}

// Snapshot converts the live arrangement into a snapshot document.
func Snapshot(meta Meta, tl *timeline.Timeline) *Project {
	p := &Project{
		Version:  SchemaVersion,
		ID:       meta.ID,
		Name:     meta.Name,
		Created:  meta.Created,
		Modified: meta.Modified,
		Settings: meta.Settings,
		Filters: Filters{
			Brightness: tl.Filters.Brightness,
			Contrast:   tl.Filters.Contrast,
			Saturation: tl.Filters.Saturation,
		},
	}

	p.Tracks = make([]Track, len(tl.Tracks))
	for i, track := range tl.Tracks {
		st := Track{
			ID:    track.ID,
			Name:  track.Name,
			Type:  string(track.Type),
			Items: make([]Clip, len(track.Clips)),
		}
		for j, clip := range track.Clips {
			st.Items[j] = encodeClip(clip)
		}
		p.Tracks[i] = st
	}

	p.Transitions = make([]Transition, len(tl.Transitions))
	for i, tr := range tl.Transitions {
		p.Transitions[i] = Transition{
			ID:         tr.ID,
			Type:       string(tr.Type),
			Duration:   tr.Duration,
			Easing:     string(tr.Easing),
			FromClipID: tr.FromClipID,
			ToClipID:   tr.ToClipID,
		}
	}

	return p
}

func encodeClip(c *timeline.Clip) Clip {
	out := Clip{
		ID:        c.ID,
		Name:      c.Name,
		Path:      c.Source,
		Type:      string(c.Kind),
		StartTime: c.StartTime,
		Duration:  c.Duration,
		TrimStart: c.TrimStart,
		TrimEnd:   c.TrimEnd,
	}
	if c.Thumbnail != "" {
		thumb := c.Thumbnail
		out.Thumbnail = &thumb
	}
	if a := c.Audio; a != nil {
		vol, pan := a.Volume, a.Pan
		muted, solo := a.Muted, a.Solo
		out.Volume = &vol
		out.Pan = &pan
		out.Muted = &muted
		out.Solo = &solo
		out.FadeIn = &Fade{Enabled: a.FadeIn.Enabled, Duration: a.FadeIn.Duration, Curve: string(a.FadeIn.Curve)}
		out.FadeOut = &Fade{Enabled: a.FadeOut.Enabled, Duration: a.FadeOut.Duration, Curve: string(a.FadeOut.Curve)}
		if a.Automation != nil {
			for _, kf := range a.Automation.Keyframes() {
				out.VolumeKeyframes = append(out.VolumeKeyframes, Keyframe{
					ID:     kf.ID,
					Time:   kf.Time,
					Value:  kf.Value,
					Easing: string(kf.Easing),
				})
			}
		}
	}
	return out
}

// Serialize renders the snapshot as indented JSON.
func Serialize(p *Project) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Parse decodes and validates a snapshot. A missing version field is
// treated as a legacy document; the current schema version is stamped
// either way. Nothing is partially applied: on any error the returned
// project is nil.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if p.Version == "" {
		p.Version = legacyVersion
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	// Migration seam: nothing to migrate yet between legacyVersion and
	// SchemaVersion beyond stamping.
	p.Version = SchemaVersion
	return &p, nil
}

func validate(p *Project) error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing project id", ErrMalformedSnapshot)
	}
	for _, track := range p.Tracks {
		if track.Type != string(timeline.TrackVideo) && track.Type != string(timeline.TrackAudio) {
			return fmt.Errorf("%w: track %s has unknown type %q", ErrMalformedSnapshot, track.ID, track.Type)
		}
		for _, clip := range track.Items {
			if clip.Duration <= 0 {
				return fmt.Errorf("%w: clip %s has non-positive duration", ErrMalformedSnapshot, clip.ID)
			}
			if clip.StartTime < 0 {
				return fmt.Errorf("%w: clip %s has negative start time", ErrMalformedSnapshot, clip.ID)
			}
		}
	}
	for _, tr := range p.Transitions {
		if !transitions.Valid(transitions.Type(tr.Type)) {
			return fmt.Errorf("%w: transition %s has unknown type %q", ErrMalformedSnapshot, tr.ID, tr.Type)
		}
	}
	return nil
}

// Timeline reconstructs the live arrangement from the snapshot.
func (p *Project) Timeline() *timeline.Timeline {
	tl := timeline.Empty()
	tl.Filters = timeline.Filters{
		Brightness: p.Filters.Brightness,
		Contrast:   p.Filters.Contrast,
		Saturation: p.Filters.Saturation,
	}.Clamp()

	for _, st := range p.Tracks {
		track := &timeline.Track{
			ID:   st.ID,
			Name: st.Name,
			Type: timeline.TrackType(st.Type),
		}
		for _, sc := range st.Items {
			track.Clips = append(track.Clips, decodeClip(sc))
		}
		tl.Tracks = append(tl.Tracks, track)
	}

	for _, str := range p.Transitions {
		tr := transitions.New(
			transitions.Type(str.Type),
			str.Duration,
			easing.Name(str.Easing),
			str.FromClipID,
			str.ToClipID,
		)
		tr.ID = str.ID
		tl.AddTransition(tr)
	}

	tl.RecalcDuration()
	return tl
}

func decodeClip(sc Clip) *timeline.Clip {
	c := &timeline.Clip{
		ID:        sc.ID,
		Name:      sc.Name,
		Source:    sc.Path,
		Kind:      timeline.MediaKind(sc.Type),
		StartTime: sc.StartTime,
		Duration:  sc.Duration,
		TrimStart: sc.TrimStart,
		TrimEnd:   sc.TrimEnd,
	}
	if sc.Thumbnail != nil {
		c.Thumbnail = *sc.Thumbnail
	}
	if c.Kind == timeline.MediaAudio {
		a := timeline.DefaultAudioSettings()
		if sc.Volume != nil {
			a.Volume = *sc.Volume
		}
		if sc.Pan != nil {
			a.Pan = *sc.Pan
		}
		if sc.Muted != nil {
			a.Muted = *sc.Muted
		}
		if sc.Solo != nil {
			a.Solo = *sc.Solo
		}
		if sc.FadeIn != nil {
			a.FadeIn = decodeFade(*sc.FadeIn)
		}
		if sc.FadeOut != nil {
			a.FadeOut = decodeFade(*sc.FadeOut)
		}
		a.Automation = keyframes.NewTrack(keyframes.PropertyVolume)
		for _, kf := range sc.VolumeKeyframes {
			a.Automation.Restore(keyframes.Keyframe{
				ID:     kf.ID,
				Time:   kf.Time,
				Value:  kf.Value,
				Easing: easing.Name(kf.Easing),
			})
		}
		c.Audio = a
	}
	return c
}

func decodeFade(f Fade) timeline.FadeSettings {
	curve := easing.Name(f.Curve)
	if !easing.Valid(curve) {
		curve = easing.Linear
	}
	return timeline.FadeSettings{Enabled: f.Enabled, Duration: f.Duration, Curve: curve}
}
