package timeline

import (
	"sort"

	"github.com/google/uuid"
)

// TrackType is the media lane kind.
type TrackType string

const (
	TrackVideo TrackType = "video"
	TrackAudio TrackType = "audio"
)

// Track is an ordered lane of clips of one kind. Ordering is defined by
// clip StartTime ascending; the engine keeps the slice sorted after
// every placement change.
type Track struct {
	ID    string
	Name  string
	Type  TrackType
	Clips []*Clip
}

// NewTrack returns an empty track with a fresh id.
func NewTrack(t TrackType, name string) *Track {
	return &Track{ID: uuid.NewString(), Name: name, Type: t}
}

// Clip returns the clip with the given id, or nil.
func (t *Track) Clip(id string) *Clip {
	_, c := t.findClip(id)
	return c
}

func (t *Track) findClip(id string) (int, *Clip) {
	for i, c := range t.Clips {
		if c.ID == id {
			return i, c
		}
	}
	return -1, nil
}

// ClipAt returns the first clip covering the timeline instant at, using
// half-open interval semantics, or nil.
func (t *Track) ClipAt(at float64) *Clip {
	for _, c := range t.Clips {
		if c.Contains(at) {
			return c
		}
	}
	return nil
}

// End returns the end time of the last clip on the track, 0 when empty.
func (t *Track) End() float64 {
	end := 0.0
	for _, c := range t.Clips {
		if c.End() > end {
			end = c.End()
		}
	}
	return end
}

// Clone returns an independent deep copy of the track.
func (t *Track) Clone() *Track {
	c := &Track{ID: t.ID, Name: t.Name, Type: t.Type}
	c.Clips = make([]*Clip, len(t.Clips))
	for i, clip := range t.Clips {
		c.Clips[i] = clip.Clone()
	}
	return c
}

func (t *Track) sortClips() {
	sort.SliceStable(t.Clips, func(i, j int) bool {
		return t.Clips[i].StartTime < t.Clips[j].StartTime
	})
}

// repack recomputes every clip's start time contiguously from 0 in the
// current slice order, collapsing all gaps.
func (t *Track) repack() {
	start := 0.0
	for _, c := range t.Clips {
		c.StartTime = start
		start += c.Duration
	}
}
