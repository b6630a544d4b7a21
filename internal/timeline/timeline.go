package timeline

import (
	"errors"
	"fmt"

	"github.com/ivlev/montage/internal/transitions"
)

var (
	ErrTrackNotFound      = errors.New("track not found")
	ErrClipNotFound       = errors.New("clip not found")
	ErrTransitionNotFound = errors.New("transition not found")
	ErrKeyframeNotFound   = errors.New("keyframe not found")
	ErrInvalidDuration    = errors.New("clip duration must be positive")
	ErrSplitOutOfBounds   = errors.New("split point outside clip bounds")
	ErrInvalidIndex       = errors.New("clip index out of range")
)

// Filters holds the global color adjustments, each in [-100,100].
type Filters struct {
	Brightness float64
	Contrast   float64
	Saturation float64
}

func clampFilter(v float64) float64 {
	if v < -100 {
		return -100
	}
	if v > 100 {
		return 100
	}
	return v
}

// Clamp forces every filter value into [-100,100].
func (f Filters) Clamp() Filters {
	return Filters{
		Brightness: clampFilter(f.Brightness),
		Contrast:   clampFilter(f.Contrast),
		Saturation: clampFilter(f.Saturation),
	}
}

// Timeline is the aggregate arrangement: tracks of clips, the cross
// track transitions, global filters, and the derived total duration.
type Timeline struct {
	Tracks      []*Track
	Transitions []*transitions.Transition
	Filters     Filters
	duration    float64
}

// New returns a timeline with the standard initial lanes: one video
// track and one audio track.
func New() *Timeline {
	return &Timeline{
		Tracks: []*Track{
			NewTrack(TrackVideo, "Video 1"),
			NewTrack(TrackAudio, "Audio 1"),
		},
	}
}

// Empty returns a timeline with no tracks, for deserialization.
func Empty() *Timeline {
	return &Timeline{}
}

// Duration is the derived total length: the maximum clip end time
// across all tracks. It is recomputed on every extent change, never set
// directly.
func (tl *Timeline) Duration() float64 { return tl.duration }

// RecalcDuration recomputes the aggregate duration from scratch. It is
// idempotent and has no other side effects.
func (tl *Timeline) RecalcDuration() {
	d := 0.0
	for _, t := range tl.Tracks {
		if end := t.End(); end > d {
			d = end
		}
	}
	tl.duration = d
}

// Track returns the track with the given id.
func (tl *Timeline) Track(id string) (*Track, error) {
	for _, t := range tl.Tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTrackNotFound, id)
}

// TrackByType returns the first track of the given type, or nil.
func (tl *Timeline) TrackByType(tt TrackType) *Track {
	for _, t := range tl.Tracks {
		if t.Type == tt {
			return t
		}
	}
	return nil
}

// AddTrack appends a new empty track and returns it.
func (tl *Timeline) AddTrack(tt TrackType, name string) *Track {
	t := NewTrack(tt, name)
	tl.Tracks = append(tl.Tracks, t)
	return t
}

// FindClip locates a clip anywhere on the timeline.
func (tl *Timeline) FindClip(clipID string) (*Track, *Clip, error) {
	for _, t := range tl.Tracks {
		if c := t.Clip(clipID); c != nil {
			return t, c, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrClipNotFound, clipID)
}

// ClipSpec describes a clip to place. When StartTime is nil the clip is
// appended at the current aggregate duration, which is what linear
// drag-and-drop assembly wants.
type ClipSpec struct {
	Name      string
	Source    string
	Kind      MediaKind
	StartTime *float64
	Duration  float64
	Thumbnail string
}

// AddClip places a new clip on the track and returns it. Overlap with
// existing clips is deliberately not rejected here; packing is only
// enforced by ReorderClips.
func (tl *Timeline) AddClip(trackID string, spec ClipSpec) (*Clip, error) {
	track, err := tl.Track(trackID)
	if err != nil {
		return nil, err
	}
	if spec.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	start := tl.duration
	if spec.StartTime != nil {
		start = *spec.StartTime
		if start < 0 {
			start = 0
		}
	}

	clip := NewClip(spec.Name, spec.Source, spec.Kind, start, spec.Duration)
	clip.Thumbnail = spec.Thumbnail
	track.Clips = append(track.Clips, clip)
	track.sortClips()
	tl.RecalcDuration()
	return clip, nil
}

// RemoveClip deletes the clip from the track and returns it.
func (tl *Timeline) RemoveClip(trackID, clipID string) (*Clip, error) {
	track, err := tl.Track(trackID)
	if err != nil {
		return nil, err
	}
	i, clip := track.findClip(clipID)
	if clip == nil {
		return nil, fmt.Errorf("%w: %s", ErrClipNotFound, clipID)
	}
	track.Clips = append(track.Clips[:i], track.Clips[i+1:]...)
	tl.RecalcDuration()
	return clip, nil
}

// MoveClip repositions a clip on its track. Negative start times clamp
// to 0; overlaps with neighbors are not resolved.
func (tl *Timeline) MoveClip(trackID, clipID string, newStartTime float64) error {
	track, err := tl.Track(trackID)
	if err != nil {
		return err
	}
	_, clip := track.findClip(clipID)
	if clip == nil {
		return fmt.Errorf("%w: %s", ErrClipNotFound, clipID)
	}
	if newStartTime < 0 {
		newStartTime = 0
	}
	clip.StartTime = newStartTime
	track.sortClips()
	tl.RecalcDuration()
	return nil
}

// MoveClipToTrack relocates a clip to another track as one state
// transition: both memberships change before any recomputation, so the
// clip is never observable as belonging to neither track.
func (tl *Timeline) MoveClipToTrack(fromTrackID, toTrackID, clipID string, newStartTime float64) error {
	from, err := tl.Track(fromTrackID)
	if err != nil {
		return err
	}
	to, err := tl.Track(toTrackID)
	if err != nil {
		return err
	}
	i, clip := from.findClip(clipID)
	if clip == nil {
		return fmt.Errorf("%w: %s", ErrClipNotFound, clipID)
	}
	if newStartTime < 0 {
		newStartTime = 0
	}

	from.Clips = append(from.Clips[:i], from.Clips[i+1:]...)
	clip.StartTime = newStartTime
	to.Clips = append(to.Clips, clip)
	to.sortClips()
	tl.RecalcDuration()
	return nil
}

// ReorderClips moves the clip at fromIndex to toIndex and then repacks
// the whole track back-to-back from 0. Reordering always collapses
// gaps; it is not a position swap.
func (tl *Timeline) ReorderClips(trackID string, fromIndex, toIndex int) error {
	track, err := tl.Track(trackID)
	if err != nil {
		return err
	}
	n := len(track.Clips)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return ErrInvalidIndex
	}
	if fromIndex != toIndex {
		clip := track.Clips[fromIndex]
		rest := append(track.Clips[:fromIndex:fromIndex], track.Clips[fromIndex+1:]...)
		track.Clips = append(rest[:toIndex:toIndex], append([]*Clip{clip}, rest[toIndex:]...)...)
	}
	track.repack()
	tl.RecalcDuration()
	return nil
}

// SplitClip cuts a clip at the absolute timeline time atTime. The
// original keeps the head, a new clip with a "(split)" name suffix
// takes the tail. For audio clips the tail's trim offset advances and
// volume keyframes at or after the cut move to it, rebased.
func (tl *Timeline) SplitClip(trackID, clipID string, atTime float64) (*Clip, error) {
	track, err := tl.Track(trackID)
	if err != nil {
		return nil, err
	}
	_, clip := track.findClip(clipID)
	if clip == nil {
		return nil, fmt.Errorf("%w: %s", ErrClipNotFound, clipID)
	}

	splitPoint := atTime - clip.StartTime
	if splitPoint <= 0 || splitPoint >= clip.Duration {
		return nil, ErrSplitOutOfBounds
	}

	tail := clip.Clone()
	tail.ID = newClipID()
	tail.Name = clip.Name + " (split)"
	tail.StartTime = atTime
	tail.Duration = clip.Duration - splitPoint

	if tail.Audio != nil {
		tail.TrimStart = clip.TrimStart + splitPoint
		tail.Audio.Automation = clip.Audio.Automation.SplitAt(splitPoint)
	}

	clip.Duration = splitPoint

	track.Clips = append(track.Clips, tail)
	track.sortClips()
	tl.RecalcDuration()
	return tail, nil
}

// UpdateClipDuration resizes a clip, clamped to the minimum duration.
func (tl *Timeline) UpdateClipDuration(trackID, clipID string, newDuration float64) error {
	track, err := tl.Track(trackID)
	if err != nil {
		return err
	}
	_, clip := track.findClip(clipID)
	if clip == nil {
		return fmt.Errorf("%w: %s", ErrClipNotFound, clipID)
	}
	if newDuration < MinClipDuration {
		newDuration = MinClipDuration
	}
	clip.Duration = newDuration
	tl.RecalcDuration()
	return nil
}

// ClipAtTime returns the clip covering the instant on the first track
// of the given type, or nil.
func (tl *Timeline) ClipAtTime(tt TrackType, at float64) *Clip {
	for _, t := range tl.Tracks {
		if t.Type != tt {
			continue
		}
		if c := t.ClipAt(at); c != nil {
			return c
		}
	}
	return nil
}

// AllClipsAtTime returns every clip covering the instant across all
// tracks, in track order.
func (tl *Timeline) AllClipsAtTime(at float64) []*Clip {
	var out []*Clip
	for _, t := range tl.Tracks {
		if c := t.ClipAt(at); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// SetFilters stores the global filters, clamped into range.
func (tl *Timeline) SetFilters(f Filters) {
	tl.Filters = f.Clamp()
}

// AddTransition registers a transition between two clips. Clip ids are
// not validated here; dangling references are resolved lazily.
func (tl *Timeline) AddTransition(tr *transitions.Transition) {
	tl.Transitions = append(tl.Transitions, tr)
}

// RemoveTransition deletes the transition with the given id and
// returns it.
func (tl *Timeline) RemoveTransition(id string) (*transitions.Transition, error) {
	for i, tr := range tl.Transitions {
		if tr.ID == id {
			tl.Transitions = append(tl.Transitions[:i], tl.Transitions[i+1:]...)
			return tr, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTransitionNotFound, id)
}

// Transition returns the transition with the given id, or nil.
func (tl *Timeline) Transition(id string) *transitions.Transition {
	for _, tr := range tl.Transitions {
		if tr.ID == id {
			return tr
		}
	}
	return nil
}

// ResolveTransition looks up both endpoint clips of a transition. ok is
// false when either reference dangles; renderers skip those.
func (tl *Timeline) ResolveTransition(tr *transitions.Transition) (from, to *Clip, ok bool) {
	_, from, errFrom := tl.FindClip(tr.FromClipID)
	_, to, errTo := tl.FindClip(tr.ToClipID)
	if errFrom != nil || errTo != nil {
		return nil, nil, false
	}
	return from, to, true
}

// Clone returns an independent deep copy of the whole arrangement.
func (tl *Timeline) Clone() *Timeline {
	c := &Timeline{Filters: tl.Filters, duration: tl.duration}
	c.Tracks = make([]*Track, len(tl.Tracks))
	for i, t := range tl.Tracks {
		c.Tracks[i] = t.Clone()
	}
	c.Transitions = make([]*transitions.Transition, len(tl.Transitions))
	for i, tr := range tl.Transitions {
		c.Transitions[i] = tr.Clone()
	}
	return c
}
