package editor

import (
	"fmt"

	"github.com/ivlev/montage/internal/history"
	"github.com/ivlev/montage/internal/timeline"
	"github.com/ivlev/montage/internal/transitions"
)

// trackState is the full clip list of one track on one side of an edit.
// Commands hold deep copies, so later edits cannot corrupt history.
type trackState struct {
	trackID string
	clips   []*timeline.Clip
}

func cloneClips(clips []*timeline.Clip) []*timeline.Clip {
	out := make([]*timeline.Clip, len(clips))
	for i, c := range clips {
		out[i] = c.Clone()
	}
	return out
}

// captureTracks snapshots the clip lists of the named tracks.
func (e *Editor) captureTracks(trackIDs ...string) []trackState {
	states := make([]trackState, 0, len(trackIDs))
	for _, id := range trackIDs {
		track, err := e.tl.Track(id)
		if err != nil {
			continue
		}
		states = append(states, trackState{trackID: id, clips: cloneClips(track.Clips)})
	}
	return states
}

// trackCommand restores before/after clip snapshots of the affected
// tracks. One command type covers every arrangement edit, keyed by the
// action kind for labeling.
type trackCommand struct {
	ed     *Editor
	before []trackState
	after  []trackState
}

func (c *trackCommand) Apply(dir history.Direction) error {
	states := c.after
	if dir == history.Backward {
		states = c.before
	}
	for _, st := range states {
		track, err := c.ed.tl.Track(st.trackID)
		if err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		track.Clips = cloneClips(st.clips)
	}
	c.ed.tl.RecalcDuration()
	c.ed.emit(EventTimeline)
	return nil
}

// pushTrackCommand records an already-applied arrangement edit.
func (e *Editor) pushTrackCommand(kind history.Kind, before []trackState, trackIDs ...string) {
	cmd := &trackCommand{ed: e, before: before, after: e.captureTracks(trackIDs...)}
	e.hist.Push(kind, "", cmd)
}

// transitionsCommand restores the whole transition list.
type transitionsCommand struct {
	ed     *Editor
	before []*transitions.Transition
	after  []*transitions.Transition
}

func cloneTransitions(list []*transitions.Transition) []*transitions.Transition {
	out := make([]*transitions.Transition, len(list))
	for i, tr := range list {
		out[i] = tr.Clone()
	}
	return out
}

func (c *transitionsCommand) Apply(dir history.Direction) error {
	state := c.after
	if dir == history.Backward {
		state = c.before
	}
	c.ed.tl.Transitions = cloneTransitions(state)
	c.ed.emit(EventTransitions)
	return nil
}

// filtersCommand restores the global filter settings.
type filtersCommand struct {
	ed     *Editor
	before timeline.Filters
	after  timeline.Filters
}

func (c *filtersCommand) Apply(dir history.Direction) error {
	f := c.after
	if dir == history.Backward {
		f = c.before
	}
	c.ed.tl.Filters = f
	c.ed.emit(EventFilters)
	return nil
}
