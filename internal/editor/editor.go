// Package editor composes the timeline arrangement with the history
// engine: every mutating operation is applied and recorded as a
// reversible command in one step. Editors are plain constructed values
// with no global state, so independent instances can coexist.
package editor

import (
	"github.com/ivlev/montage/internal/easing"
	"github.com/ivlev/montage/internal/history"
	"github.com/ivlev/montage/internal/keyframes"
	"github.com/ivlev/montage/internal/timeline"
	"github.com/ivlev/montage/internal/transitions"
)

// EventKind categorizes change notifications for observers.
type EventKind string

const (
	EventTimeline    EventKind = "timeline"
	EventTransitions EventKind = "transitions"
	EventFilters     EventKind = "filters"
	EventSelection   EventKind = "selection"
	EventHistory     EventKind = "history"
)

// Event is a change notification. The core stays UI-framework free;
// hosts subscribe an Observer and re-read whatever state they render.
type Event struct {
	Kind EventKind
}

// Observer receives change notifications from an Editor.
type Observer interface {
	EditorChanged(Event)
}

// Editor owns a timeline and its undo history. All methods are
// synchronous state transitions; the owner must confine calls to a
// single goroutine.
type Editor struct {
	tl        *timeline.Timeline
	hist      *history.Stack
	selected  string
	observers []Observer
	dirty     bool
}

// New wires an editor around an existing timeline and history stack.
func New(tl *timeline.Timeline, hist *history.Stack) *Editor {
	if tl == nil {
		tl = timeline.New()
	}
	if hist == nil {
		hist = history.New(0)
	}
	return &Editor{tl: tl, hist: hist}
}

// Timeline exposes the underlying arrangement for read access.
func (e *Editor) Timeline() *timeline.Timeline { return e.tl }

// History exposes the undo stack, mainly for UI state (labels, counts).
func (e *Editor) History() *history.Stack { return e.hist }

// Subscribe registers an observer for change events.
func (e *Editor) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *Editor) emit(kind EventKind) {
	e.dirty = true
	for _, o := range e.observers {
		o.EditorChanged(Event{Kind: kind})
	}
}

// Dirty reports whether the project changed since the last MarkSaved.
func (e *Editor) Dirty() bool { return e.dirty }

// MarkSaved clears the dirty flag, typically after a snapshot write.
func (e *Editor) MarkSaved() { e.dirty = false }

// Selected returns the selected clip id, empty when nothing is
// selected.
func (e *Editor) Selected() string { return e.selected }

// Select marks a clip as selected. Unknown ids clear the selection.
func (e *Editor) Select(clipID string) {
	if _, _, err := e.tl.FindClip(clipID); err != nil {
		clipID = ""
	}
	if e.selected != clipID {
		e.selected = clipID
		e.emit(EventSelection)
	}
}

// ClearSelection drops the current selection.
func (e *Editor) ClearSelection() { e.Select("") }

// AddClip places a clip and records the edit. Returns the new clip id.
func (e *Editor) AddClip(trackID string, spec timeline.ClipSpec) (string, error) {
	before := e.captureTracks(trackID)
	clip, err := e.tl.AddClip(trackID, spec)
	if err != nil {
		return "", err
	}
	e.pushTrackCommand(history.KindAddClip, before, trackID)
	e.emit(EventTimeline)
	return clip.ID, nil
}

// RemoveClip deletes a clip, clearing the selection if it was selected.
func (e *Editor) RemoveClip(trackID, clipID string) error {
	before := e.captureTracks(trackID)
	if _, err := e.tl.RemoveClip(trackID, clipID); err != nil {
		return err
	}
	if e.selected == clipID {
		e.selected = ""
		e.emit(EventSelection)
	}
	e.pushTrackCommand(history.KindRemoveClip, before, trackID)
	e.emit(EventTimeline)
	return nil
}

// MoveClip repositions a clip on its track.
func (e *Editor) MoveClip(trackID, clipID string, newStartTime float64) error {
	before := e.captureTracks(trackID)
	if err := e.tl.MoveClip(trackID, clipID, newStartTime); err != nil {
		return err
	}
	e.pushTrackCommand(history.KindMoveClip, before, trackID)
	e.emit(EventTimeline)
	return nil
}

// MoveClipToTrack relocates a clip across tracks as one undo step.
func (e *Editor) MoveClipToTrack(fromTrackID, toTrackID, clipID string, newStartTime float64) error {
	before := e.captureTracks(fromTrackID, toTrackID)
	if err := e.tl.MoveClipToTrack(fromTrackID, toTrackID, clipID, newStartTime); err != nil {
		return err
	}
	e.pushTrackCommand(history.KindMoveClip, before, fromTrackID, toTrackID)
	e.emit(EventTimeline)
	return nil
}

// ReorderClips reorders and repacks a track.
func (e *Editor) ReorderClips(trackID string, fromIndex, toIndex int) error {
	before := e.captureTracks(trackID)
	if err := e.tl.ReorderClips(trackID, fromIndex, toIndex); err != nil {
		return err
	}
	e.pushTrackCommand(history.KindReorderClips, before, trackID)
	e.emit(EventTimeline)
	return nil
}

// SplitClip cuts a clip at an absolute time, returning the tail's id.
func (e *Editor) SplitClip(trackID, clipID string, atTime float64) (string, error) {
	before := e.captureTracks(trackID)
	tail, err := e.tl.SplitClip(trackID, clipID, atTime)
	if err != nil {
		return "", err
	}
	e.pushTrackCommand(history.KindSplitClip, before, trackID)
	e.emit(EventTimeline)
	return tail.ID, nil
}

// UpdateClipDuration resizes a clip.
func (e *Editor) UpdateClipDuration(trackID, clipID string, newDuration float64) error {
	before := e.captureTracks(trackID)
	if err := e.tl.UpdateClipDuration(trackID, clipID, newDuration); err != nil {
		return err
	}
	e.pushTrackCommand(history.KindTrimClip, before, trackID)
	e.emit(EventTimeline)
	return nil
}

// AudioPatch carries optional audio setting changes; nil fields keep
// their current value.
type AudioPatch struct {
	Volume  *float64
	Pan     *float64
	Muted   *bool
	Solo    *bool
	FadeIn  *timeline.FadeSettings
	FadeOut *timeline.FadeSettings
}

// UpdateAudio applies a patch to an audio clip's settings.
func (e *Editor) UpdateAudio(trackID, clipID string, patch AudioPatch) error {
	track, err := e.tl.Track(trackID)
	if err != nil {
		return err
	}
	clip := track.Clip(clipID)
	if clip == nil || clip.Audio == nil {
		return timeline.ErrClipNotFound
	}

	before := e.captureTracks(trackID)
	a := clip.Audio
	if patch.Volume != nil {
		a.Volume = keyframes.PropertyVolume.Clamp(*patch.Volume)
	}
	if patch.Pan != nil {
		a.Pan = keyframes.PropertyPan.Clamp(*patch.Pan)
	}
	if patch.Muted != nil {
		a.Muted = *patch.Muted
	}
	if patch.Solo != nil {
		a.Solo = *patch.Solo
	}
	if patch.FadeIn != nil {
		a.FadeIn = *patch.FadeIn
	}
	if patch.FadeOut != nil {
		a.FadeOut = *patch.FadeOut
	}
	e.pushTrackCommand(history.KindUpdateAudio, before, trackID)
	e.emit(EventTimeline)
	return nil
}

// AddVolumeKeyframe records a volume automation keyframe on an audio
// clip. Time is clip-local seconds.
func (e *Editor) AddVolumeKeyframe(trackID, clipID string, at, value float64, ease easing.Name) (keyframes.Keyframe, error) {
	track, err := e.tl.Track(trackID)
	if err != nil {
		return keyframes.Keyframe{}, err
	}
	clip := track.Clip(clipID)
	if clip == nil || clip.Audio == nil {
		return keyframes.Keyframe{}, timeline.ErrClipNotFound
	}

	before := e.captureTracks(trackID)
	kf := clip.Audio.Automation.Add(at, value, ease)
	e.pushTrackCommand(history.KindAddKeyframe, before, trackID)
	e.emit(EventTimeline)
	return kf, nil
}

// RemoveVolumeKeyframe deletes a volume automation keyframe.
func (e *Editor) RemoveVolumeKeyframe(trackID, clipID, keyframeID string) error {
	track, err := e.tl.Track(trackID)
	if err != nil {
		return err
	}
	clip := track.Clip(clipID)
	if clip == nil || clip.Audio == nil {
		return timeline.ErrClipNotFound
	}

	before := e.captureTracks(trackID)
	if !clip.Audio.Automation.Remove(keyframeID) {
		return timeline.ErrKeyframeNotFound
	}
	e.pushTrackCommand(history.KindRemoveKeyframe, before, trackID)
	e.emit(EventTimeline)
	return nil
}

// UpdateVolumeKeyframe edits a volume automation keyframe in place.
func (e *Editor) UpdateVolumeKeyframe(trackID, clipID, keyframeID string, upd keyframes.Update) error {
	track, err := e.tl.Track(trackID)
	if err != nil {
		return err
	}
	clip := track.Clip(clipID)
	if clip == nil || clip.Audio == nil {
		return timeline.ErrClipNotFound
	}

	before := e.captureTracks(trackID)
	if !clip.Audio.Automation.UpdateKeyframe(keyframeID, upd) {
		return timeline.ErrKeyframeNotFound
	}
	e.pushTrackCommand(history.KindUpdateKeyframe, before, trackID)
	e.emit(EventTimeline)
	return nil
}

// AddTransition registers a blend between two clips and returns its id.
func (e *Editor) AddTransition(t transitions.Type, duration float64, ease easing.Name, fromClipID, toClipID string) string {
	before := cloneTransitions(e.tl.Transitions)
	tr := transitions.New(t, duration, ease, fromClipID, toClipID)
	e.tl.AddTransition(tr)
	e.hist.Push(history.KindAddTransition, "", &transitionsCommand{
		ed: e, before: before, after: cloneTransitions(e.tl.Transitions),
	})
	e.emit(EventTransitions)
	return tr.ID
}

// RemoveTransition deletes a transition by id.
func (e *Editor) RemoveTransition(id string) error {
	before := cloneTransitions(e.tl.Transitions)
	if _, err := e.tl.RemoveTransition(id); err != nil {
		return err
	}
	e.hist.Push(history.KindRemoveTransition, "", &transitionsCommand{
		ed: e, before: before, after: cloneTransitions(e.tl.Transitions),
	})
	e.emit(EventTransitions)
	return nil
}

// TransitionPatch carries optional transition changes.
type TransitionPatch struct {
	Type     *transitions.Type
	Duration *float64
	Easing   *easing.Name
}

// UpdateTransition edits a transition; type changes re-clamp duration.
func (e *Editor) UpdateTransition(id string, patch TransitionPatch) error {
	tr := e.tl.Transition(id)
	if tr == nil {
		return timeline.ErrTransitionNotFound
	}

	before := cloneTransitions(e.tl.Transitions)
	if patch.Type != nil {
		tr.SetType(*patch.Type)
	}
	if patch.Duration != nil {
		tr.SetDuration(*patch.Duration)
	}
	if patch.Easing != nil && easing.Valid(*patch.Easing) {
		tr.Easing = *patch.Easing
	}
	e.hist.Push(history.KindUpdateTransition, "", &transitionsCommand{
		ed: e, before: before, after: cloneTransitions(e.tl.Transitions),
	})
	e.emit(EventTransitions)
	return nil
}

// SetFilters updates the global color filters.
func (e *Editor) SetFilters(f timeline.Filters) {
	before := e.tl.Filters
	e.tl.SetFilters(f)
	e.hist.Push(history.KindUpdateFilters, "", &filtersCommand{
		ed: e, before: before, after: e.tl.Filters,
	})
	e.emit(EventFilters)
}

// Undo reverts the most recent edit.
func (e *Editor) Undo() bool {
	ok := e.hist.Undo()
	if ok {
		e.emit(EventHistory)
	}
	return ok
}

// Redo re-applies the most recently undone edit.
func (e *Editor) Redo() bool {
	ok := e.hist.Redo()
	if ok {
		e.emit(EventHistory)
	}
	return ok
}

// BeginBatch groups subsequent edits into one undo step.
func (e *Editor) BeginBatch() { e.hist.StartBatch() }

// EndBatch commits the current batch under the given label.
func (e *Editor) EndBatch(label string) { e.hist.EndBatch(label) }

// CancelBatch discards the current batch's recorded commands. The
// edits themselves remain applied; callers cancel only when they have
// reverted the state through other means.
func (e *Editor) CancelBatch() { e.hist.CancelBatch() }
