// Package export drives the encode pipeline boundary: it slices the
// timeline into segments, fans them out to an encoder over a bounded
// worker pool, and reports phased progress with an ETA. The actual
// encoding is an external collaborator behind the Encoder interface.
package export

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/montage/internal/render"
	"github.com/ivlev/montage/internal/system"
	"github.com/ivlev/montage/internal/timeline"
)

// Settings is the export configuration bundle.
type Settings struct {
	Format       string
	Quality      int
	FPS          int
	Bitrate      int // kbit/s
	IncludeAudio bool
}

// DefaultSettings targets a standard mp4 delivery.
func DefaultSettings() Settings {
	return Settings{Format: "mp4", Quality: 75, FPS: 30, Bitrate: 8000, IncludeAudio: true}
}

// Phase names the pipeline stage a job is in.
type Phase string

const (
	PhasePreparing  Phase = "preparing"
	PhaseRendering  Phase = "rendering"
	PhaseEncoding   Phase = "encoding"
	PhaseFinalizing Phase = "finalizing"
)

// Progress is one progress report. Percent is 0-100 across the whole
// job; ETASeconds is -1 until enough segments finished to estimate.
type Progress struct {
	Percent    float64
	Phase      Phase
	ETASeconds float64
}

// State is a terminal job outcome.
type State string

const (
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateCancelled State = "cancelled"
)

// Result is the terminal report of a job.
type Result struct {
	State  State
	URL    string // set when completed
	Reason string // set when failed
}

// Segment is one encodable unit of the timeline: a video-lane clip plus
// the global filter uniforms.
type Segment struct {
	Index    int
	Clip     *timeline.Clip
	Uniforms render.Uniforms
}

// Encoder is the black-box encode collaborator.
type Encoder interface {
	// EncodeSegment renders one segment and returns an opaque part ref.
	EncodeSegment(ctx context.Context, seg Segment, settings Settings) (string, error)
	// Finalize concatenates the parts into the deliverable and returns
	// its URL.
	Finalize(ctx context.Context, parts []string, settings Settings) (string, error)
}

// Job is a single cancellable export run.
type Job struct {
	tl         *timeline.Timeline
	settings   Settings
	encoder    Encoder
	workers    int
	onProgress func(Progress)
}

// Option configures a Job.
type Option func(*Job)

// WithWorkers overrides the worker pool size.
func WithWorkers(n int) Option {
	return func(j *Job) { j.workers = n }
}

// WithProgress registers a progress callback. It is invoked from the
// job's goroutines; the callback must be safe for concurrent use.
func WithProgress(fn func(Progress)) Option {
	return func(j *Job) { j.onProgress = fn }
}

// NewJob builds an export job over the timeline.
func NewJob(tl *timeline.Timeline, settings Settings, enc Encoder, opts ...Option) *Job {
	j := &Job{tl: tl, settings: settings, encoder: enc}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Job) report(p Progress) {
	if j.onProgress != nil {
		j.onProgress(p)
	}
}

// segments flattens the video lanes into encode units in start order.
func (j *Job) segments() []Segment {
	uniforms := render.NormalizeFilters(j.tl.Filters)
	var segs []Segment
	for _, track := range j.tl.Tracks {
		if track.Type != timeline.TrackVideo {
			continue
		}
		for _, clip := range track.Clips {
			segs = append(segs, Segment{Index: len(segs), Clip: clip, Uniforms: uniforms})
		}
	}
	return segs
}

// Run executes the job to a terminal state. Cancellation is observed
// between and inside segment encodes via the context.
func (j *Job) Run(ctx context.Context) Result {
	j.report(Progress{Percent: 0, Phase: PhasePreparing, ETASeconds: -1})

	segs := j.segments()
	if len(segs) == 0 {
		return Result{State: StateFailed, Reason: "timeline has no video clips"}
	}

	workers := j.workers
	if workers <= 0 {
		workers = system.WorkerCount(len(segs))
	}

	j.report(Progress{Percent: 0, Phase: PhaseRendering, ETASeconds: -1})

	parts := make([]string, len(segs))
	var done atomic.Int64
	start := time.Now()
	total := int64(len(segs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, seg := range segs {
		seg := seg
		g.Go(func() error {
			part, err := j.encoder.EncodeSegment(gctx, seg, j.settings)
			if err != nil {
				return fmt.Errorf("segment %d: %w", seg.Index, err)
			}
			parts[seg.Index] = part

			n := done.Add(1)
			eta := -1.0
			if n > 0 {
				perSeg := time.Since(start).Seconds() / float64(n)
				eta = perSeg * float64(total-n)
			}
			j.report(Progress{
				Percent:    float64(n) / float64(total) * 90,
				Phase:      PhaseEncoding,
				ETASeconds: eta,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return Result{State: StateCancelled}
		}
		return Result{State: StateFailed, Reason: err.Error()}
	}
	if ctx.Err() != nil {
		return Result{State: StateCancelled}
	}

	j.report(Progress{Percent: 90, Phase: PhaseFinalizing, ETASeconds: 0})
	url, err := j.encoder.Finalize(ctx, parts, j.settings)
	if err != nil {
		if ctx.Err() != nil {
			return Result{State: StateCancelled}
		}
		return Result{State: StateFailed, Reason: err.Error()}
	}

	j.report(Progress{Percent: 100, Phase: PhaseFinalizing, ETASeconds: 0})
	return Result{State: StateCompleted, URL: url}
}
