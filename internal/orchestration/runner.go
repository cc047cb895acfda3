package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/augmentlab/ftkit/internal/augment"
	"github.com/augmentlab/ftkit/internal/utils"
)

// Defaults for the fill loop.
const (
	DefaultMinimum        = 100
	DefaultMaxEmptyRounds = 10
)

// Publisher uploads a finished output file and returns where it went.
type Publisher interface {
	Publish(ctx context.Context, path string) (string, error)
}

// Runner drives the fill loop for one or more seed files.
type Runner struct {
	gen  *augment.Generator
	base augment.Request

	maxEmptyRounds int
	maxRounds      int
	excludeSeeds   bool
	publisher      Publisher

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventBatchStart    EventType = "batch_start"
	EventBatchComplete EventType = "batch_complete"
	EventFileStart     EventType = "file_start"
	EventFileComplete  EventType = "file_complete"
	EventFileFailed    EventType = "file_failed"
	EventRoundStart    EventType = "round_start"
	EventRoundComplete EventType = "round_complete"
	EventPublished     EventType = "published"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType  EventType
	File       string
	Output     string
	FileNum    int
	TotalFiles int
	Round      int
	Accepted   int
	Done       int
	Target     int
	DurationMs int64
	Err        error
	Details    map[string]any
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMaxEmptyRounds stops a file after n consecutive rounds that add no
// lines. Zero or less disables the check.
func WithMaxEmptyRounds(n int) RunnerOption {
	return func(r *Runner) {
		r.maxEmptyRounds = n
	}
}

// WithMaxRounds caps the total rounds per file. Zero means unbounded.
func WithMaxRounds(n int) RunnerOption {
	return func(r *Runner) {
		r.maxRounds = n
	}
}

// WithSeedsExcludedFromCount makes the target count generated lines only.
func WithSeedsExcludedFromCount() RunnerOption {
	return func(r *Runner) {
		r.excludeSeeds = true
	}
}

// WithPublisher uploads every completed output file.
func WithPublisher(p Publisher) RunnerOption {
	return func(r *Runner) {
		r.publisher = p
	}
}

// NewRunner creates a runner. base supplies the per-round settings (model,
// sample size, lines asked for, concurrency); type and phrases come from
// each task.
func NewRunner(gen *augment.Generator, base augment.Request, opts ...RunnerOption) *Runner {
	r := &Runner{
		gen:            gen,
		base:           base,
		maxEmptyRounds: DefaultMaxEmptyRounds,
		listeners:      []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// FileResult summarizes the fill loop for one seed file.
type FileResult struct {
	Task     augment.Task
	Output   string
	Initial  int
	Done     int
	Target   int
	Rounds   int
	Accepted int
	// PublishedTo is set when a publisher uploaded the output.
	PublishedTo string
	Duration    time.Duration
}

// OutputFilename returns where augmented lines for task are written.
func OutputFilename(task augment.Task) string {
	t := task.Type
	if t == "" {
		t = augment.TypeBase
	}
	return utils.AddSuffixToFilename(task.Filename, "-augment-"+t)
}

// AugmentFile runs rounds for task until its output file, plus the seed
// lines unless excluded, holds task.Minimum lines. Accepted lines are
// appended after every round and blank lines are removed from the output
// when the loop ends, whether or not it succeeded.
func (r *Runner) AugmentFile(ctx context.Context, task augment.Task) (*FileResult, error) {
	return r.augmentFile(ctx, task, 1, 1)
}

func (r *Runner) augmentFile(ctx context.Context, task augment.Task, fileNum, totalFiles int) (*FileResult, error) {
	start := time.Now()
	if task.Type == "" {
		task.Type = augment.TypeBase
	}

	seeds, err := utils.LoadLines(task.Filename)
	if err != nil {
		return nil, fmt.Errorf("loading seed file: %w", err)
	}

	output := OutputFilename(task)
	done, err := utils.CountLines(output)
	if err != nil {
		return nil, fmt.Errorf("counting existing output: %w", err)
	}
	if !r.excludeSeeds {
		done += len(seeds)
	}

	target := task.Minimum
	if target <= 0 {
		target = DefaultMinimum
	}

	res := &FileResult{Task: task, Output: output, Initial: done, Done: done, Target: target}
	event := func(t EventType) ProgressEvent {
		return ProgressEvent{
			EventType:  t,
			File:       task.Filename,
			Output:     output,
			FileNum:    fileNum,
			TotalFiles: totalFiles,
			Round:      res.Rounds,
			Accepted:   res.Accepted,
			Done:       res.Done,
			Target:     target,
			DurationMs: time.Since(start).Milliseconds(),
		}
	}

	r.notifyProgress(event(EventFileStart))
	slog.Debug("augmenting file", "file", task.Filename, "type", task.Type, "done", done, "target", target)

	req := r.base
	req.Type = task.Type
	req.Phrases = augment.PhrasesFor(task.Type, task.Required, task.Suggested)
	req.Vars = task.Vars

	loopErr := r.fill(ctx, seeds, req, res, event)

	if err := utils.RemoveEmptyLines(output); err != nil && loopErr == nil {
		loopErr = fmt.Errorf("cleaning %s: %w", output, err)
	}
	res.Duration = time.Since(start)

	if loopErr != nil {
		ev := event(EventFileFailed)
		ev.Err = loopErr
		r.notifyProgress(ev)
		return res, &augment.FillError{Output: output, Done: res.Done, Target: target, Err: loopErr}
	}

	if r.publisher != nil {
		dest, err := r.publisher.Publish(ctx, output)
		if err != nil {
			return res, fmt.Errorf("publishing %s: %w", output, err)
		}
		res.PublishedTo = dest
		ev := event(EventPublished)
		ev.Details = map[string]any{"destination": dest}
		r.notifyProgress(ev)
	}

	r.notifyProgress(event(EventFileComplete))
	return res, nil
}

func (r *Runner) fill(ctx context.Context, seeds []string, req augment.Request, res *FileResult, event func(EventType) ProgressEvent) error {
	emptyRounds := 0
	for res.Done < res.Target {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.maxRounds > 0 && res.Rounds >= r.maxRounds {
			return fmt.Errorf("%w (%d rounds)", augment.ErrRoundLimit, r.maxRounds)
		}

		res.Rounds++
		r.notifyProgress(event(EventRoundStart))

		lines, err := r.gen.AugmentSentences(ctx, seeds, req)
		if err != nil {
			return err
		}
		if err := utils.AppendLines(res.Output, lines); err != nil {
			return fmt.Errorf("appending to %s: %w", res.Output, err)
		}
		res.Done += len(lines)
		res.Accepted += len(lines)

		ev := event(EventRoundComplete)
		ev.Details = map[string]any{"new_lines": len(lines)}
		r.notifyProgress(ev)
		slog.Debug("round complete", "file", res.Task.Filename, "round", res.Rounds, "accepted", len(lines), "done", res.Done, "target", res.Target)

		if len(lines) > 0 {
			emptyRounds = 0
			continue
		}
		emptyRounds++
		if r.maxEmptyRounds > 0 && emptyRounds >= r.maxEmptyRounds {
			return fmt.Errorf("%w: %d consecutive rounds accepted no lines", augment.ErrConstraintsUnsatisfiable, emptyRounds)
		}
	}
	return nil
}

// RunBatch augments every task in order. A failing task does not stop the
// rest unless the context is done; all failures are joined into the
// returned error.
func (r *Runner) RunBatch(ctx context.Context, tasks []augment.Task) ([]*FileResult, error) {
	start := time.Now()
	r.notifyProgress(ProgressEvent{EventType: EventBatchStart, TotalFiles: len(tasks)})

	var (
		results []*FileResult
		errs    []error
	)
	for i, task := range tasks {
		res, err := r.augmentFile(ctx, task, i+1, len(tasks))
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", task.Label(), err))
			if ctx.Err() != nil {
				break
			}
		}
	}

	r.notifyProgress(ProgressEvent{
		EventType:  EventBatchComplete,
		TotalFiles: len(tasks),
		DurationMs: time.Since(start).Milliseconds(),
		Details:    map[string]any{"failed": len(errs)},
	})
	return results, errors.Join(errs...)
}
