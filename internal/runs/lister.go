package runs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/augmentlab/ftkit/internal/openai"
	"github.com/augmentlab/ftkit/internal/tracker"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// DefaultDays is how far back jobs are listed unless All is set.
const DefaultDays = 2

const fileLookupWorkers = 4

// Options selects and annotates the jobs a listing covers.
type Options struct {
	// Days keeps jobs created at most this many whole days before Now.
	Days int
	All  bool
	// Filter keeps rows whose display name contains it.
	Filter string

	Entity  string
	Project string

	Now      time.Time
	Location *time.Location
}

// Row is one rendered job.
type Row struct {
	Job             Job            `json:"job"`
	Classification  Classification `json:"classification"`
	Style           Style          `json:"style"`
	DisplayName     string         `json:"display_name"`
	EstimatedTokens float64        `json:"estimated_tokens"`
	EstimatedCost   float64        `json:"estimated_cost"`
	Cost            string         `json:"cost"`
	Created         string         `json:"created"`
}

// Report is the result of a listing.
type Report struct {
	Rows            []Row    `json:"rows"`
	SyncSuggestions []string `json:"sync_suggestions"`
}

// Lister joins provider jobs with tracker runs.
type Lister struct {
	jobs    JobSource
	files   FileSource
	runs    RunSource
	pricing Pricing
}

// NewLister creates a Lister. runs may be nil, in which case no model
// counts as synced.
func NewLister(jobs JobSource, files FileSource, runs RunSource, pricing Pricing) *Lister {
	if pricing == nil {
		pricing = DefaultPricing()
	}
	return &Lister{jobs: jobs, files: files, runs: runs, pricing: pricing}
}

// List fetches, classifies and prices jobs.
func (l *Lister) List(ctx context.Context, opts Options) (*Report, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	raw, err := l.jobs.ListFineTuningJobs(ctx)
	if err != nil {
		return nil, err
	}
	if !opts.All {
		raw = withinDays(raw, opts.Now, opts.Days)
	}
	slog.Debug("listing jobs", "jobs", len(raw), "all", opts.All, "days", opts.Days)

	files, err := l.trainingFiles(ctx, raw)
	if err != nil {
		return nil, err
	}

	synced, evaluated, err := l.trackerState(ctx, raw, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{Rows: []Row{}, SyncSuggestions: []string{}}
	for _, r := range raw {
		job := newJob(r, files[r.TrainingFile])
		class := Classify(job, synced, evaluated)
		name := job.DisplayName(class)
		if opts.Filter != "" && !strings.Contains(name, opts.Filter) {
			continue
		}
		if class == SucceededUnsynced && job.Status == openai.JobStatusSucceeded {
			report.SyncSuggestions = append(report.SyncSuggestions, SyncCommand(opts.Entity, opts.Project, job.ID))
		}

		tokens := job.EstimatedTokens()
		cost := l.pricing.EstimateCost(job.BaseModel, tokens)
		report.Rows = append(report.Rows, Row{
			Job:             job,
			Classification:  class,
			Style:           class.Style(),
			DisplayName:     name,
			EstimatedTokens: tokens,
			EstimatedCost:   cost,
			Cost:            FormatCost(cost),
			Created:         FormatCreated(job.CreatedAt, opts.Now, opts.Location),
		})
	}
	return report, nil
}

// SyncCommand is the shell command that syncs a job into the tracker.
func SyncCommand(entity, project, jobID string) string {
	return fmt.Sprintf("openai wandb sync --entity %s --project %s -i %s", entity, project, jobID)
}

// FormatCreated renders a creation time as local wall time followed by
// the time relative to now.
func FormatCreated(created, now time.Time, loc *time.Location) string {
	return fmt.Sprintf("%s (%s)", created.In(loc).Format(time.DateTime), humanize.RelTime(created, now, "ago", "from now"))
}

func withinDays(jobs []openai.FineTuningJob, now time.Time, days int) []openai.FineTuningJob {
	var kept []openai.FineTuningJob
	for _, j := range jobs {
		age := int(math.Floor(now.Sub(j.Created()).Hours() / 24))
		if age <= days {
			kept = append(kept, j)
		}
	}
	return kept
}

// trainingFiles resolves the training file of every job. A file the
// provider no longer has is reported by id with an unknown size.
func (l *Lister) trainingFiles(ctx context.Context, jobs []openai.FineTuningJob) (map[string]TrainingFile, error) {
	out := map[string]TrainingFile{}
	var mu sync.Mutex

	seen := map[string]bool{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fileLookupWorkers)
	for _, j := range jobs {
		id := j.TrainingFile
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		g.Go(func() error {
			tf := TrainingFile{ID: id, Filename: id}
			f, err := l.files.GetFile(gctx, id)
			var apiErr *openai.APIError
			switch {
			case err == nil:
				tf.Filename = f.Filename
				tf.Bytes = f.Bytes
			case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
				slog.Warn("training file not found", "file", id)
			default:
				return err
			}
			mu.Lock()
			out[id] = tf
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Lister) trackerState(ctx context.Context, jobs []openai.FineTuningJob, opts Options) (synced, evaluated map[string]bool, err error) {
	var candidates []string
	for _, j := range jobs {
		if j.Status == openai.JobStatusSucceeded && j.FineTunedModel != "" {
			candidates = append(candidates, j.FineTunedModel)
		}
	}
	if l.runs == nil || len(candidates) == 0 {
		return map[string]bool{}, map[string]bool{}, nil
	}

	trackerRuns, err := l.runs.RunsForModels(ctx, opts.Entity, opts.Project, candidates)
	if err != nil {
		return nil, nil, err
	}
	return tracker.Classify(trackerRuns)
}
