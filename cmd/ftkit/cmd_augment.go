package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/augmentlab/ftkit/internal/augment"
	"github.com/augmentlab/ftkit/internal/config"
	"github.com/augmentlab/ftkit/internal/execution"
	"github.com/augmentlab/ftkit/internal/orchestration"
	"github.com/augmentlab/ftkit/internal/publish"
	"github.com/augmentlab/ftkit/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type augmentOptions struct {
	filename       string
	required       []string
	suggested      []string
	augType        string
	minimum        int
	model          string
	engine         string
	workers        int
	sampleSize     int
	askFor         int
	maxEmptyRounds int
	maxRounds      int
	timeout        time.Duration
	batch          string
	publish        bool
	excludeSeeds   bool
	seed           uint64
	verbose        bool
}

func newAugmentCommand() *cobra.Command {
	var opts augmentOptions

	cmd := &cobra.Command{
		Use:   "augment",
		Short: "Fill seed files with generated lines",
		Long: `Augment grows a seed file by repeatedly sampling example lines, asking a
model for similar ones and keeping those that pass the phrase filter. Accepted
lines are appended to <name>-augment-<type><ext> after every round, so an
interrupted run resumes where it stopped.

With --filename a single seed file is augmented. With --batch every task in
the YAML batch file runs in order. With neither, the built-in task list runs;
on a terminal you can pick which of its tasks to run.

Exit codes: 0 when every target was reached, 1 when a fill loop gave up
(constraints look unsatisfiable or the round limit was hit), 2 on any other
error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			opts.applyDefaults(cmd, s)
			return runAugment(cmd, s, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.filename, "filename", "f", "", "Seed file to augment")
	f.StringArrayVar(&opts.required, "required-phrase", nil, "Phrase every generated line must contain (repeatable)")
	f.StringArrayVar(&opts.suggested, "suggested-phrase", nil, "Phrase the prompt asks for without enforcing it (repeatable)")
	f.StringVarP(&opts.augType, "type", "t", augment.TypeBase, "Augmentation type: "+strings.Join(augment.Types(), ", ")+" or a custom prompt name")
	f.IntVarP(&opts.minimum, "minimum", "m", 0, "Target line count per file (default from project config)")
	f.StringVar(&opts.model, "model", "", "Model to generate with (default from project config)")
	f.StringVar(&opts.engine, "engine", "", fmt.Sprintf("Generation engine %v (default from project config)", execution.EngineNames))
	f.IntVarP(&opts.workers, "workers", "w", 0, "Completions requested per round, run concurrently")
	f.IntVar(&opts.sampleSize, "sample-size", 0, "Seed lines embedded in each prompt")
	f.IntVar(&opts.askFor, "ask-for", 0, "Lines each prompt asks for")
	f.IntVar(&opts.maxEmptyRounds, "max-empty-rounds", 0, "Give up after this many consecutive rounds with no accepted lines")
	f.IntVar(&opts.maxRounds, "max-rounds", 0, "Give up after this many rounds per file (0 = unbounded)")
	f.DurationVar(&opts.timeout, "timeout", 0, "Stop the whole run after this long (0 = no limit)")
	f.StringVarP(&opts.batch, "batch", "b", "", "YAML batch file listing seed files to augment")
	f.BoolVar(&opts.publish, "publish", false, "Upload finished output files to the configured blob container")
	f.BoolVar(&opts.excludeSeeds, "exclude-seeds-from-count", false, "Count only generated lines towards the target")
	f.Uint64Var(&opts.seed, "seed", 0, "Random seed for example sampling (0 = random)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Print every round")

	return cmd
}

// applyDefaults fills flags the user did not set from the project config.
func (o *augmentOptions) applyDefaults(cmd *cobra.Command, s *settings) {
	d := s.project.Defaults
	changed := cmd.Flags().Changed

	if !changed("minimum") {
		o.minimum = d.Minimum
	}
	if !changed("model") {
		o.model = d.Model
	}
	if !changed("engine") {
		o.engine = d.Engine
	}
	if !changed("workers") {
		o.workers = d.Workers
	}
	if !changed("sample-size") {
		o.sampleSize = d.SampleSize
	}
	if !changed("ask-for") {
		o.askFor = d.AskFor
	}
	if !changed("max-empty-rounds") {
		o.maxEmptyRounds = d.MaxEmptyRounds
	}
	if !changed("timeout") && d.Timeout > 0 {
		o.timeout = time.Duration(d.Timeout) * time.Second
	}
}

func runAugment(cmd *cobra.Command, s *settings, opts *augmentOptions) error {
	if opts.workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", opts.workers)
	}
	if opts.filename != "" && opts.batch != "" {
		return errors.New("--filename and --batch are mutually exclusive")
	}

	tasks, err := resolveTasks(cmd, s, opts)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return errors.New("no tasks to run")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	engine, err := execution.NewEngine(ctx, engineConfig(s, opts))
	if err != nil {
		return err
	}
	if err := engine.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing %s engine: %w", opts.engine, err)
	}
	defer func() {
		if err := engine.Shutdown(context.Background()); err != nil {
			slog.Warn("engine shutdown", "engine", opts.engine, "error", err)
		}
	}()

	runnerOpts := []orchestration.RunnerOption{
		orchestration.WithMaxEmptyRounds(opts.maxEmptyRounds),
		orchestration.WithMaxRounds(opts.maxRounds),
	}
	if opts.excludeSeeds {
		runnerOpts = append(runnerOpts, orchestration.WithSeedsExcludedFromCount())
	}
	if opts.publish {
		p := s.project.Publish
		publisher, err := publish.New(publish.Target{AccountURL: p.AccountURL, Container: p.Container, Prefix: p.Prefix})
		if err != nil {
			return err
		}
		runnerOpts = append(runnerOpts, orchestration.WithPublisher(publisher))
	}

	gen := &augment.Generator{
		Engine:    engine,
		Templates: augment.TemplateSource{Dir: s.project.ResolvePath(s.project.Paths.Prompts)},
		Rand:      newRand(opts.seed),
	}
	runner := orchestration.NewRunner(gen, augment.Request{
		SampleSize: opts.sampleSize,
		AskFor:     opts.askFor,
		Copies:     opts.workers,
		Workers:    opts.workers,
	}, runnerOpts...)

	out := cmd.OutOrStdout()
	if opts.verbose {
		runner.OnProgress(verboseProgressListener(out))
	} else {
		runner.OnProgress(simpleProgressListener(out))
	}

	results, err := runner.RunBatch(ctx, tasks)
	printAugmentSummary(out, results)
	return err
}

func engineConfig(s *settings, opts *augmentOptions) execution.EngineConfig {
	cfg := execution.EngineConfig{
		Name:          opts.engine,
		Model:         opts.model,
		OpenAIAPIKey:  s.env.OpenAIAPIKey,
		OpenAIOrg:     config.FirstNonEmpty(s.env.OpenAIOrg, s.project.Provider.Organization),
		OpenAIBaseURL: config.FirstNonEmpty(s.env.OpenAIBaseURL, s.project.Provider.BaseURL),
		AzureEndpoint: s.env.AzureOpenAIEndpoint,
		GeminiAPIKey:  s.env.GeminiAPIKey,
		Temperature:   s.project.Defaults.Temperature,

		RequestsPerSecond: s.project.Provider.RequestsPerSecond,
	}
	if r := s.project.Provider.MaxRetries; r != nil && *r > 0 {
		cfg.MaxRetries = uint64(*r)
	}
	return cfg
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// resolveTasks builds the task list from --filename, --batch or the
// built-in batch, in that order.
func resolveTasks(cmd *cobra.Command, s *settings, opts *augmentOptions) ([]augment.Task, error) {
	if opts.filename != "" {
		return []augment.Task{{
			Filename:  opts.filename,
			Type:      opts.augType,
			Required:  opts.required,
			Suggested: opts.suggested,
			Minimum:   opts.minimum,
		}}, nil
	}

	var (
		batch *augment.Batch
		err   error
	)
	if opts.batch != "" {
		batch, err = augment.LoadBatch(opts.batch)
		if err != nil {
			return nil, err
		}
	} else {
		batch = augment.DefaultBatch(s.project.ResolvePath(s.project.Paths.Data))
	}

	tasks := make([]augment.Task, len(batch.Tasks))
	for i, t := range batch.Tasks {
		if t.Minimum <= 0 || cmd.Flags().Changed("minimum") {
			t.Minimum = opts.minimum
		}
		t.Required = append(t.Required, opts.required...)
		t.Suggested = append(t.Suggested, opts.suggested...)
		tasks[i] = t
	}

	if opts.batch == "" && isTerminalInput(cmd.InOrStdin()) {
		return wizard.PickTasks(cmd.InOrStdin(), cmd.OutOrStdout(), tasks)
	}
	return tasks, nil
}

func isTerminalInput(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func verboseProgressListener(w io.Writer) orchestration.ProgressListener {
	p := message.NewPrinter(language.English)
	return func(event orchestration.ProgressEvent) {
		switch event.EventType {
		case orchestration.EventBatchStart:
			p.Fprintf(w, "Augmenting %d file(s)...\n\n", event.TotalFiles)
		case orchestration.EventFileStart:
			p.Fprintf(w, "[%d/%d] %s: %d/%d lines\n", event.FileNum, event.TotalFiles, event.File, event.Done, event.Target)
		case orchestration.EventRoundStart:
			p.Fprintf(w, "  Round %d...", event.Round)
		case orchestration.EventRoundComplete:
			duration := time.Duration(event.DurationMs) * time.Millisecond
			p.Fprintf(w, " +%v lines, %d/%d (%v)\n", event.Details["new_lines"], event.Done, event.Target, duration.Round(time.Millisecond))
		case orchestration.EventPublished:
			p.Fprintf(w, "  Published to %v\n", event.Details["destination"])
		case orchestration.EventFileComplete:
			p.Fprintf(w, "  Wrote %s: %d/%d lines\n\n", event.Output, event.Done, event.Target)
		case orchestration.EventFileFailed:
			p.Fprintf(w, "  Stopped at %d/%d lines: %v\n\n", event.Done, event.Target, event.Err)
		case orchestration.EventBatchComplete:
			duration := time.Duration(event.DurationMs) * time.Millisecond
			p.Fprintf(w, "Batch completed in %v\n\n", duration.Round(time.Millisecond))
		}
	}
}

func simpleProgressListener(w io.Writer) orchestration.ProgressListener {
	p := message.NewPrinter(language.English)
	return func(event orchestration.ProgressEvent) {
		switch event.EventType {
		case orchestration.EventFileComplete:
			p.Fprintf(w, "✓ [%d/%d] %s %d/%d lines\n", event.FileNum, event.TotalFiles, event.Output, event.Done, event.Target)
		case orchestration.EventFileFailed:
			p.Fprintf(w, "✗ [%d/%d] %s %d/%d lines: %v\n", event.FileNum, event.TotalFiles, event.Output, event.Done, event.Target, event.Err)
		}
	}
}

func printAugmentSummary(w io.Writer, results []*orchestration.FileResult) {
	if len(results) == 0 {
		return
	}
	p := message.NewPrinter(language.English)
	var accepted, rounds int
	for _, r := range results {
		accepted += r.Accepted
		rounds += r.Rounds
	}
	p.Fprintf(w, "%d file(s), %d round(s), %d new line(s)\n", len(results), rounds, accepted)
}
