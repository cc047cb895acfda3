package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/augmentlab/ftkit/internal/cache"
	"github.com/augmentlab/ftkit/internal/config"
	"github.com/augmentlab/ftkit/internal/openai"
	"github.com/augmentlab/ftkit/internal/report"
	"github.com/augmentlab/ftkit/internal/runs"
	"github.com/augmentlab/ftkit/internal/spinner"
	"github.com/augmentlab/ftkit/internal/tracker"
	"github.com/spf13/cobra"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
)

type listRunsOptions struct {
	days            int
	all             bool
	filter          string
	syncSuggestions bool
	openAIOrg       string
	entity          string
	project         string
	format          string
	color           string
	noCache         bool
}

func newListRunsCommand() *cobra.Command {
	var opts listRunsOptions

	cmd := &cobra.Command{
		Use:   "list-runs",
		Short: "List recent fine-tune jobs with cost and tracking status",
		Long: `List-runs shows fine-tune jobs from the model provider, newest first, with
an estimated training cost and whether the resulting model has been synced to
and evaluated in Weights & Biases.

Rows are coloured by status: magenta for succeeded jobs that still need a
sync, green for synced but unevaluated models, blue for running jobs, yellow
for pending ones and red for failures. Use --sync-suggestions to print the
commands that sync the magenta rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				opts.days = s.project.Runs.Days
			}
			return runListRuns(cmd, s, &opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.days, "days", "d", runs.DefaultDays, "Only show jobs created within this many days")
	f.BoolVarP(&opts.all, "all", "a", false, "Show every job regardless of age")
	f.StringVar(&opts.filter, "filter", "", "Only show jobs whose display name contains this text")
	f.BoolVar(&opts.syncSuggestions, "sync-suggestions", false, "Print sync commands for unsynced succeeded jobs")
	f.StringVar(&opts.openAIOrg, "openai-org", "", "Provider organization to list jobs for")
	f.StringVar(&opts.entity, "wandb-entity", "", "W&B entity (default from project config or WANDB_ENTITY)")
	f.StringVar(&opts.project, "wandb-project", "", "W&B project (default from project config or WANDB_PROJECT)")
	f.StringVar(&opts.format, "format", formatTable, "Output format: table or json")
	f.StringVar(&opts.color, "color", report.ColorAuto, "Colour output: auto, always or never")
	f.BoolVar(&opts.noCache, "no-cache", false, "Do not read or write the file metadata cache")

	return cmd
}

func runListRuns(cmd *cobra.Command, s *settings, opts *listRunsOptions) error {
	if opts.format != formatTable && opts.format != formatJSON {
		return fmt.Errorf("invalid format %q (want %s or %s)", opts.format, formatTable, formatJSON)
	}
	out := cmd.OutOrStdout()
	colored, err := report.ColorEnabled(opts.color, s.env.ForceColor, s.env.NoColor, out)
	if err != nil {
		return err
	}

	entity := config.FirstNonEmpty(opts.entity, s.project.Tracker.Entity, s.env.WandbEntity)
	project := config.FirstNonEmpty(opts.project, s.project.Tracker.Project, s.env.WandbProject)

	lister, err := newLister(s, opts, entity, project)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stop := spinner.StartIfTerminal(cmd.ErrOrStderr(), "Fetching fine-tune jobs...")
	rep, err := lister.List(ctx, runs.Options{
		Days:    opts.days,
		All:     opts.all,
		Filter:  opts.filter,
		Entity:  entity,
		Project: project,
		Now:     time.Now(),
	})
	stop()
	if err != nil {
		return err
	}

	if opts.format == formatJSON {
		return report.JSON(out, rep)
	}
	return renderTable(out, rep, colored, opts.syncSuggestions)
}

func renderTable(w io.Writer, rep *runs.Report, colored, suggestions bool) error {
	if err := report.Table(w, rep.Rows, report.NewPainter(colored)); err != nil {
		return err
	}
	if err := report.Summary(w, rep.Rows); err != nil {
		return err
	}
	if suggestions && len(rep.SyncSuggestions) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return report.SyncSuggestions(w, rep.SyncSuggestions)
	}
	return nil
}

func newLister(s *settings, opts *listRunsOptions, entity, project string) (*runs.Lister, error) {
	if s.env.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%s is not set", config.EnvOpenAIAPIKey)
	}
	clientOpts := []openai.Option{openai.WithRateLimit(s.project.Provider.RequestsPerSecond)}
	if r := s.project.Provider.MaxRetries; r != nil && *r >= 0 {
		clientOpts = append(clientOpts, openai.WithRetries(uint64(*r), 0))
	}
	provider := openai.NewClient(
		config.FirstNonEmpty(s.env.OpenAIBaseURL, s.project.Provider.BaseURL),
		openai.APIKeyAuth{
			Key:          s.env.OpenAIAPIKey,
			Organization: config.FirstNonEmpty(opts.openAIOrg, s.env.OpenAIOrg, s.project.Provider.Organization),
		},
		clientOpts...,
	)

	var files runs.FileSource = provider
	if dir := s.project.CacheDir(); dir != "" && !opts.noCache {
		files = &runs.CachedFiles{Source: provider, Cache: cache.New(dir)}
	}

	var runSource runs.RunSource
	switch {
	case entity == "" || project == "":
		return nil, errors.New("W&B entity and project are required (--wandb-entity/--wandb-project, project config or WANDB_ENTITY/WANDB_PROJECT)")
	case s.env.WandbAPIKey == "":
		return nil, fmt.Errorf("%s is not set", config.EnvWandbAPIKey)
	default:
		runSource = tracker.NewClient(config.FirstNonEmpty(s.env.WandbBaseURL, s.project.Tracker.BaseURL), s.env.WandbAPIKey)
	}

	pricing := runs.DefaultPricing().With(s.project.Runs.Pricing)
	return runs.NewLister(provider, files, runSource, pricing), nil
}
