package execution

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// ParseFunc turns one raw completion into zero or more accepted items.
type ParseFunc func(text string) []string

// Batch sends copies identical requests with at most workers in flight,
// parses every completion and returns the parsed items concatenated in
// request order. The first failure cancels the remaining requests.
func Batch(ctx context.Context, engine Engine, req *CompletionRequest, copies, workers int, parse ParseFunc) ([]string, error) {
	if copies <= 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = 1
	}

	results := make([][]string, copies)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < copies; i++ {
		g.Go(func() error {
			resp, err := engine.Complete(gctx, req)
			if err != nil {
				return fmt.Errorf("completion %d/%d: %w", i+1, copies, err)
			}
			parsed := parse(resp.Text)
			slog.Debug("completion parsed", "index", i, "model", resp.ModelID, "kept", len(parsed), "duration_ms", resp.DurationMs)
			results[i] = parsed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
