package runs

//go:generate go tool mockgen -source=sources.go -destination=mocks_test.go -package=runs

import (
	"context"
	"log/slog"

	"github.com/augmentlab/ftkit/internal/cache"
	"github.com/augmentlab/ftkit/internal/openai"
	"github.com/augmentlab/ftkit/internal/tracker"
)

// JobSource lists fine-tuning jobs from the model provider.
type JobSource interface {
	ListFineTuningJobs(ctx context.Context) ([]openai.FineTuningJob, error)
}

// FileSource looks up uploaded file metadata.
type FileSource interface {
	GetFile(ctx context.Context, id string) (openai.File, error)
}

// RunSource finds tracker runs for fine-tuned models.
type RunSource interface {
	RunsForModels(ctx context.Context, entity, project string, models []string) ([]tracker.Run, error)
}

// CachedFiles wraps a FileSource with an on-disk cache. Uploaded files are
// immutable, so entries never expire.
type CachedFiles struct {
	Source FileSource
	Cache  *cache.Cache
}

func (c *CachedFiles) GetFile(ctx context.Context, id string) (openai.File, error) {
	key := cache.Key("openai-file", id)

	var f openai.File
	if c.Cache.Get(key, &f) {
		slog.Debug("file metadata cache hit", "file", id)
		return f, nil
	}

	f, err := c.Source.GetFile(ctx, id)
	if err != nil {
		return f, err
	}
	if err := c.Cache.Put(key, f); err != nil {
		slog.Warn("caching file metadata", "file", id, "error", err)
	}
	return f, nil
}
