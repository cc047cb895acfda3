// Package projectconfig provides the ProjectConfig struct and loader for
// .ftkit.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/augmentlab/ftkit/internal/utils"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up from the working
// directory upward.
const FileName = ".ftkit.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultDataDir = "data/"

	DefaultEngine         = "openai"
	DefaultModel          = "gpt-3.5-turbo"
	DefaultWorkers        = 1
	DefaultSampleSize     = 10
	DefaultAskFor         = 30
	DefaultMinimum        = 100
	DefaultMaxEmptyRounds = 10
	DefaultTimeout        = 0

	DefaultRunsDays = 2

	DefaultCacheDir = ".ftkit-cache"
)

// PathsConfig holds directory paths for seed data and prompt templates.
type PathsConfig struct {
	Data    string `yaml:"data,omitempty"`
	Prompts string `yaml:"prompts,omitempty"`
}

// DefaultsConfig holds default augmentation parameters.
type DefaultsConfig struct {
	Engine         string `yaml:"engine,omitempty"`
	Model          string `yaml:"model,omitempty"`
	Workers        int    `yaml:"workers,omitempty"`
	SampleSize     int    `yaml:"sample_size,omitempty"`
	AskFor         int    `yaml:"ask_for,omitempty"`
	Minimum        int    `yaml:"minimum,omitempty"`
	MaxEmptyRounds int    `yaml:"max_empty_rounds,omitempty"`
	// Timeout bounds a whole augment invocation, in seconds. Zero means no
	// limit.
	Timeout int `yaml:"timeout,omitempty"`
	// Temperature is passed to chat-completion engines when set.
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// TrackerConfig locates the experiment tracker project.
type TrackerConfig struct {
	Entity  string `yaml:"entity,omitempty"`
	Project string `yaml:"project,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// ProviderConfig holds model-provider settings.
type ProviderConfig struct {
	BaseURL      string `yaml:"base_url,omitempty"`
	Organization string `yaml:"organization,omitempty"`
	MaxRetries   *int   `yaml:"max_retries,omitempty"`
	// RequestsPerSecond throttles provider calls. Zero means unthrottled.
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"`
}

// RunsConfig holds list-runs settings.
type RunsConfig struct {
	Days int `yaml:"days,omitempty"`
	// Pricing overrides the built-in USD price per 1,000 training tokens,
	// keyed by base-model prefix.
	Pricing map[string]float64 `yaml:"pricing,omitempty"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// PublishConfig names the blob container augmented files are uploaded to.
type PublishConfig struct {
	AccountURL string `yaml:"account_url,omitempty"`
	Container  string `yaml:"container,omitempty"`
	Prefix     string `yaml:"prefix,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .ftkit.yaml.
type ProjectConfig struct {
	Paths    PathsConfig    `yaml:"paths,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Tracker  TrackerConfig  `yaml:"tracker,omitempty"`
	Provider ProviderConfig `yaml:"provider,omitempty"`
	Runs     RunsConfig     `yaml:"runs,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
	Publish  PublishConfig  `yaml:"publish,omitempty"`

	// Dir is the directory the config file was found in, empty when none
	// was found. Relative paths in the file resolve against it.
	Dir string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Data: DefaultDataDir,
		},
		Defaults: DefaultsConfig{
			Engine:         DefaultEngine,
			Model:          DefaultModel,
			Workers:        DefaultWorkers,
			SampleSize:     DefaultSampleSize,
			AskFor:         DefaultAskFor,
			Minimum:        DefaultMinimum,
			MaxEmptyRounds: DefaultMaxEmptyRounds,
			Timeout:        DefaultTimeout,
		},
		Runs: RunsConfig{
			Days: DefaultRunsDays,
		},
		Cache: CacheConfig{
			Enabled: utils.Ptr(true),
			Dir:     DefaultCacheDir,
		},
	}
}

// Load finds .ftkit.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, dir, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	cfg.Dir = dir
	return cfg, nil
}

// findConfigFile walks up from dir looking for .ftkit.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, string, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Data != "" {
		dst.Paths.Data = src.Paths.Data
	}
	if src.Paths.Prompts != "" {
		dst.Paths.Prompts = src.Paths.Prompts
	}

	// Defaults
	if src.Defaults.Engine != "" {
		dst.Defaults.Engine = src.Defaults.Engine
	}
	if src.Defaults.Model != "" {
		dst.Defaults.Model = src.Defaults.Model
	}
	if src.Defaults.Workers != 0 {
		dst.Defaults.Workers = src.Defaults.Workers
	}
	if src.Defaults.SampleSize != 0 {
		dst.Defaults.SampleSize = src.Defaults.SampleSize
	}
	if src.Defaults.AskFor != 0 {
		dst.Defaults.AskFor = src.Defaults.AskFor
	}
	if src.Defaults.Minimum != 0 {
		dst.Defaults.Minimum = src.Defaults.Minimum
	}
	if src.Defaults.MaxEmptyRounds != 0 {
		dst.Defaults.MaxEmptyRounds = src.Defaults.MaxEmptyRounds
	}
	if src.Defaults.Timeout != 0 {
		dst.Defaults.Timeout = src.Defaults.Timeout
	}
	if src.Defaults.Temperature != nil {
		dst.Defaults.Temperature = src.Defaults.Temperature
	}

	// Tracker
	if src.Tracker.Entity != "" {
		dst.Tracker.Entity = src.Tracker.Entity
	}
	if src.Tracker.Project != "" {
		dst.Tracker.Project = src.Tracker.Project
	}
	if src.Tracker.BaseURL != "" {
		dst.Tracker.BaseURL = src.Tracker.BaseURL
	}

	// Provider
	if src.Provider.BaseURL != "" {
		dst.Provider.BaseURL = src.Provider.BaseURL
	}
	if src.Provider.Organization != "" {
		dst.Provider.Organization = src.Provider.Organization
	}
	if src.Provider.MaxRetries != nil {
		dst.Provider.MaxRetries = src.Provider.MaxRetries
	}
	if src.Provider.RequestsPerSecond != 0 {
		dst.Provider.RequestsPerSecond = src.Provider.RequestsPerSecond
	}

	// Runs
	if src.Runs.Days != 0 {
		dst.Runs.Days = src.Runs.Days
	}
	if src.Runs.Pricing != nil {
		dst.Runs.Pricing = src.Runs.Pricing
	}

	// Cache
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}

	// Publish
	if src.Publish.AccountURL != "" {
		dst.Publish.AccountURL = src.Publish.AccountURL
	}
	if src.Publish.Container != "" {
		dst.Publish.Container = src.Publish.Container
	}
	if src.Publish.Prefix != "" {
		dst.Publish.Prefix = src.Publish.Prefix
	}
}

// ResolvePath resolves p against the directory the config was loaded
// from. Absolute paths and configs without a file are returned as is.
func (c *ProjectConfig) ResolvePath(p string) string {
	return utils.ResolvePath(p, c.Dir)
}

// CacheDir returns the resolved cache directory, or "" when caching is
// disabled.
func (c *ProjectConfig) CacheDir() string {
	if c.Cache.Enabled == nil || !*c.Cache.Enabled {
		return ""
	}
	return c.ResolvePath(c.Cache.Dir)
}
