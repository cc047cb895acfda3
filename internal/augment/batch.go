package augment

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/augmentlab/ftkit/internal/utils"
	"github.com/augmentlab/ftkit/internal/validation"
	"gopkg.in/yaml.v3"
)

//go:embed default_batch.yaml
var defaultBatchYAML []byte

// Task is one seed file to augment.
type Task struct {
	Name      string   `yaml:"name,omitempty"`
	Filename  string   `yaml:"filename"`
	Type      string   `yaml:"type,omitempty"`
	Required  []string `yaml:"required,omitempty"`
	Suggested []string `yaml:"suggested,omitempty"`
	Minimum   int      `yaml:"minimum,omitempty"`

	// Vars are exposed to the prompt template as {{.Vars.<key>}}.
	Vars map[string]string `yaml:"vars,omitempty"`
}

// Label is the task's display name.
func (t Task) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Filename
}

// Batch is a list of tasks sharing a data directory.
type Batch struct {
	DataDir string `yaml:"data_dir,omitempty"`
	Tasks   []Task `yaml:"tasks"`
}

// LoadBatch reads and validates a batch file. Relative task filenames are
// resolved against the batch's data_dir, which itself is relative to the
// batch file.
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	b, err := ParseBatch(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b.DataDir = utils.ResolvePath(b.DataDir, filepath.Dir(path))
	if b.DataDir == "" {
		b.DataDir = filepath.Dir(path)
	}
	b.resolve()
	return b, nil
}

// DefaultBatch returns the built-in task list rooted at dataDir.
func DefaultBatch(dataDir string) *Batch {
	b, err := ParseBatch(defaultBatchYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in batch is invalid: %v", err))
	}
	if dataDir != "" {
		b.DataDir = dataDir
	}
	b.resolve()
	return b
}

// ParseBatch decodes YAML batch content and validates it against the batch
// schema.
func ParseBatch(data []byte) (*Batch, error) {
	if errs := validation.ValidateBatchBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid batch:\n  %s", strings.Join(errs, "\n  "))
	}

	var b Batch
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding batch: %w", err)
	}
	return &b, nil
}

func (b *Batch) resolve() {
	for i := range b.Tasks {
		b.Tasks[i].Filename = utils.ResolvePath(b.Tasks[i].Filename, b.DataDir)
		if b.Tasks[i].Type == "" {
			b.Tasks[i].Type = TypeBase
		}
	}
}
