package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// Run is one tracker run with its config and summary flattened to plain
// values.
type Run struct {
	Name        string
	DisplayName string
	Config      map[string]any
	Summary     map[string]any
}

// RunConfig is the part of a run's config the run lister reads.
type RunConfig struct {
	FineTunedModel string `mapstructure:"fine_tuned_model"`
	EvalFile       any    `mapstructure:"ue.eval_file"`
}

// DecodeConfig decodes the run config into a RunConfig.
func (r Run) DecodeConfig() (RunConfig, error) {
	var cfg RunConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(r.Config); err != nil {
		return cfg, fmt.Errorf("decoding config of run %s: %w", r.Name, err)
	}
	return cfg, nil
}

// Evaluated reports whether the run carries evaluation results: an eval
// file in its config, a test_accuracy other than -1, or a truthy
// evaluated flag in its summary.
func (r Run) Evaluated(cfg RunConfig) bool {
	if cfg.EvalFile != nil {
		return true
	}
	if v, ok := r.Summary["test_accuracy"]; ok {
		acc, err := cast.ToFloat64E(v)
		if err != nil || acc != -1 {
			return true
		}
	}
	return cast.ToBool(r.Summary["evaluated"])
}

// Classify splits the fine-tuned models referenced by runs into the set
// synced to the tracker and the subset that has been evaluated.
func Classify(runs []Run) (synced, evaluated map[string]bool, err error) {
	synced = map[string]bool{}
	evaluated = map[string]bool{}
	for _, run := range runs {
		cfg, err := run.DecodeConfig()
		if err != nil {
			return nil, nil, err
		}
		if cfg.FineTunedModel == "" {
			continue
		}
		synced[cfg.FineTunedModel] = true
		if run.Evaluated(cfg) {
			evaluated[cfg.FineTunedModel] = true
		}
	}
	return synced, evaluated, nil
}

func decodeRun(name, displayName, rawConfig, rawSummary string) (Run, error) {
	run := Run{Name: name, DisplayName: displayName, Config: map[string]any{}, Summary: map[string]any{}}

	if rawConfig != "" {
		var wrapped map[string]any
		if err := json.Unmarshal([]byte(rawConfig), &wrapped); err != nil {
			return run, fmt.Errorf("%w: decoding config of run %s: %v", ErrTrackerQuery, name, err)
		}
		for k, v := range wrapped {
			run.Config[k] = unwrapValue(v)
		}
	}

	if rawSummary != "" {
		if err := json.Unmarshal([]byte(rawSummary), &run.Summary); err != nil {
			return run, fmt.Errorf("%w: decoding summary of run %s: %v", ErrTrackerQuery, name, err)
		}
	}
	return run, nil
}

// unwrapValue strips the {"value": ..., "desc": ...} envelope W&B stores
// around every config entry.
func unwrapValue(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if inner, ok := m["value"]; ok {
		return inner
	}
	return v
}
