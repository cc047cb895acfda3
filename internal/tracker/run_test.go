package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	runs := []Run{
		{Name: "plain", Config: map[string]any{"fine_tuned_model": "ft:synced"}},
		{Name: "eval-file", Config: map[string]any{"fine_tuned_model": "ft:file", "ue.eval_file": "eval.jsonl"}},
		{Name: "accuracy", Config: map[string]any{"fine_tuned_model": "ft:acc"}, Summary: map[string]any{"test_accuracy": 0.75}},
		{Name: "accuracy-unset", Config: map[string]any{"fine_tuned_model": "ft:acc-unset"}, Summary: map[string]any{"test_accuracy": -1}},
		{Name: "flag", Config: map[string]any{"fine_tuned_model": "ft:flag"}, Summary: map[string]any{"evaluated": true}},
		{Name: "flag-string", Config: map[string]any{"fine_tuned_model": "ft:flag-str"}, Summary: map[string]any{"evaluated": "true"}},
		{Name: "no-model", Config: map[string]any{"lr": 1}},
	}

	synced, evaluated, err := Classify(runs)
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{
		"ft:synced":    true,
		"ft:file":      true,
		"ft:acc":       true,
		"ft:acc-unset": true,
		"ft:flag":      true,
		"ft:flag-str":  true,
	}, synced)
	assert.Equal(t, map[string]bool{
		"ft:file":     true,
		"ft:acc":      true,
		"ft:flag":     true,
		"ft:flag-str": true,
	}, evaluated)
}

func TestDecodeRun_UnwrapsValueEnvelope(t *testing.T) {
	run, err := decodeRun("r", "R", `{"fine_tuned_model": {"value": "ft:x", "desc": null}, "raw": 3}`, `{"evaluated": false}`)
	require.NoError(t, err)
	assert.Equal(t, "ft:x", run.Config["fine_tuned_model"])
	assert.Equal(t, float64(3), run.Config["raw"])
	assert.Equal(t, false, run.Summary["evaluated"])
}

func TestDecodeRun_BadJSON(t *testing.T) {
	_, err := decodeRun("r", "R", `{not json`, "")
	require.ErrorIs(t, err, ErrTrackerQuery)
}
