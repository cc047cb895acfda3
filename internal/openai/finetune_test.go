package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochs_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Epochs
	}{
		{`4`, Epochs{N: 4}},
		{`"auto"`, Epochs{Auto: true}},
		{`"3"`, Epochs{N: 3}},
		{`null`, Epochs{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var e Epochs
			require.NoError(t, json.Unmarshal([]byte(tt.in), &e))
			assert.Equal(t, tt.want, e)
		})
	}

	var e Epochs
	require.Error(t, json.Unmarshal([]byte(`"lots"`), &e))
}

func TestEpochs_String(t *testing.T) {
	assert.Equal(t, "auto", Epochs{Auto: true}.String())
	assert.Equal(t, "4", Epochs{N: 4}.String())
}

func TestFineTuningJob_EpochCountFromMethod(t *testing.T) {
	var job FineTuningJob
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "ftjob-1",
		"hyperparameters": {"n_epochs": "auto"},
		"method": {"type": "supervised", "supervised": {"hyperparameters": {"n_epochs": 3}}}
	}`), &job))
	assert.Equal(t, 3, job.EpochCount().N)
}

func TestListFineTuningJobs_Paginates(t *testing.T) {
	var afters []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fine_tuning/jobs", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		after := r.URL.Query().Get("after")
		afters = append(afters, after)

		switch after {
		case "":
			_, _ = w.Write([]byte(`{"data":[
				{"id":"ftjob-a","model":"davinci-002","status":"succeeded","fine_tuned_model":"ft:davinci-002:org::a","created_at":1700000000,"training_file":"file-a","hyperparameters":{"n_epochs":4}},
				{"id":"ftjob-b","model":"gpt-3.5-turbo","status":"running","fine_tuned_model":null,"created_at":1700000100,"training_file":"file-b","hyperparameters":{"n_epochs":"auto"}}
			],"has_more":true}`))
		case "ftjob-b":
			_, _ = w.Write([]byte(`{"data":[
				{"id":"ftjob-c","model":"babbage-002","status":"failed","created_at":1700000200,"training_file":"file-c","hyperparameters":{"n_epochs":2}}
			],"has_more":false}`))
		default:
			t.Errorf("unexpected cursor %q", after)
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	jobs, err := c.ListFineTuningJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, []string{"", "ftjob-b"}, afters)

	assert.Equal(t, JobStatusSucceeded, jobs[0].Status)
	assert.Equal(t, "ft:davinci-002:org::a", jobs[0].FineTunedModel)
	assert.Equal(t, 4, jobs[0].EpochCount().N)
	assert.Empty(t, jobs[1].FineTunedModel)
	assert.True(t, jobs[1].EpochCount().Auto)
	assert.Equal(t, JobStatusFailed, jobs[2].Status)
	assert.Equal(t, int64(1700000200), jobs[2].Created().Unix())
}

func TestGetFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/file-a", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"file-a","bytes":123456,"filename":"calling.jsonl","purpose":"fine-tune"}`))
	})

	f, err := c.GetFile(context.Background(), "file-a")
	require.NoError(t, err)
	assert.Equal(t, "calling.jsonl", f.Filename)
	assert.Equal(t, int64(123456), f.Bytes)
}

func TestGetFile_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"No such File object: file-x","type":"invalid_request_error"}}`))
	})

	_, err := c.GetFile(context.Background(), "file-x")
	require.ErrorIs(t, err, ErrProviderRequest)
	assert.Contains(t, err.Error(), "file-x")
}
