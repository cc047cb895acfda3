package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// JobStatus is the lifecycle state of a fine-tuning job.
type JobStatus string

const (
	JobStatusValidatingFiles JobStatus = "validating_files"
	JobStatusQueued          JobStatus = "queued"
	JobStatusPending         JobStatus = "pending"
	JobStatusRunning         JobStatus = "running"
	JobStatusSucceeded       JobStatus = "succeeded"
	JobStatusFailed          JobStatus = "failed"
	JobStatusCancelled       JobStatus = "cancelled"
)

// Epochs is the n_epochs hyperparameter, which the API reports either as a
// number or as "auto" until training starts.
type Epochs struct {
	N    int
	Auto bool
}

func (e *Epochs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = Epochs{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "auto" {
			*e = Epochs{Auto: true}
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("n_epochs: unexpected value %q", s)
		}
		*e = Epochs{N: n}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("n_epochs: %w", err)
	}
	*e = Epochs{N: n}
	return nil
}

func (e Epochs) MarshalJSON() ([]byte, error) {
	if e.Auto {
		return []byte(`"auto"`), nil
	}
	return json.Marshal(e.N)
}

func (e Epochs) String() string {
	if e.N == 0 && e.Auto {
		return "auto"
	}
	return strconv.Itoa(e.N)
}

// Hyperparameters of a fine-tuning job.
type Hyperparameters struct {
	NEpochs Epochs `json:"n_epochs"`
}

// FineTuningJob is a provider fine-tuning job record.
type FineTuningJob struct {
	ID              string          `json:"id"`
	Model           string          `json:"model"`
	CreatedAt       int64           `json:"created_at"`
	FinishedAt      *int64          `json:"finished_at,omitempty"`
	FineTunedModel  string          `json:"fine_tuned_model"`
	Status          JobStatus       `json:"status"`
	TrainingFile    string          `json:"training_file"`
	Hyperparameters Hyperparameters `json:"hyperparameters"`
	TrainedTokens   *int64          `json:"trained_tokens,omitempty"`
	Method          *struct {
		Type       string `json:"type"`
		Supervised *struct {
			Hyperparameters Hyperparameters `json:"hyperparameters"`
		} `json:"supervised,omitempty"`
	} `json:"method,omitempty"`
}

// Created returns the creation time.
func (j FineTuningJob) Created() time.Time {
	return time.Unix(j.CreatedAt, 0)
}

// EpochCount returns the configured epochs, looking at the method block
// when the top-level hyperparameters are unset.
func (j FineTuningJob) EpochCount() Epochs {
	if j.Hyperparameters.NEpochs.N > 0 {
		return j.Hyperparameters.NEpochs
	}
	if j.Method != nil && j.Method.Supervised != nil && j.Method.Supervised.Hyperparameters.NEpochs.N > 0 {
		return j.Method.Supervised.Hyperparameters.NEpochs
	}
	return j.Hyperparameters.NEpochs
}

// File is an uploaded file's metadata.
type File struct {
	ID        string `json:"id"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
}

type jobsPage struct {
	Data    []FineTuningJob `json:"data"`
	HasMore bool            `json:"has_more"`
}

const jobsPageSize = 100

// ListFineTuningJobs returns every fine-tuning job visible to the
// credentials, newest first, following pagination.
func (c *Client) ListFineTuningJobs(ctx context.Context) ([]FineTuningJob, error) {
	var jobs []FineTuningJob
	after := ""
	for {
		q := url.Values{"limit": {strconv.Itoa(jobsPageSize)}}
		if after != "" {
			q.Set("after", after)
		}

		var page jobsPage
		if err := c.doJSON(ctx, http.MethodGet, "/fine_tuning/jobs?"+q.Encode(), nil, &page); err != nil {
			return nil, fmt.Errorf("listing fine-tuning jobs: %w", err)
		}
		jobs = append(jobs, page.Data...)

		if !page.HasMore || len(page.Data) == 0 {
			return jobs, nil
		}
		after = page.Data[len(page.Data)-1].ID
	}
}

// GetFile returns metadata for an uploaded file.
func (c *Client) GetFile(ctx context.Context, id string) (File, error) {
	var f File
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+url.PathEscape(id), nil, &f); err != nil {
		return File{}, fmt.Errorf("getting file %s: %w", id, err)
	}
	return f, nil
}
