package runs

import (
	"time"

	"github.com/augmentlab/ftkit/internal/openai"
)

// TrainingFile is the metadata of a job's training file the lister needs.
type TrainingFile struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Bytes    int64  `json:"bytes"`
}

// Job is a fine-tuning job joined with its training file metadata.
type Job struct {
	ID             string           `json:"id"`
	Status         openai.JobStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	BaseModel      string           `json:"base_model"`
	FineTunedModel string           `json:"fine_tuned_model,omitempty"`
	TrainingFile   TrainingFile     `json:"training_file"`
	Epochs         openai.Epochs    `json:"epochs"`
}

func newJob(j openai.FineTuningJob, file TrainingFile) Job {
	return Job{
		ID:             j.ID,
		Status:         j.Status,
		CreatedAt:      j.Created(),
		BaseModel:      j.Model,
		FineTunedModel: j.FineTunedModel,
		TrainingFile:   file,
		Epochs:         j.EpochCount(),
	}
}

// HasModel reports whether training produced a fine-tuned model.
func (j Job) HasModel() bool {
	return j.FineTunedModel != ""
}

// DisplayName composes the name shown in the Model column.
func (j Job) DisplayName(c Classification) string {
	var name string
	switch c {
	case SucceededUnsynced:
		name = j.FineTunedModel + " [ep" + j.Epochs.String() + "] (not synced)"
	case SucceededUnevaluated:
		name = j.FineTunedModel + " [ep" + j.Epochs.String() + "] (not evaluated)"
	case SucceededEvaluated:
		name = j.FineTunedModel + " [ep" + j.Epochs.String() + "] (evaluated)"
	default:
		name = j.BaseModel + " (" + j.TrainingFile.Filename + ") [ep" + j.Epochs.String() + "]"
	}
	return name + " - " + j.ID
}

// EstimatedTokens is the number of training tokens billed for the job.
func (j Job) EstimatedTokens() float64 {
	return tokensFor(j.TrainingFile.Bytes, j.Epochs.N)
}
