package runs

import "github.com/augmentlab/ftkit/internal/openai"

// Classification places a job on the status/sync/evaluation ladder the
// table colours rows by.
type Classification int

const (
	InProgressNoModel Classification = iota
	Pending
	Running
	Cancelled
	Failed
	SucceededUnsynced
	SucceededUnevaluated
	SucceededEvaluated
)

var classificationNames = map[Classification]string{
	InProgressNoModel:    "in_progress_no_model",
	Pending:              "pending",
	Running:              "running",
	Cancelled:            "cancelled",
	Failed:               "failed",
	SucceededUnsynced:    "succeeded_unsynced",
	SucceededUnevaluated: "succeeded_unevaluated",
	SucceededEvaluated:   "succeeded_evaluated",
}

func (c Classification) String() string {
	if s, ok := classificationNames[c]; ok {
		return s
	}
	return "unknown"
}

func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Style is a display colour, resolved to terminal attributes by the report
// renderer.
type Style string

const (
	StyleDefault Style = "default"
	StyleGreen   Style = "green"
	StyleMagenta Style = "magenta"
	StyleBlue    Style = "blue"
	StyleYellow  Style = "yellow"
	StyleRed     Style = "red"
)

var styles = map[Classification]Style{
	SucceededEvaluated:   StyleDefault,
	SucceededUnevaluated: StyleGreen,
	SucceededUnsynced:    StyleMagenta,
	Running:              StyleBlue,
	Pending:              StyleYellow,
	Cancelled:            StyleDefault,
	Failed:               StyleRed,
	InProgressNoModel:    StyleRed,
}

// Style returns the display style of c.
func (c Classification) Style() Style {
	if s, ok := styles[c]; ok {
		return s
	}
	return StyleRed
}

// Classify places job given the models synced to and evaluated in the
// tracker. Jobs without a fine-tuned model are classified by status.
func Classify(job Job, synced, evaluated map[string]bool) Classification {
	if job.HasModel() {
		switch {
		case !synced[job.FineTunedModel]:
			return SucceededUnsynced
		case !evaluated[job.FineTunedModel]:
			return SucceededUnevaluated
		default:
			return SucceededEvaluated
		}
	}

	switch job.Status {
	case openai.JobStatusRunning:
		return Running
	case openai.JobStatusPending, openai.JobStatusQueued, openai.JobStatusValidatingFiles:
		return Pending
	case openai.JobStatusCancelled:
		return Cancelled
	case openai.JobStatusFailed:
		return Failed
	default:
		return InProgressNoModel
	}
}
