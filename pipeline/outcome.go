package pipeline

import (
	"time"

	"github.com/kbukum/voicebridge/errors"
)

// Stage identifies one step of the pipeline.
type Stage string

const (
	StageValidate   Stage = "validate"
	StageCapture    Stage = "capture"
	StageTranscribe Stage = "transcribe"
	StageTranslate  Stage = "translate"
	StageSynthesize Stage = "synthesize"
	StageEmit       Stage = "emit"
)

// Timings records wall-clock duration per stage.
type Timings struct {
	Capture    time.Duration `json:"capture"`
	Transcribe time.Duration `json:"transcribe"`
	Translate  time.Duration `json:"translate"`
	Synthesize time.Duration `json:"synthesize"`
	Emit       time.Duration `json:"emit"`
	Total      time.Duration `json:"total"`
}

// Result is the payload of a successful run.
type Result struct {
	// SourceText is the transcription of the input audio.
	SourceText string `json:"source_text"`
	// TranslatedText is the translation sent to synthesis.
	TranslatedText string `json:"translated_text"`
	// Destination identifies where the output audio landed: a file
	// path or a memory sink id.
	Destination string `json:"destination"`
	// Device is the compute device the run executed on.
	Device string `json:"device"`
	// Timings holds per-stage durations.
	Timings Timings `json:"timings"`
}

// Failure is the payload of a failed run.
type Failure struct {
	// Stage is where the run stopped.
	Stage Stage `json:"stage"`
	// Code classifies the failure.
	Code errors.ErrorCode `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Retryable indicates whether retrying the run may help.
	Retryable bool `json:"retryable"`
	// Err is the underlying application error.
	Err *errors.AppError `json:"-"`
}

// Outcome is the terminal state of a run: exactly one of result or
// failure is set. Construct only via Succeed and Fail.
type Outcome struct {
	result  *Result
	failure *Failure
}

// Succeed creates a successful outcome.
func Succeed(r *Result) Outcome {
	return Outcome{result: r}
}

// Fail creates a failed outcome from a classified error.
func Fail(stage Stage, err *errors.AppError) Outcome {
	return Outcome{failure: &Failure{
		Stage:     stage,
		Code:      err.Code,
		Message:   err.Message,
		Retryable: err.Retryable,
		Err:       err,
	}}
}

// OK reports whether the run succeeded.
func (o Outcome) OK() bool { return o.result != nil }

// Result returns the success payload, or nil for a failed run.
func (o Outcome) Result() *Result { return o.result }

// Failure returns the failure payload, or nil for a successful run.
func (o Outcome) Failure() *Failure { return o.failure }
