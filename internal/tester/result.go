package tester

import (
	"time"

	"github.com/google/uuid"
)

// FailureKind classifies a failed case
type FailureKind string

const (
	FailureNone            FailureKind = ""
	FailureParseReturnCode FailureKind = "parse_return_code"
	FailureIntReturnCode   FailureKind = "interpret_return_code"
	FailureOutputDiff      FailureKind = "output_diff"
	FailureCaseError       FailureKind = "case_error"
)

// Describe returns the report heading for a failure kind
func (k FailureKind) Describe() string {
	switch k {
	case FailureParseReturnCode:
		return "Unexpected parse return code"
	case FailureIntReturnCode:
		return "Unexpected interpret return code"
	case FailureOutputDiff:
		return "Different interpret output"
	case FailureCaseError:
		return "Invalid test case"
	default:
		return ""
	}
}

// Result is the outcome of one case
type Result struct {
	Name        string        `json:"name"`
	Directory   string        `json:"directory"`
	ExpectedRC  int           `json:"expected_rc"`
	ActualRC    int           `json:"actual_rc"`
	Passed      bool          `json:"passed"`
	Failure     FailureKind   `json:"failure,omitempty"`
	Details     string        `json:"details,omitempty"`
	Interpreted bool          `json:"interpreted"`
	Duration    time.Duration `json:"duration"`
}

// Run groups the results of one harness invocation
type Run struct {
	ID         string    `json:"id"`
	Directory  string    `json:"directory"`
	Recursive  bool      `json:"recursive"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Results    []Result  `json:"results"`
}

// NewRun creates an empty run with a fresh ID
func NewRun(directory string, recursive bool) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Directory: directory,
		Recursive: recursive,
		StartedAt: time.Now(),
	}
}

// Add appends a result
func (r *Run) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Total returns the number of cases
func (r *Run) Total() int { return len(r.Results) }

// Passed returns the number of successful cases
func (r *Run) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

// Failed returns the failed results in run order
func (r *Run) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Duration returns the wall time of the run
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
