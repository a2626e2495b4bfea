package tester

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/internal/translator"
	"github.com/msto63/ippcode/pkg/core/logging"
)

// interpreterCodes starts the range of return codes produced by the
// interpreter stage
const interpreterCodes = 30

// Runner executes test cases against the translator
type Runner struct {
	translator *translator.Service
	logger     *logging.Logger
	workers    int
}

// RunnerConfig holds runner configuration
type RunnerConfig struct {
	Translator *translator.Service
	Logger     *logging.Logger
	Workers    int // parallel cases, default 1
}

// NewRunner creates a runner
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Translator == nil {
		return nil, ippcerr.New("translator is required").
			WithCode(ippcerr.CodeInvalidParameter).
			WithOperation("tester.NewRunner")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New("tester")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Runner{translator: cfg.Translator, logger: cfg.Logger, workers: cfg.Workers}, nil
}

// Run executes all cases and fills run. Results keep the order of cases.
func (r *Runner) Run(ctx context.Context, run *Run, cases []Case) error {
	results := make([]Result, len(cases))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.RunCase(ctx, cases[i])
			}
		}()
	}

	var err error
feed:
	for i := range cases {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return err
	}

	for _, res := range results {
		run.Add(res)
	}
	run.FinishedAt = time.Now()

	r.logger.Info("Test run finished",
		"run", run.ID,
		"passed", run.Passed(),
		"total", run.Total(),
		"duration", run.Duration(),
	)
	return nil
}

// RunCase executes one case
func (r *Runner) RunCase(ctx context.Context, c Case) Result {
	start := time.Now()
	res := Result{Name: c.Name, Directory: c.Directory}

	expected, err := c.ExpectedReturnCode()
	if err != nil {
		res.Failure = FailureCaseError
		res.Details = err.Error()
		res.Duration = time.Since(start)
		return res
	}
	res.ExpectedRC = expected

	res.ActualRC, res.Details = r.parse(ctx, c)
	res.Passed = Verdict(expected, res.ActualRC)
	if !res.Passed {
		res.Failure = FailureParseReturnCode
	} else if expected == 0 || expected >= interpreterCodes {
		res.Details = "interpreter stage skipped"
	}

	r.logger.Debug("Case finished",
		"case", c.ID(),
		"expected", res.ExpectedRC,
		"actual", res.ActualRC,
		"passed", res.Passed,
	)
	res.Duration = time.Since(start)
	return res
}

// parse translates the case source and returns the parse return code with
// the diagnostic of a failed parse
func (r *Runner) parse(ctx context.Context, c Case) (int, string) {
	f, err := os.Open(c.Path(FileSource))
	if err != nil {
		return ippcerr.ExitInputOpen, err.Error()
	}
	defer f.Close()

	if _, err := r.translator.Translate(ctx, f); err != nil {
		return translator.ReturnCode(err), err.Error()
	}
	return ippcerr.ExitSuccess, ""
}

// Verdict decides whether the parse return code satisfies the expected
// code of a case. Expected codes of the interpreter stage require a
// successful parse.
func Verdict(expected, actual int) bool {
	switch {
	case expected == ippcerr.ExitSourceFormat:
		return actual == ippcerr.ExitSourceFormat
	case expected == ippcerr.ExitSuccess, expected >= interpreterCodes:
		return actual == ippcerr.ExitSuccess
	default:
		return actual == expected
	}
}

// Summary returns the closing report line
func Summary(run *Run) string {
	return fmt.Sprintf("%d/%d Successful tests.", run.Passed(), run.Total())
}
