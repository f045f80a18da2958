package judge

import (
	"context"
	"fmt"
	"strings"

	"codearena/internal/execution"
	"codearena/internal/logger"
	"codearena/internal/models"

	"go.uber.org/zap"
)

// CaseResult is the grading outcome for one executed hidden test case.
type CaseResult struct {
	TestCaseID int    `json:"test_case_id"`
	Passed     bool   `json:"passed"`
	Output     string `json:"output"`
	Expected   string `json:"expected"`
}

// Verdict is the result of one grading run. Results holds one entry per
// executed case only; cases after the first failure are never run, so their
// expected outputs never leave the engine.
type Verdict struct {
	Success bool         `json:"success"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Total   int          `json:"total"`
	Results []CaseResult `json:"results"`
}

// TestCaseSource returns the hidden test cases for a problem ordered by
// order_index ascending. An empty slice is a valid return; the engine
// rejects it.
type TestCaseSource interface {
	HiddenTestCases(ctx context.Context, problemID int) ([]models.TestCase, error)
}

// Recorder persists the terminal outcome of a grading run: always one
// submission row, plus an idempotent solved-fact insert when the verdict is
// a full pass.
type Recorder interface {
	Record(ctx context.Context, userID, problemID int, language, code string, verdict *Verdict) error
}

// Engine grades one submission against a problem's hidden test cases,
// strictly in stored order, one remote execution per case, stopping at the
// first failure.
type Engine struct {
	cases    TestCaseSource
	executor execution.Client
	recorder Recorder
}

func NewEngine(cases TestCaseSource, executor execution.Client, recorder Recorder) *Engine {
	return &Engine{
		cases:    cases,
		executor: executor,
		recorder: recorder,
	}
}

// Normalize prepares program output for comparison: CRLF becomes LF, then
// leading and trailing whitespace is trimmed.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// Grade runs the submitted code against every hidden test case of the
// problem until one fails. Error cases:
//   - no hidden test cases: ErrNoHiddenTests, nothing executed or recorded;
//   - unsupported language / transport failure: the execution package error,
//     grading aborted, nothing recorded;
//   - non-zero exit from the sandbox: *CompileError, recorded as a failed
//     attempt;
//   - recording failure: ErrNotRecorded.
func (e *Engine) Grade(ctx context.Context, userID, problemID int, language, code string) (*Verdict, error) {
	testCases, err := e.cases.HiddenTestCases(ctx, problemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if len(testCases) == 0 {
		logger.Log.Warn("Problem has no hidden test cases",
			zap.Int("problem_id", problemID))
		return nil, ErrNoHiddenTests
	}

	verdict := &Verdict{
		Total:   len(testCases),
		Results: make([]CaseResult, 0, len(testCases)),
	}

	for _, tc := range testCases {
		result, err := e.executor.Execute(ctx, language, code, tc.Input)
		if err != nil {
			logger.Log.Error("Aborting grading run",
				zap.Int("user_id", userID),
				zap.Int("problem_id", problemID),
				zap.Int("testcase_id", tc.ID),
				zap.Error(err))
			return nil, err
		}

		if result.ExitCode != 0 {
			verdict.Failed++
			if err := e.recorder.Record(ctx, userID, problemID, language, code, verdict); err != nil {
				logger.Log.Error("Failed to record aborted attempt", zap.Error(err))
				return nil, fmt.Errorf("%w: %v", ErrNotRecorded, err)
			}
			return nil, &CompileError{Stderr: result.Stderr}
		}

		output := Normalize(result.Stdout)
		expected := Normalize(tc.ExpectedOutput)
		ok := output == expected

		verdict.Results = append(verdict.Results, CaseResult{
			TestCaseID: tc.ID,
			Passed:     ok,
			Output:     output,
			Expected:   expected,
		})

		if ok {
			verdict.Passed++
		} else {
			verdict.Failed++
			break
		}
	}

	verdict.Success = verdict.Failed == 0

	if err := e.recorder.Record(ctx, userID, problemID, language, code, verdict); err != nil {
		logger.Log.Error("Failed to record grading outcome",
			zap.Int("user_id", userID),
			zap.Int("problem_id", problemID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNotRecorded, err)
	}

	return verdict, nil
}
