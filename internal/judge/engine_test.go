package judge

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"codearena/internal/execution"
	"codearena/internal/logger"
	"codearena/internal/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger()
	m.Run()
}

type fakeSource struct {
	cases []models.TestCase
	err   error
}

func (f *fakeSource) HiddenTestCases(ctx context.Context, problemID int) ([]models.TestCase, error) {
	return f.cases, f.err
}

// fakeExecutor replies per stdin and counts invocations.
type fakeExecutor struct {
	outputs map[string]*execution.Result
	err     error
	calls   int
	inputs  []string
}

func (f *fakeExecutor) Execute(ctx context.Context, language, code, stdin string) (*execution.Result, error) {
	f.calls++
	f.inputs = append(f.inputs, stdin)
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.outputs[stdin]; ok {
		return r, nil
	}
	return &execution.Result{Stdout: ""}, nil
}

type recordedCall struct {
	userID    int
	problemID int
	language  string
	verdict   *Verdict
}

type fakeRecorder struct {
	calls []recordedCall
	err   error
}

func (f *fakeRecorder) Record(ctx context.Context, userID, problemID int, language, code string, verdict *Verdict) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, recordedCall{userID, problemID, language, verdict})
	return nil
}

func threeCases() []models.TestCase {
	return []models.TestCase{
		{ID: 11, ProblemID: 1, Input: "1", ExpectedOutput: "one", OrderIndex: 0},
		{ID: 12, ProblemID: 1, Input: "2", ExpectedOutput: "two", OrderIndex: 1},
		{ID: 13, ProblemID: 1, Input: "3", ExpectedOutput: "three", OrderIndex: 2},
	}
}

func TestGradeAllPass(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]*execution.Result{
		"1": {Stdout: "one\n"},
		"2": {Stdout: "two"},
		"3": {Stdout: "three\r\n"},
	}}
	rec := &fakeRecorder{}
	engine := NewEngine(&fakeSource{cases: threeCases()}, exec, rec)

	verdict, err := engine.Grade(context.Background(), 7, 1, "python", "print(x)")
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}

	if !verdict.Success || verdict.Passed != 3 || verdict.Failed != 0 || verdict.Total != 3 {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
	if len(verdict.Results) != 3 {
		t.Fatalf("expected 3 case results, got %d", len(verdict.Results))
	}
	if exec.calls != 3 {
		t.Errorf("expected 3 executions, got %d", exec.calls)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 record call, got %d", len(rec.calls))
	}
	if got := rec.calls[0]; got.userID != 7 || got.problemID != 1 || !got.verdict.Success {
		t.Errorf("unexpected record call: %+v", got)
	}
}

func TestGradeShortCircuitsOnFirstFailure(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]*execution.Result{
		"1": {Stdout: "one"},
		"2": {Stdout: "wrong"},
		"3": {Stdout: "three"},
	}}
	rec := &fakeRecorder{}
	engine := NewEngine(&fakeSource{cases: threeCases()}, exec, rec)

	verdict, err := engine.Grade(context.Background(), 7, 1, "python", "print(x)")
	if err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}

	if verdict.Success {
		t.Error("verdict should not be a success")
	}
	if verdict.Passed != 1 || verdict.Failed != 1 || verdict.Total != 3 {
		t.Errorf("unexpected counts: %+v", verdict)
	}
	if len(verdict.Results) != 2 {
		t.Fatalf("expected 2 case results, got %d", len(verdict.Results))
	}
	if exec.calls != 2 {
		t.Errorf("case 3 must never run, got %d executions", exec.calls)
	}
	last := verdict.Results[1]
	if last.TestCaseID != 12 || last.Passed || last.Output != "wrong" || last.Expected != "two" {
		t.Errorf("unexpected failing case result: %+v", last)
	}
	if len(rec.calls) != 1 || rec.calls[0].verdict.Success {
		t.Errorf("failed attempt must still be recorded once: %+v", rec.calls)
	}
}

func TestGradeExecutionOrder(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]*execution.Result{
		"1": {Stdout: "one"},
		"2": {Stdout: "two"},
		"3": {Stdout: "three"},
	}}
	engine := NewEngine(&fakeSource{cases: threeCases()}, exec, &fakeRecorder{})

	if _, err := engine.Grade(context.Background(), 7, 1, "go", "code"); err != nil {
		t.Fatalf("Grade returned error: %v", err)
	}

	want := []string{"1", "2", "3"}
	if !reflect.DeepEqual(exec.inputs, want) {
		t.Errorf("expected stored order %v, got %v", want, exec.inputs)
	}
}

func TestGradeNoHiddenTests(t *testing.T) {
	exec := &fakeExecutor{}
	rec := &fakeRecorder{}
	engine := NewEngine(&fakeSource{}, exec, rec)

	_, err := engine.Grade(context.Background(), 7, 1, "python", "print(1)")
	if !errors.Is(err, ErrNoHiddenTests) {
		t.Fatalf("expected ErrNoHiddenTests, got %v", err)
	}
	if exec.calls != 0 {
		t.Errorf("nothing should be executed, got %d calls", exec.calls)
	}
	if len(rec.calls) != 0 {
		t.Errorf("nothing should be recorded, got %d calls", len(rec.calls))
	}
}

func TestGradeTransportFailureAborts(t *testing.T) {
	exec := &fakeExecutor{err: fmt.Errorf("%w: connection refused", execution.ErrTransport)}
	rec := &fakeRecorder{}
	engine := NewEngine(&fakeSource{cases: threeCases()}, exec, rec)

	_, err := engine.Grade(context.Background(), 7, 1, "python", "print(1)")
	if !errors.Is(err, execution.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if exec.calls != 1 {
		t.Errorf("grading must abort after the failing call, got %d", exec.calls)
	}
	if len(rec.calls) != 0 {
		t.Errorf("a transport failure must not be recorded as a wrong attempt")
	}
}

func TestGradeCompileErrorRecordsFailedAttempt(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]*execution.Result{
		"1": {Stderr: "SyntaxError: invalid syntax", ExitCode: 1},
	}}
	rec := &fakeRecorder{}
	engine := NewEngine(&fakeSource{cases: threeCases()}, exec, rec)

	_, err := engine.Grade(context.Background(), 7, 1, "python", "print(")

	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("expected CompileError, got %v", err)
	}
	if compileErr.Stderr != "SyntaxError: invalid syntax" {
		t.Errorf("stderr not surfaced: %q", compileErr.Stderr)
	}
	if exec.calls != 1 {
		t.Errorf("no further cases may run, got %d calls", exec.calls)
	}
	if len(rec.calls) != 1 || rec.calls[0].verdict.Success {
		t.Errorf("compile error must be recorded as a failed attempt: %+v", rec.calls)
	}
}

func TestGradeRecordFailureSurfaces(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]*execution.Result{
		"1": {Stdout: "one"},
		"2": {Stdout: "two"},
		"3": {Stdout: "three"},
	}}
	engine := NewEngine(&fakeSource{cases: threeCases()}, exec, &fakeRecorder{err: errors.New("db down")})

	_, err := engine.Grade(context.Background(), 7, 1, "python", "print(1)")
	if !errors.Is(err, ErrNotRecorded) {
		t.Fatalf("expected ErrNotRecorded, got %v", err)
	}
}

func TestGradeDeterministic(t *testing.T) {
	outputs := map[string]*execution.Result{
		"1": {Stdout: "one"},
		"2": {Stdout: "nope"},
	}
	run := func() *Verdict {
		engine := NewEngine(&fakeSource{cases: threeCases()}, &fakeExecutor{outputs: outputs}, &fakeRecorder{})
		v, err := engine.Grade(context.Background(), 7, 1, "python", "print(1)")
		if err != nil {
			t.Fatalf("Grade returned error: %v", err)
		}
		return v
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two identical runs diverged: %+v vs %+v", first, second)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\r\nb\n", "a\nb"},
		{"a\nb", "a\nb"},
		{"  hello  ", "hello"},
		{"\r\n\r\n", ""},
		{"", ""},
		{"one\r\ntwo\r\nthree", "one\ntwo\nthree"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
		// Normalizing twice must be a no-op
		if got := Normalize(Normalize(tt.in)); got != tt.want {
			t.Errorf("Normalize not idempotent for %q: got %q", tt.in, got)
		}
	}
}
