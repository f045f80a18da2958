package execution

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codearena/internal/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger()
	m.Run()
}

func TestPistonExecute(t *testing.T) {
	var gotRequest pistonRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/execute" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(pistonResponse{
			Run: pistonRun{Stdout: "42\n", Stderr: "", Code: 0},
		})
	}))
	defer server.Close()

	client := NewPistonClient(server.URL, 5*time.Second)

	result, err := client.Execute(context.Background(), "Python", "print(42)", "in")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if result.Stdout != "42\n" || result.ExitCode != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
	if gotRequest.Language != "python" {
		t.Errorf("language not normalized: %q", gotRequest.Language)
	}
	if gotRequest.Version != "*" {
		t.Errorf("version selector must be *, got %q", gotRequest.Version)
	}
	if len(gotRequest.Files) != 1 || gotRequest.Files[0].Content != "print(42)" {
		t.Errorf("unexpected files payload: %+v", gotRequest.Files)
	}
	if gotRequest.Stdin != "in" {
		t.Errorf("unexpected stdin: %q", gotRequest.Stdin)
	}
}

func TestPistonExecuteUnsupportedLanguage(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := NewPistonClient(server.URL, 5*time.Second)

	_, err := client.Execute(context.Background(), "brainfuck", "+++", "")
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
	if calls != 0 {
		t.Errorf("no network call may happen for an unsupported language")
	}
}

func TestPistonExecuteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewPistonClient(server.URL, 5*time.Second)

	_, err := client.Execute(context.Background(), "python", "print(1)", "")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestPistonExecuteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewPistonClient(server.URL, 20*time.Millisecond)

	_, err := client.Execute(context.Background(), "python", "print(1)", "")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("a timeout must surface as a transport failure, got %v", err)
	}
}

func TestPistonRuntimes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/runtimes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]Runtime{
			{Language: "python", Version: "3.12.0"},
			{Language: "go", Version: "1.22.0"},
		})
	}))
	defer server.Close()

	client := NewPistonClient(server.URL, 5*time.Second)

	runtimes, err := client.Runtimes(context.Background())
	if err != nil {
		t.Fatalf("Runtimes returned error: %v", err)
	}
	if len(runtimes) != 2 || runtimes[0].Language != "python" {
		t.Errorf("unexpected runtimes: %+v", runtimes)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	if got := NormalizeLanguage("  PyThon "); got != "python" {
		t.Errorf("NormalizeLanguage = %q", got)
	}
}
