package execution

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedLanguage is returned before any network call when the
	// requested language is not in the allowlist.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrTransport covers network failures, timeouts and non-2xx responses
	// from the remote execution service.
	ErrTransport = errors.New("execution service unavailable")
)

// Result is the outcome of one remote execution of (code, language, stdin).
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Client sends a single program run to a remote execution sandbox. One
// network call per invocation, no state retained between calls.
type Client interface {
	Execute(ctx context.Context, language, code, stdin string) (*Result, error)
}

var supportedLanguages = map[string]bool{
	"python":     true,
	"go":         true,
	"javascript": true,
	"typescript": true,
	"java":       true,
	"c":          true,
	"c++":        true,
	"rust":       true,
}

// SupportedLanguage reports whether the engine will accept a submission in
// the given language. Matching is case-insensitive via NormalizeLanguage.
func SupportedLanguage(language string) bool {
	return supportedLanguages[language]
}
