package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"codearena/internal/logger"

	"go.uber.org/zap"
)

// PistonClient talks to a Piston-compatible execution API
// (https://emkc.org/api/v2/piston or a self-hosted instance).
type PistonClient struct {
	baseURL string
	client  *http.Client
}

func NewPistonClient(baseURL string, timeout time.Duration) *PistonClient {
	return &PistonClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type pistonFile struct {
	Content string `json:"content"`
}

type pistonRequest struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Files    []pistonFile `json:"files"`
	Stdin    string       `json:"stdin"`
}

type pistonRun struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Code   int    `json:"code"`
}

type pistonResponse struct {
	Run pistonRun `json:"run"`
}

// Runtime is one language runtime advertised by the remote service.
type Runtime struct {
	Language string   `json:"language"`
	Version  string   `json:"version"`
	Aliases  []string `json:"aliases"`
}

func NormalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

func (p *PistonClient) Execute(ctx context.Context, language, code, stdin string) (*Result, error) {
	language = NormalizeLanguage(language)
	if !SupportedLanguage(language) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	payload := pistonRequest{
		Language: language,
		Version:  "*",
		Files:    []pistonFile{{Content: code}},
		Stdin:    stdin,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode execution request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build execution request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Log.Error("Execution service call failed",
			zap.String("language", language),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Log.Error("Execution service returned error status",
			zap.String("language", language),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}

	var decoded pistonResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: invalid response body: %v", ErrTransport, err)
	}

	return &Result{
		Stdout:   decoded.Run.Stdout,
		Stderr:   decoded.Run.Stderr,
		ExitCode: decoded.Run.Code,
	}, nil
}

// Runtimes lists the runtimes available on the remote service.
func (p *PistonClient) Runtimes(ctx context.Context) ([]Runtime, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/runtimes", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build runtimes request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}

	var runtimes []Runtime
	if err := json.NewDecoder(resp.Body).Decode(&runtimes); err != nil {
		return nil, fmt.Errorf("%w: invalid response body: %v", ErrTransport, err)
	}

	return runtimes, nil
}
