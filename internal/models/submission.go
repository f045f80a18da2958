package models

import (
	"errors"
	"strings"
	"time"
)

type Submission struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	ProblemID   int       `db:"problem_id" json:"problem_id"`
	Language    string    `db:"language" json:"language"`
	Passed      bool      `db:"passed" json:"passed"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

// SolvedFact is one row of the solved table joined with problem metadata.
// At most one exists per (user, problem); the first accepted submission wins.
type SolvedFact struct {
	ProblemID  int       `db:"problem_id"`
	Difficulty string    `db:"difficulty"`
	CompanyID  *int      `db:"company_id"`
	SolvedAt   time.Time `db:"solved_at"`
}

type SubmitRequest struct {
	ProblemID  int    `json:"problem_id" binding:"required"`
	Language   string `json:"language" binding:"required"`
	SourceCode string `json:"source_code" binding:"required"`
}

func (r *SubmitRequest) ValidateRequest() error {

	if r.ProblemID <= 0 {
		return errors.New("problem ID must be a positive integer")
	}

	if strings.TrimSpace(r.Language) == "" {
		return errors.New("language cannot be empty")
	}

	if strings.TrimSpace(r.SourceCode) == "" {
		return errors.New("source code cannot be empty")
	}

	return nil
}

type SubmissionListItem struct {
	ID          int       `db:"id" json:"id"`
	ProblemID   int       `db:"problem_id" json:"problem_id"`
	Language    string    `db:"language" json:"language"`
	Passed      bool      `db:"passed" json:"passed"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
	// Derived field filled in by the handler
	FormattedTime string `db:"-" json:"submitted_time"`
}

type RunRequest struct {
	Language   string `json:"language" binding:"required"`
	SourceCode string `json:"source_code" binding:"required"`
	Input      string `json:"input"`
}

func (r *RunRequest) ValidateRequest() error {
	if strings.TrimSpace(r.Language) == "" {
		return errors.New("language cannot be empty")
	}
	if strings.TrimSpace(r.SourceCode) == "" {
		return errors.New("source code cannot be empty")
	}
	return nil
}
