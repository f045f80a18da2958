package models

import (
	"errors"
	"strings"
	"time"
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

type ProblemListItem struct {
	ID         int    `db:"id" json:"id"`
	Title      string `db:"title" json:"title"`
	Difficulty string `db:"difficulty" json:"difficulty"`
	IsSolved   bool   `db:"is_solved" json:"is_solved"`
}

type ProblemDetail struct {
	ID                  int        `db:"id" json:"id"`
	Title               string     `db:"title" json:"title"`
	Description         string     `db:"description" json:"description"`
	Difficulty          string     `db:"difficulty" json:"difficulty"`
	FunctionSignature   string     `db:"function_signature" json:"function_signature"`
	CompanyID           *int       `db:"company_id" json:"company_id,omitempty"`
	CompanyName         *string    `db:"company_name" json:"company_name,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	PublicTestCases     []TestCase `json:"public_test_cases"`
	IsSolved            bool       `json:"is_solved"`
	TotalSubmissions    int        `json:"total_submissions"`
	AcceptedSubmissions int        `json:"accepted_submissions"`
	AcceptanceRate      float64    `json:"acceptance_rate"`
}

type TestCase struct {
	ID             int    `db:"id" json:"id"`
	ProblemID      int    `db:"problem_id" json:"problem_id"`
	Input          string `db:"input" json:"input"`
	ExpectedOutput string `db:"expected_output" json:"expected_output"`
	IsPublic       bool   `db:"is_public" json:"is_public"`
	OrderIndex     int    `db:"order_index" json:"order_index"`
}

type Company struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	LogoURL     *string   `db:"logo_url" json:"logo_url,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateProblemRequest struct {
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description" binding:"required"`
	Difficulty        string `json:"difficulty" binding:"required"`
	FunctionSignature string `json:"function_signature"`
	CompanyID         *int   `json:"company_id,omitempty"`
}

func (r *CreateProblemRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description cannot be empty")
	}
	switch r.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return errors.New("difficulty must be one of Easy, Medium, Hard")
	}
	return nil
}

type CreateTestCaseRequest struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output" binding:"required"`
	IsPublic       bool   `json:"is_public"`
	OrderIndex     int    `json:"order_index"`
}

func (r *CreateTestCaseRequest) Validate() error {
	if strings.TrimSpace(r.ExpectedOutput) == "" {
		return errors.New("expected output cannot be empty")
	}
	if r.OrderIndex < 0 {
		return errors.New("order index must not be negative")
	}
	return nil
}
