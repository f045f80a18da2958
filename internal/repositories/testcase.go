package repositories

import (
	"context"
	"fmt"
	"time"

	"codearena/internal/logger"
	"codearena/internal/models"
	"codearena/internal/services"

	"github.com/jmoiron/sqlx"
)

type TestCaseRepository interface {
	HiddenTestCases(ctx context.Context, problemID int) ([]models.TestCase, error)
	PublicTestCases(ctx context.Context, problemID int) ([]models.TestCase, error)
	AddTestCase(ctx context.Context, tc *models.TestCase) error
}

type testCaseRepository struct {
	db    *sqlx.DB
	cache services.Cache
}

func NewTestCaseRepository(db *sqlx.DB, cache services.Cache) TestCaseRepository {
	return &testCaseRepository{db: db, cache: cache}
}

// HiddenTestCases returns the hidden cases for a problem ordered by
// order_index ascending. An empty result is returned as-is; the grading
// engine decides what to do with it.
func (r *testCaseRepository) HiddenTestCases(ctx context.Context, problemID int) ([]models.TestCase, error) {
	cacheKey := fmt.Sprintf("problem:%d:hidden_testcases", problemID)
	var cached []models.TestCase

	if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil // Cache hit
	}

	query := `SELECT id, problem_id, input, expected_output, is_public, order_index
              FROM test_cases
              WHERE problem_id = ? AND is_public = 0
              ORDER BY order_index ASC`

	var testCases []models.TestCase
	if err := r.db.SelectContext(ctx, &testCases, query, problemID); err != nil {
		return nil, fmt.Errorf("failed to get hidden test cases: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, testCases, 1*time.Hour); err != nil {
		logger.Log.Warn("Failed to cache hidden test cases")
	}

	return testCases, nil
}

func (r *testCaseRepository) PublicTestCases(ctx context.Context, problemID int) ([]models.TestCase, error) {
	query := `SELECT id, problem_id, input, expected_output, is_public, order_index
              FROM test_cases
              WHERE problem_id = ? AND is_public = 1
              ORDER BY order_index ASC`

	var testCases []models.TestCase
	if err := r.db.SelectContext(ctx, &testCases, query, problemID); err != nil {
		return nil, fmt.Errorf("failed to get public test cases: %w", err)
	}

	return testCases, nil
}

func (r *testCaseRepository) AddTestCase(ctx context.Context, tc *models.TestCase) error {
	query := `INSERT INTO test_cases (problem_id, input, expected_output, is_public, order_index)
              VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		tc.ProblemID, tc.Input, tc.ExpectedOutput, tc.IsPublic, tc.OrderIndex)
	if err != nil {
		return fmt.Errorf("failed to add test case: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	tc.ID = int(id)

	// Hidden test cases are cached per problem; drop the entry so grading
	// picks up the new case.
	cacheKey := fmt.Sprintf("problem:%d:hidden_testcases", tc.ProblemID)
	_ = r.cache.Delete(ctx, cacheKey)

	return nil
}
