package repositories

import (
	"context"
	"fmt"

	"codearena/internal/judge"
	"codearena/internal/logger"
	"codearena/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type SubmissionRepository interface {
	Record(ctx context.Context, userID, problemID int, language, code string, verdict *judge.Verdict) error
	SubmissionsByUserAndProblem(ctx context.Context, userID, problemID int) ([]models.SubmissionListItem, error)
	SubmissionsByUser(ctx context.Context, userID int) ([]models.SubmissionListItem, error)
}

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Record appends one submission row for the attempt and, on a full pass,
// inserts the solved-fact. The solved insert is INSERT IGNORE against a
// UNIQUE (user_id, problem_id) key: the first accepted submission wins, a
// re-accept is a no-op, and two concurrent first-accepts still produce
// exactly one row.
func (r *submissionRepository) Record(ctx context.Context, userID, problemID int, language, code string, verdict *judge.Verdict) error {
	query := `INSERT INTO submissions (user_id, problem_id, language, passed)
              VALUES (?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, userID, problemID, language, verdict.Success); err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}

	if !verdict.Success {
		return nil
	}

	solvedQuery := `INSERT IGNORE INTO solved (user_id, problem_id, language, code)
                    VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, solvedQuery, userID, problemID, language, code)
	if err != nil {
		return fmt.Errorf("failed to record solved fact: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		logger.Log.Debug("Problem already solved, keeping first success",
			zap.Int("user_id", userID),
			zap.Int("problem_id", problemID))
	}

	return nil
}

func (r *submissionRepository) SubmissionsByUserAndProblem(ctx context.Context, userID, problemID int) ([]models.SubmissionListItem, error) {
	query := `SELECT id, problem_id, language, passed, submitted_at
              FROM submissions
              WHERE user_id = ? AND problem_id = ?
              ORDER BY submitted_at DESC`

	var submissions []models.SubmissionListItem
	if err := r.db.SelectContext(ctx, &submissions, query, userID, problemID); err != nil {
		return nil, fmt.Errorf("failed to get user submissions: %w", err)
	}

	return submissions, nil
}

func (r *submissionRepository) SubmissionsByUser(ctx context.Context, userID int) ([]models.SubmissionListItem, error) {
	query := `SELECT id, problem_id, language, passed, submitted_at
              FROM submissions
              WHERE user_id = ?
              ORDER BY submitted_at DESC`

	var submissions []models.SubmissionListItem
	if err := r.db.SelectContext(ctx, &submissions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user submissions: %w", err)
	}

	return submissions, nil
}
