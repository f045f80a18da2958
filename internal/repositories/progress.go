package repositories

import (
	"context"
	"fmt"

	"codearena/internal/models"

	"github.com/jmoiron/sqlx"
)

type ProgressRepository interface {
	SolvedFacts(ctx context.Context, userID int) ([]models.SolvedFact, error)
	AllUserCounts(ctx context.Context) ([]models.UserSolveCounts, error)
	CompanyTotals(ctx context.Context) ([]models.CompanyTotal, error)
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// SolvedFacts returns one row per solved problem with the joined problem
// metadata the aggregator needs: difficulty for scoring, company for the
// company achievements, solved_at for streak and heatmap.
func (r *progressRepository) SolvedFacts(ctx context.Context, userID int) ([]models.SolvedFact, error) {
	query := `SELECT s.problem_id, p.difficulty, p.company_id, s.solved_at
              FROM solved s
              JOIN problems p ON p.id = s.problem_id
              WHERE s.user_id = ?
              ORDER BY s.solved_at DESC`

	var facts []models.SolvedFact
	if err := r.db.SelectContext(ctx, &facts, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get solved facts: %w", err)
	}

	return facts, nil
}

// AllUserCounts returns per-user solve counts broken down by difficulty,
// including users with no solves. Scores and ranks are derived in Go so the
// weighting lives in exactly one place.
func (r *progressRepository) AllUserCounts(ctx context.Context) ([]models.UserSolveCounts, error) {
	query := `SELECT u.id AS user_id, u.username,
                     COUNT(s.user_id) AS solved,
                     COUNT(CASE WHEN p.difficulty = 'Easy' THEN 1 END) AS easy,
                     COUNT(CASE WHEN p.difficulty = 'Medium' THEN 1 END) AS medium,
                     COUNT(CASE WHEN p.difficulty = 'Hard' THEN 1 END) AS hard
              FROM users u
              LEFT JOIN solved s ON s.user_id = u.id
              LEFT JOIN problems p ON p.id = s.problem_id
              GROUP BY u.id, u.username`

	var counts []models.UserSolveCounts
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to get user solve counts: %w", err)
	}

	return counts, nil
}

func (r *progressRepository) CompanyTotals(ctx context.Context) ([]models.CompanyTotal, error) {
	query := `SELECT c.id AS company_id, c.name, COUNT(p.id) AS total
              FROM companies c
              LEFT JOIN problems p ON p.company_id = c.id
              GROUP BY c.id, c.name
              ORDER BY c.name`

	var totals []models.CompanyTotal
	if err := r.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("failed to get company totals: %w", err)
	}

	return totals, nil
}
