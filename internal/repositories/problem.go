package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"codearena/internal/models"

	"github.com/jmoiron/sqlx"
)

type ProblemRepository interface {
	GetProblems(ctx context.Context, userID int) ([]models.ProblemListItem, error)
	GetProblemByID(ctx context.Context, problemID int) (*models.ProblemDetail, error)
	CreateProblem(ctx context.Context, req *models.CreateProblemRequest) (int, error)
	GetCompanies(ctx context.Context) ([]models.Company, error)
	GetCompanyProblems(ctx context.Context, companyID, userID int) ([]models.ProblemListItem, error)
	RecommendedProblems(ctx context.Context, userID, limit int) ([]models.ProblemListItem, error)
	GetSolvedProblemIDs(ctx context.Context, userID int) (map[int]bool, error)
}

type problemRepository struct {
	db *sqlx.DB
}

func NewProblemRepository(db *sqlx.DB) ProblemRepository {
	return &problemRepository{db: db}
}

// GetProblems lists all problems. When userID is non-zero each row carries
// whether that user has solved it.
func (r *problemRepository) GetProblems(ctx context.Context, userID int) ([]models.ProblemListItem, error) {
	query := `SELECT p.id, p.title, p.difficulty,
                     CASE WHEN s.id IS NOT NULL THEN 1 ELSE 0 END AS is_solved
              FROM problems p
              LEFT JOIN solved s ON p.id = s.problem_id AND s.user_id = ?
              ORDER BY p.difficulty, p.title`

	var problems []models.ProblemListItem
	if err := r.db.SelectContext(ctx, &problems, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get problems: %w", err)
	}

	return problems, nil
}

func (r *problemRepository) GetProblemByID(ctx context.Context, problemID int) (*models.ProblemDetail, error) {
	query := `SELECT p.id, p.title, p.description, p.difficulty, p.function_signature,
                     p.company_id, c.name AS company_name, p.created_at
              FROM problems p
              LEFT JOIN companies c ON p.company_id = c.id
              WHERE p.id = ?`

	var problem models.ProblemDetail
	if err := r.db.GetContext(ctx, &problem, query, problemID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("problem not found: %d", problemID)
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	// Get submission stats
	statsQuery := `
        SELECT
            COUNT(*) as total_submissions,
            COUNT(CASE WHEN passed = 1 THEN 1 END) as accepted_submissions
        FROM submissions
        WHERE problem_id = ?`

	var stats struct {
		TotalSubmissions    int `db:"total_submissions"`
		AcceptedSubmissions int `db:"accepted_submissions"`
	}
	if err := r.db.GetContext(ctx, &stats, statsQuery, problemID); err != nil {
		return nil, fmt.Errorf("failed to get submission stats: %w", err)
	}

	problem.TotalSubmissions = stats.TotalSubmissions
	problem.AcceptedSubmissions = stats.AcceptedSubmissions
	if stats.TotalSubmissions > 0 {
		problem.AcceptanceRate = (float64(stats.AcceptedSubmissions) / float64(stats.TotalSubmissions)) * 100
	} else {
		problem.AcceptanceRate = 0
	}

	return &problem, nil
}

func (r *problemRepository) CreateProblem(ctx context.Context, req *models.CreateProblemRequest) (int, error) {
	query := `INSERT INTO problems (title, description, difficulty, function_signature, company_id)
              VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		req.Title, req.Description, req.Difficulty, req.FunctionSignature, req.CompanyID)
	if err != nil {
		return 0, fmt.Errorf("failed to create problem: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return int(id), nil
}

func (r *problemRepository) GetCompanies(ctx context.Context) ([]models.Company, error) {
	query := `SELECT id, name, logo_url, description, created_at FROM companies ORDER BY name`

	var companies []models.Company
	if err := r.db.SelectContext(ctx, &companies, query); err != nil {
		return nil, fmt.Errorf("failed to get companies: %w", err)
	}

	return companies, nil
}

func (r *problemRepository) GetCompanyProblems(ctx context.Context, companyID, userID int) ([]models.ProblemListItem, error) {
	query := `SELECT p.id, p.title, p.difficulty,
                     CASE WHEN s.id IS NOT NULL THEN 1 ELSE 0 END AS is_solved
              FROM problems p
              LEFT JOIN solved s ON p.id = s.problem_id AND s.user_id = ?
              WHERE p.company_id = ?
              ORDER BY p.title`

	var problems []models.ProblemListItem
	if err := r.db.SelectContext(ctx, &problems, query, userID, companyID); err != nil {
		return nil, fmt.Errorf("failed to get company problems: %w", err)
	}

	return problems, nil
}

// RecommendedProblems samples problems the user has not solved yet.
func (r *problemRepository) RecommendedProblems(ctx context.Context, userID, limit int) ([]models.ProblemListItem, error) {
	query := `SELECT p.id, p.title, p.difficulty, 0 AS is_solved
              FROM problems p
              WHERE p.id NOT IN (SELECT problem_id FROM solved WHERE user_id = ?)
              ORDER BY RAND()
              LIMIT ?`

	var problems []models.ProblemListItem
	if err := r.db.SelectContext(ctx, &problems, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to get recommended problems: %w", err)
	}

	return problems, nil
}

func (r *problemRepository) GetSolvedProblemIDs(ctx context.Context, userID int) (map[int]bool, error) {
	query := `SELECT problem_id FROM solved WHERE user_id = ?`

	var problemIDs []int
	if err := r.db.SelectContext(ctx, &problemIDs, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get solved problem IDs: %w", err)
	}

	solvedMap := make(map[int]bool, len(problemIDs))
	for _, id := range problemIDs {
		solvedMap[id] = true
	}

	return solvedMap, nil
}
