package progress

import (
	"context"
	"fmt"
	"time"

	"codearena/internal/models"
	"codearena/internal/repositories"
)

// Per-difficulty score weights, applied uniformly to profile stats, rank and
// the leaderboard.
const (
	easyPoints   = 10
	mediumPoints = 20
	hardPoints   = 30
)

const heatmapDays = 90

func DifficultyWeight(difficulty string) int {
	switch difficulty {
	case models.DifficultyEasy:
		return easyPoints
	case models.DifficultyMedium:
		return mediumPoints
	case models.DifficultyHard:
		return hardPoints
	default:
		return 0
	}
}

func ScoreFor(easy, medium, hard int) int {
	return easy*easyPoints + medium*mediumPoints + hard*hardPoints
}

// dateOf collapses a timestamp to its UTC calendar date. All streak and
// heatmap arithmetic happens on these normalized dates.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Streak returns the number of consecutive days with at least one solve,
// ending today. A streak must include today: a user who solved yesterday but
// not today has a streak of 0.
func Streak(solveTimes []time.Time, now time.Time) int {
	days := make(map[time.Time]bool, len(solveTimes))
	for _, t := range solveTimes {
		days[dateOf(t)] = true
	}

	streak := 0
	cursor := dateOf(now)
	for days[cursor] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// Heatmap returns solve counts for the last 90 calendar days including
// today, oldest first. Days without solves are explicit zero entries.
func Heatmap(solveTimes []time.Time, now time.Time) []models.HeatmapDay {
	counts := make(map[time.Time]int, len(solveTimes))
	for _, t := range solveTimes {
		counts[dateOf(t)]++
	}

	today := dateOf(now)
	heatmap := make([]models.HeatmapDay, 0, heatmapDays)
	for i := heatmapDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		heatmap = append(heatmap, models.HeatmapDay{
			Date:  day.Format("2006-01-02"),
			Count: counts[day],
		})
	}
	return heatmap
}

// Achievements evaluates the fixed predicate list against current
// aggregates. Each entry is stateless; nothing is persisted.
func Achievements(solved, score, streak, companies int) []models.Achievement {
	return []models.Achievement{
		{Name: "First Solve", Unlocked: solved >= 1},
		{Name: "Problem Solver", Unlocked: solved >= 10},
		{Name: "Code Warrior", Unlocked: solved >= 50},
		{Name: "Algorithm Master", Unlocked: solved >= 100},
		{Name: "Rising Star", Unlocked: score >= 100},
		{Name: "Week Streak", Unlocked: streak >= 7},
		{Name: "Company Explorer", Unlocked: companies >= 3},
	}
}

// Rank is 1 plus the number of users with a strictly greater score, so tied
// users share a rank.
func Rank(score int, all []models.UserSolveCounts) int {
	rank := 1
	for _, u := range all {
		if ScoreFor(u.Easy, u.Medium, u.Hard) > score {
			rank++
		}
	}
	return rank
}

// Clock supplies the reference "now" so streak and heatmap logic is testable
// without wall-clock coupling.
type Clock func() time.Time

// Aggregator derives per-user progress from persisted solved facts.
type Aggregator struct {
	repo repositories.ProgressRepository
	now  Clock
}

func NewAggregator(repo repositories.ProgressRepository, now Clock) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{repo: repo, now: now}
}

func (a *Aggregator) UserProgress(ctx context.Context, userID int) (*models.UserProgress, error) {
	facts, err := a.repo.SolvedFacts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate progress: %w", err)
	}

	var easy, medium, hard int
	solveTimes := make([]time.Time, 0, len(facts))
	solvedByCompany := make(map[int]int)

	for _, f := range facts {
		switch f.Difficulty {
		case models.DifficultyEasy:
			easy++
		case models.DifficultyMedium:
			medium++
		case models.DifficultyHard:
			hard++
		}
		solveTimes = append(solveTimes, f.SolvedAt)
		if f.CompanyID != nil {
			solvedByCompany[*f.CompanyID]++
		}
	}

	now := a.now()
	score := ScoreFor(easy, medium, hard)
	streak := Streak(solveTimes, now)

	totals, err := a.repo.CompanyTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate progress: %w", err)
	}

	companyProgress := make([]models.CompanyProgress, 0, len(totals))
	for _, t := range totals {
		companyProgress = append(companyProgress, models.CompanyProgress{
			CompanyID: t.CompanyID,
			Name:      t.Name,
			Solved:    solvedByCompany[t.CompanyID],
			Total:     t.Total,
		})
	}

	allCounts, err := a.repo.AllUserCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate progress: %w", err)
	}

	return &models.UserProgress{
		Solved:          len(facts),
		Score:           score,
		Easy:            easy,
		Medium:          medium,
		Hard:            hard,
		Streak:          streak,
		Rank:            Rank(score, allCounts),
		CompanyProgress: companyProgress,
		Heatmap:         Heatmap(solveTimes, now),
		Achievements:    Achievements(len(facts), score, streak, len(solvedByCompany)),
	}, nil
}
