package progress

import (
	"context"
	"fmt"
	"sort"
	"time"

	"codearena/internal/models"
	"codearena/internal/repositories"
	"codearena/internal/services"
)

const leaderboardCacheKey = "leaderboard:global"
const leaderboardCacheTTL = 30 * time.Second

// RankEntries sorts users by score descending (tie-break: solved count
// descending, then user id ascending) and assigns competition ranks: an
// exact score tie reuses the previous rank, the next distinct score resumes
// at position + 1.
func RankEntries(counts []models.UserSolveCounts) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(counts))
	for _, u := range counts {
		entries = append(entries, models.LeaderboardEntry{
			UserID:   u.UserID,
			Username: u.Username,
			Solved:   u.Solved,
			Score:    ScoreFor(u.Easy, u.Medium, u.Hard),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Solved != entries[j].Solved {
			return entries[i].Solved > entries[j].Solved
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}

	return entries
}

// Leaderboard produces the global ordering, with a short-lived redis
// snapshot so the all-users aggregation is not recomputed on every request.
type Leaderboard struct {
	repo  repositories.ProgressRepository
	cache services.Cache
}

func NewLeaderboard(repo repositories.ProgressRepository, cache services.Cache) *Leaderboard {
	return &Leaderboard{repo: repo, cache: cache}
}

func (l *Leaderboard) Global(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var cached []models.LeaderboardEntry
	if err := l.cache.Get(ctx, leaderboardCacheKey, &cached); err == nil {
		return cached, nil // Cache hit
	}

	counts, err := l.repo.AllUserCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}

	entries := RankEntries(counts)
	_ = l.cache.Set(ctx, leaderboardCacheKey, entries, leaderboardCacheTTL)

	return entries, nil
}

func (l *Leaderboard) PositionFor(ctx context.Context, userID int) (int, error) {
	entries, err := l.Global(ctx)
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		if e.UserID == userID {
			return e.Rank, nil
		}
	}

	return 0, fmt.Errorf("user not found in leaderboard: %d", userID)
}
