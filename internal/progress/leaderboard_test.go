package progress

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"codearena/internal/models"
)

func TestRankEntriesDenseWithTies(t *testing.T) {
	counts := []models.UserSolveCounts{
		{UserID: 4, Username: "dora", Solved: 10, Easy: 10},   // 100
		{UserID: 1, Username: "alice", Solved: 30, Easy: 30},  // 300
		{UserID: 3, Username: "carol", Solved: 20, Easy: 20},  // 200
		{UserID: 2, Username: "bob", Solved: 30, Easy: 30},    // 300
	}

	entries := RankEntries(counts)

	wantScores := []int{300, 300, 200, 100}
	wantRanks := []int{1, 1, 3, 4}
	for i := range entries {
		if entries[i].Score != wantScores[i] {
			t.Errorf("entry %d: score %d, want %d", i, entries[i].Score, wantScores[i])
		}
		if entries[i].Rank != wantRanks[i] {
			t.Errorf("entry %d: rank %d, want %d", i, entries[i].Rank, wantRanks[i])
		}
	}
}

func TestRankEntriesTieBreaks(t *testing.T) {
	counts := []models.UserSolveCounts{
		// Same score, fewer solves: loses the tie-break but shares the rank
		{UserID: 2, Username: "bob", Solved: 1, Hard: 1},                // 30
		{UserID: 1, Username: "alice", Solved: 3, Easy: 3},              // 30
		{UserID: 3, Username: "carol", Solved: 3, Easy: 3},              // 30
	}

	entries := RankEntries(counts)

	if entries[0].UserID != 1 || entries[1].UserID != 3 || entries[2].UserID != 2 {
		t.Fatalf("unexpected order: %+v", entries)
	}
	for i, e := range entries {
		if e.Rank != 1 {
			t.Errorf("entry %d: tied score must share rank 1, got %d", i, e.Rank)
		}
	}
}

func TestRankEntriesEmpty(t *testing.T) {
	if entries := RankEntries(nil); len(entries) != 0 {
		t.Errorf("expected empty leaderboard, got %+v", entries)
	}
}

// memCache is an in-memory stand-in for the redis cache.
type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	val, ok := m.data[key]
	if !ok {
		return context.Canceled // any non-nil error means miss
	}
	return json.Unmarshal(val, dest)
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestLeaderboardGlobalAndPosition(t *testing.T) {
	repo := &fakeProgressRepo{
		counts: []models.UserSolveCounts{
			{UserID: 1, Username: "alice", Solved: 2, Easy: 1, Hard: 1}, // 40
			{UserID: 2, Username: "bob", Solved: 1, Medium: 1},          // 20
		},
	}
	cache := newMemCache()
	leaderboard := NewLeaderboard(repo, cache)

	entries, err := leaderboard.Global(context.Background())
	if err != nil {
		t.Fatalf("Global returned error: %v", err)
	}
	if len(entries) != 2 || entries[0].Username != "alice" || entries[0].Rank != 1 {
		t.Fatalf("unexpected leaderboard: %+v", entries)
	}

	pos, err := leaderboard.PositionFor(context.Background(), 2)
	if err != nil {
		t.Fatalf("PositionFor returned error: %v", err)
	}
	if pos != 2 {
		t.Errorf("expected position 2, got %d", pos)
	}

	if _, err := leaderboard.PositionFor(context.Background(), 99); err == nil {
		t.Error("expected error for unknown user")
	}

	// Second call is served from the cache snapshot
	repo.counts = nil
	cached, err := leaderboard.Global(context.Background())
	if err != nil {
		t.Fatalf("cached Global returned error: %v", err)
	}
	if len(cached) != 2 {
		t.Errorf("expected cached snapshot, got %+v", cached)
	}
}
