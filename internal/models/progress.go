package models

type UserProgress struct {
	Solved          int               `json:"solved"`
	Score           int               `json:"score"`
	Easy            int               `json:"easy"`
	Medium          int               `json:"medium"`
	Hard            int               `json:"hard"`
	Streak          int               `json:"streak"`
	Rank            int               `json:"rank"`
	CompanyProgress []CompanyProgress `json:"company_progress"`
	Heatmap         []HeatmapDay      `json:"heatmap"`
	Achievements    []Achievement     `json:"achievements"`
}

type CompanyProgress struct {
	CompanyID int    `json:"company_id"`
	Name      string `json:"name"`
	Solved    int    `json:"solved"`
	Total     int    `json:"total"`
}

// HeatmapDay is one calendar day of solve activity. Days without solves are
// present with a zero count.
type HeatmapDay struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type Achievement struct {
	Name     string `json:"name"`
	Unlocked bool   `json:"unlocked"`
}

// UserSolveCounts is the per-user aggregation the leaderboard and rank
// computations are built from.
type UserSolveCounts struct {
	UserID   int    `db:"user_id" json:"user_id"`
	Username string `db:"username" json:"username"`
	Solved   int    `db:"solved" json:"solved"`
	Easy     int    `db:"easy" json:"-"`
	Medium   int    `db:"medium" json:"-"`
	Hard     int    `db:"hard" json:"-"`
}

type LeaderboardEntry struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Solved   int    `json:"solved"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

// CompanyTotal is the number of problems a company owns, used to compute
// per-company progress.
type CompanyTotal struct {
	CompanyID int    `db:"company_id"`
	Name      string `db:"name"`
	Total     int    `db:"total"`
}
