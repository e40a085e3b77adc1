package domain

// LeaderboardPeriod selects the leaderboard aggregation window
type LeaderboardPeriod string

const (
	LeaderboardMonthly LeaderboardPeriod = "month"
	LeaderboardAllTime LeaderboardPeriod = "all-time"
)

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	TelegramID int64  `json:"telegram_id"`
	Score      int64  `json:"score"`
}

// Leaderboard is a ranked period snapshot
type Leaderboard struct {
	Period   LeaderboardPeriod  `json:"period"`
	Month    int                `json:"month,omitempty"`
	Year     int                `json:"year,omitempty"`
	Entries  []LeaderboardEntry `json:"leaderboard"`
	UserRank *int               `json:"user_rank"`
}
