package models

import "time"

// GameScore is a persisted score record. Records are immutable once created.
type GameScore struct {
	ID         int64     `json:"id"`
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	GameMode   string    `json:"gameMode"`
	CreatedAt  time.Time `json:"createdAt"`
}

// GameScoreDraft is a score submission before the store assigns id and
// created_at.
type GameScoreDraft struct {
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	GameMode   string `json:"gameMode"`
}

// LeaderboardFilter selects which records a leaderboard query returns.
// An empty GameMode includes all modes.
type LeaderboardFilter struct {
	GameMode string
	Limit    int
}

// User exists for future account support. No endpoint consumes it yet;
// players are identified by the free-text name they type.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
