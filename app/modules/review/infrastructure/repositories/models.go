package reviewdb

import "github.com/uptrace/bun"

// Category groups leaderboards by name.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull,unique"`
}

// Leaderboard is a named ranking instance.
type Leaderboard struct {
	bun.BaseModel `bun:"table:leaderboards,alias:lb"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull,unique"`
}

// Review is a stored row of the reviews table. One row per
// (category, leaderboard, player).
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	CategoryID    int64 `bun:"category_id,pk"`
	LeaderboardID int64 `bun:"leaderboard_id,pk"`
	PlayerSteamID int64 `bun:"player_steam_id,pk"`
	Score         int32 `bun:"score,notnull"`
	IsLegal       bool  `bun:"is_legal,notnull"`
}
