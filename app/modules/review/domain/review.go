package reviewdomain

// Review is one participant's scored entry within a category+leaderboard pair.
// Listings are ordered ascending by PlayerSteamID.
type Review struct {
	PlayerSteamID int64 `json:"player_steam_id"`
	Score         int32 `json:"score"`
	IsLegal       bool  `json:"is_legal"`
}
