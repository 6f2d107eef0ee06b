package models

// Membership links one player to one game. The (player_id, game_id) pair is
// unique; deleting either side cascades.
type Membership struct {
	ID       int `json:"id"`
	PlayerID int `json:"player_id"`
	GameID   int `json:"game_id"`
}
