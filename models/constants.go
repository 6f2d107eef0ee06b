package models

const (
	// PlayerFieldMaxLength bounds both player name and email.
	PlayerFieldMaxLength = 54

	GameNameMaxLength = 254

	// MaxPlayersInGame caps the number of distinct players attached to one game.
	MaxPlayersInGame = 5
)
