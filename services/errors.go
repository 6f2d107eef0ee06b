package services

import "errors"

// Shared errors used across services and the HTTP mapping. The message texts
// of the domain errors are part of the API contract and surface verbatim in
// error responses.
var (
	// Domain conflicts
	ErrPlayerExists = errors.New("Player with such name or email already exists")
	ErrGameFull     = errors.New("The game already has the maximum number of players (5).")
	ErrPlayerInGame = errors.New("Player already in game")

	// Referenced entities missing
	ErrPlayerNotFound = errors.New("The player with this id does not exist.")
	ErrGameNotFound   = errors.New("The game with this id does not exist.")

	// Authentication
	ErrInvalidCredentials = errors.New("Bad username or password")
)
