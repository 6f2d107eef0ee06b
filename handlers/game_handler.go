package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gameroster/roster-system/models"
	"github.com/gameroster/roster-system/services"
)

type GameHandler struct {
	gameService       services.GameService
	playerService     services.PlayerService
	playerGameService services.PlayerGameService
}

func NewGameHandler(
	gameService services.GameService,
	playerService services.PlayerService,
	playerGameService services.PlayerGameService,
) *GameHandler {
	return &GameHandler{
		gameService:       gameService,
		playerService:     playerService,
		playerGameService: playerGameService,
	}
}

type CreateGameInput struct {
	Name string `json:"name"`
}

// CreateNewGame godoc
// @Summary Create a new game
// @Tags main
// @Description Creates a new game. Game names carry no uniqueness rule.
// @Accept json
// @Produce json
// @Param body body handlers.CreateGameInput true "Game data"
// @Success 200 {object} map[string]interface{} "status, id, success"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Security BearerAuth
// @Router /new_game [post]
func (h *GameHandler) CreateNewGame(w http.ResponseWriter, r *http.Request) {
	var input CreateGameInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if len(input.Name) > models.GameNameMaxLength {
		badRequestResponse(w, r, fmt.Errorf("name length must be less than or equal to %d characters", models.GameNameMaxLength))
		return
	}

	game, err := h.gameService.CreateInstance(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	successResponse(w, r, game.ID)
}

// AddPlayerToGame godoc
// @Summary Add an existing player to an existing game
// @Tags main
// @Description Attaches a player to a game. Fails if either id is unknown, the game already holds 5 players, or the player is already attached.
// @Accept json
// @Produce json
// @Param game_id query int true "Game ID"
// @Param player_id query int true "Player ID"
// @Success 200 {object} map[string]interface{} "status, id (game id), success"
// @Failure 400 {object} map[string]string "One of the fixed domain error messages"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Security BearerAuth
// @Router /add_player_to_game [post]
func (h *GameHandler) AddPlayerToGame(w http.ResponseWriter, r *http.Request) {
	gameID, playerID, err := readAttachParams(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	ctx := r.Context()

	// The guard order is fixed: each check short-circuits with its own
	// message and later checks never run against a failed precondition.
	playerExists, err := h.playerService.CheckInstanceExists(ctx, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !playerExists {
		mapServiceErrorToHTTP(w, r, services.ErrPlayerNotFound)
		return
	}

	gameExists, err := h.gameService.CheckInstanceExists(ctx, gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !gameExists {
		mapServiceErrorToHTTP(w, r, services.ErrGameNotFound)
		return
	}

	full, err := h.playerGameService.CheckGameIsFull(ctx, gameID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if full {
		mapServiceErrorToHTTP(w, r, services.ErrGameFull)
		return
	}

	attached, err := h.playerGameService.CheckInstanceExists(ctx, gameID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if attached {
		mapServiceErrorToHTTP(w, r, services.ErrPlayerInGame)
		return
	}

	if _, err := h.playerGameService.CreateInstance(ctx, gameID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	successResponse(w, r, gameID)
}

// readAttachParams resolves game_id and player_id from the query string,
// falling back to a JSON body when neither query parameter is present.
func readAttachParams(w http.ResponseWriter, r *http.Request) (gameID, playerID int, err error) {
	gameStr := r.URL.Query().Get("game_id")
	playerStr := r.URL.Query().Get("player_id")

	if gameStr == "" && playerStr == "" {
		var input struct {
			GameID   int `json:"game_id"`
			PlayerID int `json:"player_id"`
		}
		if readErr := readJSON(w, r, &input); readErr == nil {
			gameID, playerID = input.GameID, input.PlayerID
		}
	} else {
		gameID, err = strconv.Atoi(gameStr)
		if err != nil {
			return 0, 0, errors.New("game_id must be an integer")
		}
		playerID, err = strconv.Atoi(playerStr)
		if err != nil {
			return 0, 0, errors.New("player_id must be an integer")
		}
	}

	if gameID <= 0 {
		return 0, 0, errors.New("game_id is required and must be positive")
	}
	if playerID <= 0 {
		return 0, 0, errors.New("player_id is required and must be positive")
	}
	return gameID, playerID, nil
}
