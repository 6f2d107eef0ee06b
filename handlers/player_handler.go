package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gameroster/roster-system/models"
	"github.com/gameroster/roster-system/services"
	"github.com/gameroster/roster-system/utils"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

type CreatePlayerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateNewPlayer godoc
// @Summary Register a new player
// @Tags main
// @Description Creates a new player. Name and email must be unique across all players.
// @Accept json
// @Produce json
// @Param body body handlers.CreatePlayerInput true "Player data"
// @Success 200 {object} map[string]interface{} "status, id, success"
// @Failure 400 {object} map[string]string "Validation failure or player already exists"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Security BearerAuth
// @Router /new_player [post]
func (h *PlayerHandler) CreateNewPlayer(w http.ResponseWriter, r *http.Request) {
	var input CreatePlayerInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := validateCreatePlayerInput(input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	exists, err := h.playerService.CheckPlayerData(r.Context(), input.Name, input.Email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if exists {
		mapServiceErrorToHTTP(w, r, services.ErrPlayerExists)
		return
	}

	player, err := h.playerService.CreateInstance(r.Context(), input.Name, input.Email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	successResponse(w, r, player.ID)
}

func validateCreatePlayerInput(input CreatePlayerInput) error {
	if input.Name == "" {
		return errors.New("name is required")
	}
	if len(input.Name) > models.PlayerFieldMaxLength {
		return fmt.Errorf("name length must be less than or equal to %d characters", models.PlayerFieldMaxLength)
	}
	if !utils.IsValidPlayerName(input.Name) {
		return errors.New("name must contain only hexadecimal characters")
	}
	if input.Email == "" {
		return errors.New("email is required")
	}
	if len(input.Email) > models.PlayerFieldMaxLength {
		return fmt.Errorf("email length must be less than or equal to %d characters", models.PlayerFieldMaxLength)
	}
	if !utils.IsValidEmail(input.Email) {
		return errors.New("email is not a valid email address")
	}
	return nil
}
