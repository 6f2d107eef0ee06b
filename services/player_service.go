package services

import (
	"context"
	"fmt"

	"github.com/gameroster/roster-system/models"
	"github.com/gameroster/roster-system/repositories"
)

type PlayerService interface {
	CreateInstance(ctx context.Context, name, email string) (*models.Player, error)
	CheckInstanceExists(ctx context.Context, id int) (bool, error)
	CheckPlayerData(ctx context.Context, name, email string) (bool, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

// CreateInstance persists a new player. The underlying insert is a single
// atomic statement; a storage-level uniqueness violation (lost race with a
// concurrent registration) maps to ErrPlayerExists.
func (s *playerService) CreateInstance(ctx context.Context, name, email string) (*models.Player, error) {
	player := &models.Player{
		Name:  name,
		Email: email,
	}

	err := s.playerRepo.Create(ctx, player)
	if err != nil {
		switch err {
		case repositories.ErrPlayerNameConflict, repositories.ErrPlayerEmailConflict:
			return nil, ErrPlayerExists
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) CheckInstanceExists(ctx context.Context, id int) (bool, error) {
	return s.playerRepo.ExistsByID(ctx, id)
}

// CheckPlayerData reports whether a player already exists with the given name
// OR the given email. Either collision blocks registration.
func (s *playerService) CheckPlayerData(ctx context.Context, name, email string) (bool, error) {
	return s.playerRepo.ExistsByNameOrEmail(ctx, name, email)
}
