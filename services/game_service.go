package services

import (
	"context"
	"fmt"

	"github.com/gameroster/roster-system/models"
	"github.com/gameroster/roster-system/repositories"
)

type GameService interface {
	CreateInstance(ctx context.Context, name string) (*models.Game, error)
	CheckInstanceExists(ctx context.Context, id int) (bool, error)
}

type gameService struct {
	gameRepo repositories.GameRepository
}

func NewGameService(gameRepo repositories.GameRepository) GameService {
	return &gameService{
		gameRepo: gameRepo,
	}
}

func (s *gameService) CreateInstance(ctx context.Context, name string) (*models.Game, error) {
	game := &models.Game{
		Name: name,
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return game, nil
}

func (s *gameService) CheckInstanceExists(ctx context.Context, id int) (bool, error) {
	return s.gameRepo.ExistsByID(ctx, id)
}
