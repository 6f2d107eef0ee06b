package services

import (
	"context"
	"fmt"

	"github.com/gameroster/roster-system/models"
	"github.com/gameroster/roster-system/repositories"
)

type PlayerGameService interface {
	CreateInstance(ctx context.Context, gameID, playerID int) (*models.Membership, error)
	CheckInstanceExists(ctx context.Context, gameID, playerID int) (bool, error)
	CheckGameIsFull(ctx context.Context, gameID int) (bool, error)
}

type playerGameService struct {
	membershipRepo repositories.MembershipRepository
}

func NewPlayerGameService(membershipRepo repositories.MembershipRepository) PlayerGameService {
	return &playerGameService{
		membershipRepo: membershipRepo,
	}
}

// CreateInstance attaches a player to a game. The pair index catches a
// duplicate attach that slipped past the handler's pre-check.
func (s *playerGameService) CreateInstance(ctx context.Context, gameID, playerID int) (*models.Membership, error) {
	membership := &models.Membership{
		PlayerID: playerID,
		GameID:   gameID,
	}

	err := s.membershipRepo.Create(ctx, membership)
	if err != nil {
		switch err {
		case repositories.ErrMembershipConflict:
			return nil, ErrPlayerInGame
		case repositories.ErrMembershipPlayerInvalid:
			return nil, ErrPlayerNotFound
		case repositories.ErrMembershipGameInvalid:
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}
	return membership, nil
}

func (s *playerGameService) CheckInstanceExists(ctx context.Context, gameID, playerID int) (bool, error) {
	return s.membershipRepo.ExistsByGameAndPlayer(ctx, gameID, playerID)
}

// CheckGameIsFull reports whether the game already holds the maximum number
// of players. The check and the subsequent insert are not one transaction:
// two concurrent attaches can both pass and transiently exceed the cap. A
// stricter setup would re-check inside a serializable transaction or enforce
// the cap with a storage trigger.
func (s *playerGameService) CheckGameIsFull(ctx context.Context, gameID int) (bool, error) {
	count, err := s.membershipRepo.CountByGame(ctx, gameID)
	if err != nil {
		return false, err
	}
	return count >= models.MaxPlayersInGame, nil
}
