package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gameroster/roster-system/models"
	"github.com/lib/pq"
)

var (
	ErrMembershipConflict      = errors.New("membership conflict: player already attached to this game")
	ErrMembershipPlayerInvalid = errors.New("membership player invalid")
	ErrMembershipGameInvalid   = errors.New("membership game invalid")
)

type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) error
	ExistsByGameAndPlayer(ctx context.Context, gameID, playerID int) (bool, error)
	CountByGame(ctx context.Context, gameID int) (int, error)
}

type postgresMembershipRepository struct {
	db *sql.DB
}

func NewPostgresMembershipRepository(db *sql.DB) MembershipRepository {
	return &postgresMembershipRepository{db: db}
}

func (r *postgresMembershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	query := `
		INSERT INTO memberships (player_id, game_id)
		VALUES ($1, $2)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		membership.PlayerID,
		membership.GameID,
	).Scan(&membership.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "memberships_player_id_game_id_key" {
					return ErrMembershipConflict
				}
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "memberships_player_id_fkey":
					return ErrMembershipPlayerInvalid
				case "memberships_game_id_fkey":
					return ErrMembershipGameInvalid
				}
			}
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

func (r *postgresMembershipRepository) ExistsByGameAndPlayer(ctx context.Context, gameID, playerID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM memberships WHERE game_id = $1 AND player_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, gameID, playerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership existence: %w", err)
	}
	return exists, nil
}

func (r *postgresMembershipRepository) CountByGame(ctx context.Context, gameID int) (int, error) {
	query := `SELECT COUNT(*) FROM memberships WHERE game_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, gameID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count game memberships: %w", err)
	}
	return count, nil
}
