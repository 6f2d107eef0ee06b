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
	ErrPlayerNameConflict  = errors.New("player name conflict")
	ErrPlayerEmailConflict = errors.New("player email conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	ExistsByID(ctx context.Context, id int) (bool, error)
	ExistsByNameOrEmail(ctx context.Context, name, email string) (bool, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

// Create inserts a single player row. The insert is a single statement, so it
// is applied atomically or not at all.
func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, email)
		VALUES ($1, $2)
		RETURNING id, created_at, modified_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Email,
	).Scan(&player.ID, &player.CreatedAt, &player.ModifiedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				switch pqErr.Constraint {
				case "players_name_key":
					return ErrPlayerNameConflict
				case "players_email_key":
					return ErrPlayerEmailConflict
				}
			}
		}
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM players WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check player existence: %w", err)
	}
	return exists, nil
}

// ExistsByNameOrEmail reports whether any player already holds the given name
// or the given email. A collision on either field counts.
func (r *postgresPlayerRepository) ExistsByNameOrEmail(ctx context.Context, name, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM players WHERE name = $1 OR email = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check player name/email: %w", err)
	}
	return exists, nil
}
