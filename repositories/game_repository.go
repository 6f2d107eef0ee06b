package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gameroster/roster-system/models"
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	ExistsByID(ctx context.Context, id int) (bool, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

// Create inserts a single game row. Game names carry no uniqueness rule, so
// there is no conflict mapping here.
func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (name)
		VALUES ($1)
		RETURNING id, created_at, modified_at`

	err := r.db.QueryRowContext(ctx, query, game.Name).
		Scan(&game.ID, &game.CreatedAt, &game.ModifiedAt)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (r *postgresGameRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM games WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check game existence: %w", err)
	}
	return exists, nil
}
