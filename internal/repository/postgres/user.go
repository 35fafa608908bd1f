package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
)

// UserRepository implements domain.UserRepository for PostgreSQL
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID              uuid.UUID      `db:"id"`
	Username        string         `db:"username"`
	Email           string         `db:"email"`
	Role            string         `db:"role"`
	DeliveredOrders pq.StringArray `db:"delivered_orders"`
	CreatedAt       time.Time      `db:"created_at"`
}

// toDomain parses delivered_orders into UUIDs. The identifiers are stored as
// text and parsed here so that every comparison in the domain happens between
// uuid.UUID values.
func (row *userRow) toDomain() (*domain.User, error) {
	delivered := make([]uuid.UUID, 0, len(row.DeliveredOrders))
	for _, raw := range row.DeliveredOrders {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid delivered order id %q for user %s: %w", raw, row.ID, err)
		}
		delivered = append(delivered, id)
	}

	return &domain.User{
		ID:              row.ID,
		Username:        row.Username,
		Email:           row.Email,
		Role:            row.Role,
		DeliveredOrders: delivered,
		CreatedAt:       row.CreatedAt,
	}, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, email, role, delivered_orders, created_at
		FROM users
		WHERE id = $1
	`

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return row.toDomain()
}
