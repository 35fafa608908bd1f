package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
)

// OrderRepository implements domain.OrderRepository for PostgreSQL
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new PostgreSQL order repository
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Items     []byte    `db:"items"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row *orderRow) toDomain() (*domain.Order, error) {
	var items []domain.OrderItem
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to decode items for order %s: %w", row.ID, err)
		}
	}
	if items == nil {
		items = []domain.OrderItem{}
	}

	return &domain.Order{
		ID:        row.ID,
		UserID:    row.UserID,
		Items:     items,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// FindByProductID retrieves every order with a line item referencing the
// given product, using JSONB containment against the items document.
func (r *OrderRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.Order, error) {
	filter, err := json.Marshal([]map[string]string{{"product_id": productID.String()}})
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, items, created_at, updated_at
		FROM orders
		WHERE items @> $1
		ORDER BY created_at ASC
	`

	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, query, filter); err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(rows))
	for i := range rows {
		order, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// Update persists the order's line items
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	order.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(
		ctx,
		`UPDATE orders SET items = $1, updated_at = $2 WHERE id = $3`,
		items,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete removes an order
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
