package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Order is a purchase record holding weak references to products via its
// line items, not copies of them.
type Order struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    uuid.UUID   `json:"user_id" db:"user_id"`
	Items     []OrderItem `json:"items" db:"items"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItem is a single line item referencing a product by identity.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// RemoveProduct filters out every line item referencing productID and
// returns the number of items removed.
func (o *Order) RemoveProduct(productID uuid.UUID) int {
	kept := o.Items[:0]
	removed := 0
	for _, item := range o.Items {
		if item.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	o.Items = kept
	return removed
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// FindByProductID retrieves every order with a line item referencing
	// the given product
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*Order, error)

	// Update persists the order's line items
	Update(ctx context.Context, order *Order) error

	// Delete removes an order
	Delete(ctx context.Context, id uuid.UUID) error
}
