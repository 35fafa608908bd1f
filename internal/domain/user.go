package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Roles recognized by the authorization middleware.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is consumed read-only by the review-posting flow. DeliveredOrders
// lists the product identifiers the user has received.
type User struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	Username        string      `json:"username" db:"username"`
	Email           string      `json:"email" db:"email"`
	Role            string      `json:"role" db:"role"`
	DeliveredOrders []uuid.UUID `json:"delivered_orders" db:"delivered_orders"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

// HasDelivered reports whether productID appears in the user's delivered orders.
func (u *User) HasDelivered(productID uuid.UUID) bool {
	for _, id := range u.DeliveredOrders {
		if id == productID {
			return true
		}
	}
	return false
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
