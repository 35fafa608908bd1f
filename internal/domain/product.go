package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog item. Images holds the ordered filenames of
// files resident in the image store; Reviews is an ordered, append-only list
// embedded in the product document.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" validate:"required,min=1,max=255"`
	Description *string   `json:"description,omitempty" db:"description"`
	Categories  []string  `json:"categories" db:"categories"`
	Price       float64   `json:"price" db:"price" validate:"gte=0"`
	Sale        float64   `json:"sale" db:"sale" validate:"gte=0,lte=100"`
	Images      []string  `json:"images" db:"images"`
	Reviews     []Review  `json:"reviews" db:"reviews"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Review is embedded in a product and immutable once appended. A zero
// rating is a valid rating, so the field carries no validation.
type Review struct {
	Name    string  `json:"name" validate:"required,min=3"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment" validate:"required,min=3"`
}

// RemoveImage removes the image filename at index and returns it.
// Returns ErrInvalidImageIndex when index is out of range.
func (p *Product) RemoveImage(index int) (string, error) {
	if index < 0 || index >= len(p.Images) {
		return "", ErrInvalidImageIndex
	}
	name := p.Images[index]
	p.Images = append(p.Images[:index], p.Images[index+1:]...)
	return name, nil
}

// ProductQuery describes the catalog listing filters. At most one of
// New/Category/Search is honored; Limit only applies when New is set.
type ProductQuery struct {
	New      bool
	Category string
	Search   string
	Limit    int
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Create inserts a new product and fills in its assigned identifier
	Create(ctx context.Context, product *Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List retrieves products matching the query filters
	List(ctx context.Context, query ProductQuery) ([]*Product, error)

	// Update persists all mutable fields of an existing product
	Update(ctx context.Context, product *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// SetSaleAll applies the sale value to every product and returns
	// the number of products updated
	SetSaleAll(ctx context.Context, sale float64) (int64, error)

	// GetSale returns the storewide sale value read off the oldest product
	GetSale(ctx context.Context) (float64, error)
}
