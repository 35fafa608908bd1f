package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
)

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// productRow maps the products table. Reviews are kept as a JSONB document
// so the embedded, ordered review list survives round trips untouched.
type productRow struct {
	ID          uuid.UUID      `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Categories  pq.StringArray `db:"categories"`
	Price       float64        `db:"price"`
	Sale        float64        `db:"sale"`
	Images      pq.StringArray `db:"images"`
	Reviews     []byte         `db:"reviews"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (row *productRow) toDomain() (*domain.Product, error) {
	var reviews []domain.Review
	if len(row.Reviews) > 0 {
		if err := json.Unmarshal(row.Reviews, &reviews); err != nil {
			return nil, fmt.Errorf("failed to decode reviews for product %s: %w", row.ID, err)
		}
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	product := &domain.Product{
		ID:         row.ID,
		Title:      row.Title,
		Categories: []string(row.Categories),
		Price:      row.Price,
		Sale:       row.Sale,
		Images:     []string(row.Images),
		Reviews:    reviews,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.Description.Valid {
		desc := row.Description.String
		product.Description = &desc
	}
	return product, nil
}

func encodeReviews(reviews []domain.Review) ([]byte, error) {
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return json.Marshal(reviews)
}

func nullableDescription(description *string) sql.NullString {
	if description == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *description, Valid: true}
}

const productColumns = `id, title, description, categories, price, sale, images, reviews, created_at, updated_at`

// Create inserts a new product and fills in its store-assigned identifier
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (title, description, categories, price, sale, images, reviews, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Categories == nil {
		product.Categories = []string{}
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Reviews == nil {
		product.Reviews = []domain.Review{}
	}

	reviews, err := encodeReviews(product.Reviews)
	if err != nil {
		return err
	}

	return r.db.QueryRowxContext(
		ctx,
		query,
		product.Title,
		nullableDescription(product.Description),
		pq.StringArray(product.Categories),
		product.Price,
		product.Sale,
		pq.StringArray(product.Images),
		reviews,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var row productRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return row.toDomain()
}

// List retrieves products matching the query filters. The limit is only
// honored for the newest-first listing, matching the catalog API contract.
func (r *ProductRepository) List(ctx context.Context, query domain.ProductQuery) ([]*domain.Product, error) {
	var (
		rows []productRow
		err  error
	)

	switch {
	case query.New:
		q := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1`
		err = r.db.SelectContext(ctx, &rows, q, query.Limit)
	case query.Category != "":
		q := `SELECT ` + productColumns + ` FROM products WHERE $1 = ANY(categories) ORDER BY created_at DESC`
		err = r.db.SelectContext(ctx, &rows, q, query.Category)
	case query.Search != "":
		q := `
			SELECT ` + productColumns + ` FROM products
			WHERE title ILIKE $1
			   OR EXISTS (SELECT 1 FROM unnest(categories) AS category WHERE category ILIKE $1)
			ORDER BY created_at DESC
		`
		err = r.db.SelectContext(ctx, &rows, q, "%"+query.Search+"%")
	default:
		q := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
		err = r.db.SelectContext(ctx, &rows, q)
	}
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(rows))
	for i := range rows {
		product, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// Update persists all mutable fields of an existing product
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET title = $1, description = $2, categories = $3, price = $4, sale = $5,
		    images = $6, reviews = $7, updated_at = $8
		WHERE id = $9
	`

	product.UpdatedAt = time.Now()
	if product.Categories == nil {
		product.Categories = []string{}
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	reviews, err := encodeReviews(product.Reviews)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.Title,
		nullableDescription(product.Description),
		pq.StringArray(product.Categories),
		product.Price,
		product.Sale,
		pq.StringArray(product.Images),
		reviews,
		product.UpdatedAt,
		product.ID,
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

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
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

// SetSaleAll applies the sale value to every product
func (r *ProductRepository) SetSaleAll(ctx context.Context, sale float64) (int64, error) {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE products SET sale = $1, updated_at = $2`,
		sale,
		time.Now(),
	)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// GetSale returns the storewide sale value read off the oldest product
func (r *ProductRepository) GetSale(ctx context.Context) (float64, error) {
	var sale float64
	err := r.db.GetContext(ctx, &sale, `SELECT sale FROM products ORDER BY created_at ASC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}

	return sale, nil
}
