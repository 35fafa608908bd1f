package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/logger"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/validator"
)

// DefaultListLimit caps the newest-first listing when no limit is given.
const DefaultListLimit = 5

// ImageStore defines the interface for the local image file store
type ImageStore interface {
	Save(filename string, content io.Reader) (string, error)
	Remove(filename string) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// SaleCache defines the interface for the storewide sale cache
type SaleCache interface {
	GetSale(ctx context.Context) (float64, error)
	SetSale(ctx context.Context, sale float64) error
	InvalidateSale(ctx context.Context) error
}

// CatalogEvent is published on every catalog mutation
type CatalogEvent struct {
	EventType string     `json:"event_type"`
	Timestamp time.Time  `json:"timestamp"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Sale      *float64   `json:"sale,omitempty"`
}

// Upload is a single file received through the multipart upload endpoint
type Upload struct {
	Filename string
	Content  io.Reader
}

// UpdateProductInput is the whitelist of fields a partial product update may
// touch. Nil fields are left untouched; categories are replaced wholesale.
type UpdateProductInput struct {
	Title       *string
	Description *string
	Categories  *[]string
	Price       *float64
	Sale        *float64
}

// Service handles product lifecycle, images, sale, and the delete cascade
type Service struct {
	products  domain.ProductRepository
	orders    domain.OrderRepository
	images    ImageStore
	saleCache SaleCache
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new catalog service
func NewService(
	products domain.ProductRepository,
	orders domain.OrderRepository,
	images ImageStore,
	saleCache SaleCache,
	publisher EventPublisher,
	log *logger.Logger,
) *Service {
	return &Service{
		products:  products,
		orders:    orders,
		images:    images,
		saleCache: saleCache,
		publisher: publisher,
		logger:    log,
	}
}

// Create inserts a new product. Unset fields take their defaults; the
// persisted product carries the store-assigned identifier.
func (s *Service) Create(ctx context.Context, product *domain.Product) error {
	if err := validator.Get().Struct(product); err != nil {
		s.logger.Error("Product validation failed", err)
		return domain.ErrInvalidInput
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", err)
		return err
	}

	s.publishEvent(ctx, "product.created", &product.ID, nil)

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	}).Info("Product created")

	return nil
}

// Get retrieves a product by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			s.logger.Debugf("Product not found: %s", id)
		} else {
			s.logger.Error("Failed to get product", err)
		}
		return nil, err
	}

	return product, nil
}

// List retrieves products matching the query filters. The limit defaults to
// DefaultListLimit and, as in the catalog API contract, only applies to the
// newest-first listing.
func (s *Service) List(ctx context.Context, query domain.ProductQuery) ([]*domain.Product, error) {
	if query.Limit <= 0 {
		query.Limit = DefaultListLimit
	}

	products, err := s.products.List(ctx, query)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, err
	}

	return products, nil
}

// Update shallow-merges the supplied fields into the stored product.
// Non-nil fields overwrite field-by-field; the category list is replaced
// wholesale, never merged element-wise.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Categories != nil {
		product.Categories = *input.Categories
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Sale != nil {
		product.Sale = *input.Sale
	}

	if err := validator.Get().Struct(product); err != nil {
		s.logger.Error("Product validation failed", err)
		return nil, domain.ErrInvalidInput
	}

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", err)
		return nil, err
	}

	if input.Sale != nil {
		// A per-product sale change makes the cached storewide value stale.
		if err := s.saleCache.InvalidateSale(ctx); err != nil {
			s.logger.Warnf("Failed to invalidate sale cache: %v", err)
		}
	}

	s.publishEvent(ctx, "product.updated", &product.ID, nil)

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	}).Info("Product updated")

	return product, nil
}

// UploadImages stores the uploaded files and appends their generated names to
// the product's image list, preserving the existing order. The product is
// resolved before any file is written so a bad id never leaves stray files.
func (s *Service) UploadImages(ctx context.Context, id uuid.UUID, uploads []Upload) (*domain.Product, error) {
	if len(uploads) == 0 {
		return nil, domain.ErrNoFiles
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stored := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		name, err := s.images.Save(upload.Filename, upload.Content)
		if err != nil {
			s.logger.Error("Failed to store uploaded image", err)
			s.removeFiles(stored)
			return nil, err
		}
		stored = append(stored, name)
	}

	product.Images = append(product.Images, stored...)

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("Failed to persist uploaded images", err)
		s.removeFiles(stored)
		return nil, err
	}

	s.publishEvent(ctx, "product.updated", &product.ID, nil)

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"uploaded":   len(stored),
	}).Info("Images uploaded")

	return product, nil
}

// RemoveImage deletes the image file at index and removes it from the
// product's image list. File deletion is best-effort: a file already missing
// from the store must not block fixing the document.
func (s *Service) RemoveImage(ctx context.Context, id uuid.UUID, index int) (*domain.Product, []string, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	filename, err := product.RemoveImage(index)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if err := s.images.Remove(filename); err != nil {
		warning := fmt.Sprintf("image file %s could not be removed: %v", filename, err)
		if os.IsNotExist(err) {
			warning = fmt.Sprintf("image file %s was already missing", filename)
		}
		warnings = append(warnings, warning)
		s.logger.Warnf("Removing image for product %s: %s", product.ID, warning)
	}

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("Failed to persist image removal", err)
		return nil, nil, err
	}

	s.publishEvent(ctx, "product.updated", &product.ID, nil)

	return product, warnings, nil
}

// Delete removes a product and keeps orders consistent: every line item
// referencing the product is filtered out, orders left empty are deleted,
// the rest are persisted. Image files are removed best-effort with per-file
// warnings aggregated for the caller.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", err)
		return nil, err
	}

	var warnings []string
	for _, filename := range product.Images {
		if err := s.images.Remove(filename); err != nil && !os.IsNotExist(err) {
			warning := fmt.Sprintf("image file %s could not be removed: %v", filename, err)
			warnings = append(warnings, warning)
			s.logger.Warnf("Deleting product %s: %s", id, warning)
		}
	}

	orders, err := s.orders.FindByProductID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to find orders referencing deleted product", err)
		return warnings, err
	}

	for _, order := range orders {
		order.RemoveProduct(id)
		if len(order.Items) == 0 {
			if err := s.orders.Delete(ctx, order.ID); err != nil {
				s.logger.Error("Failed to delete emptied order", err)
				return warnings, err
			}
			continue
		}
		if err := s.orders.Update(ctx, order); err != nil {
			s.logger.Error("Failed to persist filtered order", err)
			return warnings, err
		}
	}

	s.publishEvent(ctx, "product.deleted", &id, nil)

	s.logger.WithFields(map[string]interface{}{
		"product_id":       id,
		"orders_cascaded":  len(orders),
		"image_warnings":   len(warnings),
		"images_scheduled": len(product.Images),
	}).Info("Product deleted")

	return warnings, nil
}

// SetSale applies the sale value to every product and refreshes the cache
func (s *Service) SetSale(ctx context.Context, sale float64) (int64, error) {
	if sale < 0 || sale > 100 {
		return 0, domain.ErrInvalidInput
	}

	updated, err := s.products.SetSaleAll(ctx, sale)
	if err != nil {
		s.logger.Error("Failed to set storewide sale", err)
		return 0, err
	}

	if err := s.saleCache.SetSale(ctx, sale); err != nil {
		s.logger.Warnf("Failed to cache storewide sale: %v", err)
	}

	s.publishEvent(ctx, "sale.set", nil, &sale)

	s.logger.WithFields(map[string]interface{}{
		"sale":    sale,
		"updated": updated,
	}).Info("Storewide sale set")

	return updated, nil
}

// GetSale returns the storewide sale value, served from cache when possible
func (s *Service) GetSale(ctx context.Context) (float64, error) {
	sale, err := s.saleCache.GetSale(ctx)
	if err == nil {
		return sale, nil
	}
	if err != domain.ErrNotFound {
		s.logger.Warnf("Sale cache read failed: %v", err)
	}

	sale, err = s.products.GetSale(ctx)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to read storewide sale", err)
		}
		return 0, err
	}

	if err := s.saleCache.SetSale(ctx, sale); err != nil {
		s.logger.Warnf("Failed to cache storewide sale: %v", err)
	}

	return sale, nil
}

func (s *Service) removeFiles(filenames []string) {
	for _, name := range filenames {
		if err := s.images.Remove(name); err != nil && !os.IsNotExist(err) {
			s.logger.Warnf("Failed to clean up image file %s: %v", name, err)
		}
	}
}

// publishEvent publishes a catalog event (non-blocking)
func (s *Service) publishEvent(ctx context.Context, eventType string, productID *uuid.UUID, sale *float64) {
	event := CatalogEvent{
		EventType: eventType,
		Timestamp: time.Now(),
		ProductID: productID,
		Sale:      sale,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal %s event", eventType)
		return
	}

	// Publish in background to avoid blocking the request
	go func() {
		if err := s.publisher.Publish(context.Background(), "catalog.events", data); err != nil {
			s.logger.Errorf(err, "Failed to publish %s event", eventType)
		}
	}()
}
