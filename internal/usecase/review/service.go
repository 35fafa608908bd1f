package review

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/logger"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/validator"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// ReviewEvent is published when a review is appended to a product
type ReviewEvent struct {
	EventType string        `json:"event_type"`
	Timestamp time.Time     `json:"timestamp"`
	ProductID uuid.UUID     `json:"product_id"`
	Review    domain.Review `json:"review"`
}

// Service appends customer reviews to products, gated by delivery status
type Service struct {
	products  domain.ProductRepository
	users     domain.UserRepository
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new review service
func NewService(
	products domain.ProductRepository,
	users domain.UserRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *Service {
	return &Service{
		products:  products,
		users:     users,
		publisher: publisher,
		logger:    log,
	}
}

// Add appends a review to the product, provided the caller's delivered
// orders contain the product id. A caller without a matching delivered order
// is rejected with ErrNotDelivered, a business-rule rejection rather than a
// not-found condition.
func (s *Service) Add(ctx context.Context, userID, productID uuid.UUID, review domain.Review) (*domain.Product, error) {
	if err := validator.Get().Struct(review); err != nil {
		s.logger.Error("Review validation failed", err)
		return nil, domain.ErrInvalidInput
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			// An unknown caller cannot have a delivered order.
			return nil, domain.ErrNotDelivered
		}
		s.logger.Error("Failed to load user for review", err)
		return nil, err
	}

	if !user.HasDelivered(productID) {
		return nil, domain.ErrNotDelivered
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if err != domain.ErrNotFound {
			s.logger.Error("Failed to load product for review", err)
		}
		return nil, err
	}

	product.Reviews = append(product.Reviews, review)

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("Failed to persist review", err)
		return nil, err
	}

	s.publishEvent(ctx, product.ID, review)

	s.logger.WithFields(map[string]interface{}{
		"product_id": product.ID,
		"user_id":    userID,
		"rating":     review.Rating,
	}).Info("Review added")

	return product, nil
}

// publishEvent publishes a review event (non-blocking)
func (s *Service) publishEvent(ctx context.Context, productID uuid.UUID, review domain.Review) {
	event := ReviewEvent{
		EventType: "review.added",
		Timestamp: time.Now(),
		ProductID: productID,
		Review:    review,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal review event for product %s", productID)
		return
	}

	go func() {
		if err := s.publisher.Publish(context.Background(), "catalog.events", data); err != nil {
			s.logger.Errorf(err, "Failed to publish review event for product %s", productID)
		}
	}()
}
