package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/middleware"
	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/logger"
	"github.com/SaiDecoratives/templehub-catalog/internal/usecase/review"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEventPublisher is a mock implementation of the event publisher interfaces
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func newTestReviewHandler() (*ReviewHandler, *MockProductRepository, *MockUserRepository) {
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, "catalog.events", mock.Anything).Return(nil).Maybe()

	log := logger.New("test")
	service := review.NewService(products, users, publisher, log)
	return NewReviewHandler(service, log), products, users
}

func reviewRequest(t *testing.T, productID uuid.UUID, userID uuid.UUID, body any) *http.Request {
	t.Helper()
	bodyBytes, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/products/review/"+productID.String(), bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", productID.String())
	return req.WithContext(middleware.WithUser(req.Context(), userID, domain.RoleUser))
}

func TestReviewHandler_Add_Success(t *testing.T) {
	handler, products, users := newTestReviewHandler()

	userID := uuid.New()
	productID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:              userID,
		DeliveredOrders: []uuid.UUID{productID},
	}, nil)
	products.On("GetByID", mock.Anything, productID).Return(&domain.Product{ID: productID, Title: "Brass Diya"}, nil)
	products.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return len(p.Reviews) == 1 && p.Reviews[0].Name == "Asha"
	})).Return(nil)

	req := reviewRequest(t, productID, userID, AddReviewRequest{
		Name:    "Asha",
		Rating:  4.5,
		Comment: "Beautiful finish",
	})
	w := httptest.NewRecorder()

	handler.Add(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	products.AssertExpectations(t)
	users.AssertExpectations(t)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, "Review added", envelope["Message"])
}

func TestReviewHandler_Add_NotDelivered(t *testing.T) {
	handler, products, users := newTestReviewHandler()

	userID := uuid.New()
	productID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:              userID,
		DeliveredOrders: []uuid.UUID{uuid.New()},
	}, nil)

	req := reviewRequest(t, productID, userID, AddReviewRequest{
		Name:    "Asha",
		Rating:  4.5,
		Comment: "Beautiful finish",
	})
	w := httptest.NewRecorder()

	handler.Add(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["Success"])
	assert.Equal(t, "Product not found in user's delivered orders", envelope["Message"])
}

func TestReviewHandler_Add_FieldErrors(t *testing.T) {
	handler, _, users := newTestReviewHandler()

	req := reviewRequest(t, uuid.New(), uuid.New(), AddReviewRequest{
		Name:    "Al",
		Comment: "ok",
	})
	w := httptest.NewRecorder()

	handler.Add(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)

	var envelope struct {
		Success bool `json:"Success"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Len(t, envelope.Errors, 2)

	messages := make(map[string]string, len(envelope.Errors))
	for _, fe := range envelope.Errors {
		messages[fe.Field] = fe.Message
	}
	assert.Equal(t, "Enter a valid name of minimum 3 characters", messages["name"])
	assert.Equal(t, "Enter a valid comment of minimum 3 characters", messages["comment"])
}

func TestReviewHandler_Add_ZeroRating(t *testing.T) {
	handler, products, users := newTestReviewHandler()

	userID := uuid.New()
	productID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:              userID,
		DeliveredOrders: []uuid.UUID{productID},
	}, nil)
	products.On("GetByID", mock.Anything, productID).Return(&domain.Product{ID: productID, Title: "Brass Diya"}, nil)
	products.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return len(p.Reviews) == 1 && p.Reviews[0].Rating == 0
	})).Return(nil)

	req := reviewRequest(t, productID, userID, AddReviewRequest{
		Name:    "Asha",
		Rating:  0,
		Comment: "Arrived broken",
	})
	w := httptest.NewRecorder()

	handler.Add(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	products.AssertExpectations(t)
}

func TestReviewHandler_Add_MissingIdentity(t *testing.T) {
	handler, _, users := newTestReviewHandler()

	productID := uuid.New()
	bodyBytes, _ := json.Marshal(AddReviewRequest{Name: "Asha", Rating: 4.5, Comment: "Beautiful finish"})
	req := httptest.NewRequest(http.MethodPut, "/products/review/"+productID.String(), bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", productID.String())
	w := httptest.NewRecorder()

	handler.Add(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestReviewHandler_Add_ProductNotFound(t *testing.T) {
	handler, products, users := newTestReviewHandler()

	userID := uuid.New()
	productID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&domain.User{
		ID:              userID,
		DeliveredOrders: []uuid.UUID{productID},
	}, nil)
	products.On("GetByID", mock.Anything, productID).Return(nil, domain.ErrNotFound)

	req := reviewRequest(t, productID, userID, AddReviewRequest{
		Name:    "Asha",
		Rating:  4.5,
		Comment: "Beautiful finish",
	})
	w := httptest.NewRecorder()

	handler.Add(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
