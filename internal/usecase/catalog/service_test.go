package catalog

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/logger"
)

// MockProductRepository is a mock implementation of domain.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, query domain.ProductQuery) ([]*domain.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) SetSaleAll(ctx context.Context, sale float64) (int64, error) {
	args := m.Called(ctx, sale)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GetSale(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

// MockOrderRepository is a mock implementation of domain.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.Order, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockImageStore is a mock implementation of ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(filename string, content io.Reader) (string, error) {
	args := m.Called(filename, content)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Remove(filename string) error {
	args := m.Called(filename)
	return args.Error(0)
}

// MockSaleCache is a mock implementation of SaleCache
type MockSaleCache struct {
	mock.Mock
}

func (m *MockSaleCache) GetSale(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockSaleCache) SetSale(ctx context.Context, sale float64) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleCache) InvalidateSale(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func newTestService() (*Service, *MockProductRepository, *MockOrderRepository, *MockImageStore, *MockSaleCache, *MockEventPublisher) {
	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	images := new(MockImageStore)
	saleCache := new(MockSaleCache)
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, "catalog.events", mock.Anything).Return(nil).Maybe()

	svc := NewService(products, orders, images, saleCache, publisher, logger.New("test"))
	return svc, products, orders, images, saleCache, publisher
}

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func slicePtr(s []string) *[]string { return &s }

func TestCreate_Success(t *testing.T) {
	svc, products, _, _, _, _ := newTestService()

	product := &domain.Product{Title: "Brass Diya", Price: 24.5}
	products.On("Create", mock.Anything, product).Return(nil)

	err := svc.Create(context.Background(), product)

	assert.NoError(t, err)
	products.AssertExpectations(t)
}

func TestCreate_InvalidProduct(t *testing.T) {
	svc, products, _, _, _, _ := newTestService()

	err := svc.Create(context.Background(), &domain.Product{Title: "", Price: 10})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_NegativePrice(t *testing.T) {
	svc, products, _, _, _, _ := newTestService()

	err := svc.Create(context.Background(), &domain.Product{Title: "Brass Diya", Price: -1})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGet_NotFound(t *testing.T) {
	svc, products, _, _, _, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	product, err := svc.Get(context.Background(), id)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_DefaultLimit(t *testing.T) {
	svc, products, _, _, _, _ := newTestService()

	expected := []*domain.Product{{Title: "Brass Diya"}}
	products.On("List", mock.Anything, domain.ProductQuery{New: true, Limit: DefaultListLimit}).Return(expected, nil)

	result, err := svc.List(context.Background(), domain.ProductQuery{New: true})

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	products.AssertExpectations(t)
}

func TestList_ExplicitLimit(t *testing.T) {
	svc, products, _, _, _, _ := newTestService()

	products.On("List", mock.Anything, domain.ProductQuery{New: true, Limit: 12}).Return([]*domain.Product{}, nil)

	_, err := svc.List(context.Background(), domain.ProductQuery{New: true, Limit: 12})

	assert.NoError(t, err)
	products.AssertExpectations(t)
}

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	svc, products, _, _, _, _ := newTestService()

	id := uuid.New()
	existing := &domain.Product{
		ID:         id,
		Title:      "Brass Diya",
		Categories: []string{"lamps"},
		Price:      24.5,
		Sale:       0,
	}
	products.On("GetByID", mock.Anything, id).Return(existing, nil)
	products.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Title == "Brass Diya" && p.Price == 30 && len(p.Categories) == 2
	})).Return(nil)

	updated, err := svc.Update(context.Background(), id, UpdateProductInput{
		Price:      floatPtr(30),
		Categories: slicePtr([]string{"lamps", "brass"}),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Brass Diya", updated.Title)
	assert.Equal(t, float64(30), updated.Price)
	assert.Equal(t, []string{"lamps", "brass"}, updated.Categories)
	products.AssertExpectations(t)
}

func TestUpdate_SaleChangeInvalidatesCache(t *testing.T) {
	svc, products, _, _, saleCache, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id, Title: "Brass Diya"}, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)
	saleCache.On("InvalidateSale", mock.Anything).Return(nil)

	_, err := svc.Update(context.Background(), id, UpdateProductInput{Sale: floatPtr(15)})

	assert.NoError(t, err)
	saleCache.AssertExpectations(t)
}

func TestUpdate_InvalidMergeResult(t *testing.T) {
	svc, products, _, _, _, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id, Title: "Brass Diya"}, nil)

	_, err := svc.Update(context.Background(), id, UpdateProductInput{Title: strPtr("")})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUploadImages_AppendsInOrder(t *testing.T) {
	svc, products, _, images, _, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id, Title: "Brass Diya", Images: []string{"a.jpg", "b.jpg"}}, nil)
	images.On("Save", "c.jpg", mock.Anything).Return("1-c.jpg", nil)
	images.On("Save", "d.jpg", mock.Anything).Return("2-d.jpg", nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)

	product, err := svc.UploadImages(context.Background(), id, []Upload{
		{Filename: "c.jpg", Content: strings.NewReader("c")},
		{Filename: "d.jpg", Content: strings.NewReader("d")},
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "1-c.jpg", "2-d.jpg"}, product.Images)
	images.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestUploadImages_NoFiles(t *testing.T) {
	svc, products, _, _, _, _ := newTestService()

	_, err := svc.UploadImages(context.Background(), uuid.New(), nil)

	assert.ErrorIs(t, err, domain.ErrNoFiles)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUploadImages_UnknownProductWritesNothing(t *testing.T) {
	svc, products, _, images, _, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.UploadImages(context.Background(), id, []Upload{
		{Filename: "c.jpg", Content: strings.NewReader("c")},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	images.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUploadImages_SaveFailureCleansUpStoredFiles(t *testing.T) {
	svc, products, _, images, _, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id, Title: "Brass Diya"}, nil)
	images.On("Save", "c.jpg", mock.Anything).Return("1-c.jpg", nil)
	images.On("Save", "d.jpg", mock.Anything).Return("", errors.New("disk full"))
	images.On("Remove", "1-c.jpg").Return(nil)

	_, err := svc.UploadImages(context.Background(), id, []Upload{
		{Filename: "c.jpg", Content: strings.NewReader("c")},
		{Filename: "d.jpg", Content: strings.NewReader("d")},
	})

	assert.Error(t, err)
	images.AssertExpectations(t)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRemoveImage_Success(t *testing.T) {
	svc, products, _, images, _, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id, Title: "Brass Diya", Images: []string{"a.jpg", "b.jpg", "c.jpg"}}, nil)
	images.On("Remove", "b.jpg").Return(nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)

	product, warnings, err := svc.RemoveImage(context.Background(), id, 1)

	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, product.Images)
	images.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestRemoveImage_MissingFileStillUpdatesProduct(t *testing.T) {
	svc, products, _, images, _, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id, Title: "Brass Diya", Images: []string{"a.jpg"}}, nil)
	images.On("Remove", "a.jpg").Return(os.ErrNotExist)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)

	product, warnings, err := svc.RemoveImage(context.Background(), id, 0)

	assert.NoError(t, err)
	assert.Len(t, warnings, 1)
	assert.Empty(t, product.Images)
	products.AssertExpectations(t)
}

func TestRemoveImage_InvalidIndex(t *testing.T) {
	svc, products, _, images, _, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id, Title: "Brass Diya", Images: []string{"a.jpg", "b.jpg", "c.jpg"}}, nil)

	_, _, err := svc.RemoveImage(context.Background(), id, 3)

	assert.ErrorIs(t, err, domain.ErrInvalidImageIndex)
	images.AssertNotCalled(t, "Remove", mock.Anything)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDelete_CascadesOverOrders(t *testing.T) {
	svc, products, orders, images, _, _ := newTestService()

	productID := uuid.New()
	otherID := uuid.New()
	products.On("GetByID", mock.Anything, productID).Return(&domain.Product{
		ID:     productID,
		Title:  "Brass Diya",
		Images: []string{"a.jpg"},
	}, nil)
	products.On("Delete", mock.Anything, productID).Return(nil)
	images.On("Remove", "a.jpg").Return(nil)

	// One order holds the product as its sole item, the other holds it
	// alongside an unrelated item.
	soleItem := &domain.Order{ID: uuid.New(), Items: []domain.OrderItem{
		{ProductID: productID, Quantity: 1},
	}}
	mixed := &domain.Order{ID: uuid.New(), Items: []domain.OrderItem{
		{ProductID: productID, Quantity: 2},
		{ProductID: otherID, Quantity: 1},
	}}
	orders.On("FindByProductID", mock.Anything, productID).Return([]*domain.Order{soleItem, mixed}, nil)
	orders.On("Delete", mock.Anything, soleItem.ID).Return(nil)
	orders.On("Update", mock.Anything, mixed).Return(nil)

	warnings, err := svc.Delete(context.Background(), productID)

	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []domain.OrderItem{{ProductID: otherID, Quantity: 1}}, mixed.Items)
	products.AssertExpectations(t)
	orders.AssertExpectations(t)
	images.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	svc, products, orders, _, _, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "FindByProductID", mock.Anything, mock.Anything)
}

func TestDelete_CollectsFileWarnings(t *testing.T) {
	svc, products, orders, images, _, _ := newTestService()

	id := uuid.New()
	products.On("GetByID", mock.Anything, id).Return(&domain.Product{
		ID:     id,
		Title:  "Brass Diya",
		Images: []string{"a.jpg", "b.jpg"},
	}, nil)
	products.On("Delete", mock.Anything, id).Return(nil)
	images.On("Remove", "a.jpg").Return(errors.New("permission denied"))
	images.On("Remove", "b.jpg").Return(os.ErrNotExist)
	orders.On("FindByProductID", mock.Anything, id).Return([]*domain.Order{}, nil)

	warnings, err := svc.Delete(context.Background(), id)

	assert.NoError(t, err)
	// A missing file is not worth a warning on delete, a failed removal is.
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "a.jpg")
}

func TestSetSale_Success(t *testing.T) {
	svc, products, _, _, saleCache, _ := newTestService()

	products.On("SetSaleAll", mock.Anything, float64(20)).Return(int64(7), nil)
	saleCache.On("SetSale", mock.Anything, float64(20)).Return(nil)

	updated, err := svc.SetSale(context.Background(), 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), updated)
	products.AssertExpectations(t)
	saleCache.AssertExpectations(t)
}

func TestSetSale_OutOfRange(t *testing.T) {
	svc, products, _, _, _, _ := newTestService()

	_, err := svc.SetSale(context.Background(), 101)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.SetSale(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	products.AssertNotCalled(t, "SetSaleAll", mock.Anything, mock.Anything)
}

func TestGetSale_ServedFromCache(t *testing.T) {
	svc, products, _, _, saleCache, _ := newTestService()

	saleCache.On("GetSale", mock.Anything).Return(float64(15), nil)

	sale, err := svc.GetSale(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, float64(15), sale)
	products.AssertNotCalled(t, "GetSale", mock.Anything)
}

func TestGetSale_CacheMissFallsBackToStore(t *testing.T) {
	svc, products, _, _, saleCache, _ := newTestService()

	saleCache.On("GetSale", mock.Anything).Return(float64(0), domain.ErrNotFound)
	products.On("GetSale", mock.Anything).Return(float64(25), nil)
	saleCache.On("SetSale", mock.Anything, float64(25)).Return(nil)

	sale, err := svc.GetSale(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, float64(25), sale)
	saleCache.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestGetSale_EmptyCatalog(t *testing.T) {
	svc, products, _, _, saleCache, _ := newTestService()

	saleCache.On("GetSale", mock.Anything).Return(float64(0), domain.ErrNotFound)
	products.On("GetSale", mock.Anything).Return(float64(0), domain.ErrNotFound)

	_, err := svc.GetSale(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	saleCache.AssertNotCalled(t, "SetSale", mock.Anything, mock.Anything)
}
