package handler

import (
	"errors"
	"net/http"

	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/request"
	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/response"
	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/logger"
	"github.com/SaiDecoratives/templehub-catalog/internal/usecase/catalog"
)

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	service *catalog.Service
	logger  *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *catalog.Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  log,
	}
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description *string  `json:"description,omitempty"`
	Categories  []string `json:"categories"`
	Price       float64  `json:"price" validate:"gte=0"`
	Sale        float64  `json:"sale" validate:"gte=0,lte=100"`
}

// UpdateProductRequest represents the partial request body for updating a
// product. Absent fields are left untouched; categories replace the stored
// list wholesale.
type UpdateProductRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Categories  *[]string `json:"categories,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Sale        *float64  `json:"sale,omitempty"`
}

// SetSaleRequest carries the storewide sale value. The field name matches
// the storefront's existing payload.
type SetSaleRequest struct {
	Sale float64 `json:"Sale"`
}

// Create handles POST /products
// @Summary Create a new product
// @Tags Products
// @Accept json
// @Produce json
// @Param product body CreateProductRequest true "Product details"
// @Success 200 {object} response.Envelope "Persisted product with assigned id"
// @Failure 400 {object} response.Envelope "Invalid request body"
// @Failure 500 {object} response.Envelope "Internal server error"
// @Security BearerAuth
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product := &domain.Product{
		Title:       req.Title,
		Description: req.Description,
		Categories:  req.Categories,
		Price:       req.Price,
		Sale:        req.Sale,
	}

	if err := h.service.Create(r.Context(), product); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			response.Error(w, http.StatusBadRequest, "Product was not saved")
			return
		}
		h.handleError(w, err)
		return
	}

	response.Product(w, productView(r, product))
}

// GetByID handles GET /products/find/:id
// @Summary Get a product by ID
// @Description Image filenames are rewritten to URLs served by this host.
// @Tags Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} response.Envelope "Product details"
// @Failure 400 {object} response.Envelope "Invalid product ID"
// @Failure 404 {object} response.Envelope "Product not found"
// @Router /products/find/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Product(w, productView(r, product))
}

// List handles GET /products
// @Summary List or search products
// @Description Supports new (newest first, limited), Categories (exact membership) and search (substring on title or category) filters.
// @Tags Products
// @Produce json
// @Param new query string false "Newest-first listing"
// @Param Categories query string false "Category membership filter"
// @Param search query string false "Case-insensitive substring search"
// @Param limit query int false "Limit for the newest-first listing" default(5)
// @Success 200 {object} response.Envelope "Product list"
// @Failure 500 {object} response.Envelope "Internal server error"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := domain.ProductQuery{
		New:      r.URL.Query().Get("new") != "",
		Category: r.URL.Query().Get("Categories"),
		Search:   r.URL.Query().Get("search"),
		Limit:    request.GetIntQuery(r, "limit", 0),
	}

	products, err := h.service.List(r.Context(), query)
	if err != nil {
		h.handleError(w, err)
		return
	}

	views := make([]domain.Product, 0, len(products))
	for _, product := range products {
		views = append(views, productView(r, product))
	}

	response.Products(w, views)
}

// Update handles PUT /products/:id
// @Summary Partially update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param product body UpdateProductRequest true "Fields to overwrite"
// @Success 200 {object} response.Envelope "Updated product"
// @Failure 400 {object} response.Envelope "Invalid request"
// @Failure 404 {object} response.Envelope "Product not found"
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.Update(r.Context(), id, catalog.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Categories:  req.Categories,
		Price:       req.Price,
		Sale:        req.Sale,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.ProductMessage(w, "Product has been updated", productView(r, product))
}

// Delete handles DELETE /products/:id
// @Summary Delete a product and cascade to orders
// @Description Removes the product, deletes its image files best-effort, filters its line items out of all orders and drops orders left empty.
// @Tags Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} response.Envelope "Deletion confirmation, with per-file warnings when image cleanup was partial"
// @Failure 404 {object} response.Envelope "Product not found"
// @Failure 500 {object} response.Envelope "Internal server error"
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	warnings, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Envelope{
		Success:  true,
		Message:  "Product and associated images have been deleted",
		Warnings: warnings,
	})
}

// SetSale handles POST /products/sale
// @Summary Set the storewide sale
// @Description Applies the sale value to every product in the catalog.
// @Tags Sale
// @Accept json
// @Produce json
// @Param sale body SetSaleRequest true "Sale value"
// @Success 200 {object} response.Envelope "Confirmation"
// @Failure 400 {object} response.Envelope "Invalid sale value"
// @Security BearerAuth
// @Router /products/sale [post]
func (h *ProductHandler) SetSale(w http.ResponseWriter, r *http.Request) {
	var req SetSaleRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.SetSale(r.Context(), req.Sale); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			response.Error(w, http.StatusBadRequest, "Invalid sale value")
			return
		}
		h.handleError(w, err)
		return
	}

	response.Message(w, "Sale has been set")
}

// GetSale handles GET /products/sale
// @Summary Get the storewide sale
// @Tags Sale
// @Produce json
// @Success 200 {object} response.Envelope "Current sale value"
// @Failure 404 {object} response.Envelope "Catalog is empty"
// @Security BearerAuth
// @Router /products/sale [get]
func (h *ProductHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.service.GetSale(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "No products in catalog")
			return
		}
		h.handleError(w, err)
		return
	}

	response.Sale(w, sale)
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *ProductHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	default:
		h.logger.Error("Internal error in product handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
