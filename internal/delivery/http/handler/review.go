package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	validate "github.com/go-playground/validator/v10"

	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/middleware"
	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/request"
	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/response"
	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/logger"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/validator"
	"github.com/SaiDecoratives/templehub-catalog/internal/usecase/review"
)

// ReviewHandler handles HTTP requests for product reviews
type ReviewHandler struct {
	service *review.Service
	logger  *logger.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service *review.Service, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  log,
	}
}

// AddReviewRequest represents the request body for posting a review.
// Rating accepts any numeric value, zero included.
type AddReviewRequest struct {
	Name    string  `json:"name" validate:"required,min=3"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment" validate:"required,min=3"`
}

// Add handles PUT /products/review/:id
// @Summary Add a review to a product
// @Description The caller's delivered orders must contain the product id; otherwise the review is rejected as a business-rule failure.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param review body AddReviewRequest true "Review details"
// @Success 200 {object} response.Envelope "Updated product"
// @Failure 400 {object} response.Envelope "Validation failure or product not in delivered orders"
// @Failure 404 {object} response.Envelope "Product not found"
// @Security BearerAuth
// @Router /products/review/{id} [put]
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID, err := request.GetUUIDParam(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	var req AddReviewRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validator.Get().Struct(req); err != nil {
		response.ValidationErrors(w, fieldErrors(err))
		return
	}

	product, err := h.service.Add(r.Context(), userID, productID, domain.Review{
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.ProductMessage(w, "Review added", productView(r, product))
}

// fieldErrors flattens validator errors into the field-level list the
// storefront renders next to the form inputs.
func fieldErrors(err error) []response.FieldError {
	var verrs validate.ValidationErrors
	if !errors.As(err, &verrs) {
		return []response.FieldError{{Field: "body", Message: "invalid request"}}
	}

	out := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("Enter a valid %s", field)
		case "min":
			msg = fmt.Sprintf("Enter a valid %s of minimum %s characters", field, fe.Param())
		default:
			msg = fmt.Sprintf("Invalid value for %s", field)
		}
		out = append(out, response.FieldError{Field: field, Message: msg})
	}
	return out
}

func (h *ReviewHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotDelivered):
		response.JSON(w, http.StatusBadRequest, response.Envelope{
			Success: false,
			Message: "Product not found in user's delivered orders",
		})
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	default:
		h.logger.Error("Internal error in review handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
