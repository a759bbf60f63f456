package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/refurbmart/storefront/internal/domain"
	"github.com/refurbmart/storefront/internal/service"
	apperrors "github.com/refurbmart/storefront/pkg/errors"
	"github.com/refurbmart/storefront/pkg/httputil"
	"github.com/refurbmart/storefront/pkg/validator"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	products *service.ProductService
	related  *service.RelatedResolver
	logger   *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(products *service.ProductService, related *service.RelatedResolver, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		related:  related,
		logger:   logger,
	}
}

// selectionQuery carries the user's variant selection from query parameters.
// Every axis is optional; an absent axis acts as a wildcard.
type selectionQuery struct {
	Color   string `validate:"omitempty,max=100"`
	RAMGb   *int   `validate:"omitempty,gt=0"`
	Storage string `validate:"omitempty,max=100"`
}

// GetProduct handles GET /api/v1/products/{sku}
//
// Query parameters color, ram_gb and storage select a variant; when none are
// given the product's pre-selected variant (or the first value per axis)
// determines the initial selection.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if sku == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "sku is required"},
		})
		return
	}

	query := selectionQuery{
		Color:   r.URL.Query().Get("color"),
		Storage: r.URL.Query().Get("storage"),
	}
	hasSelection := query.Color != "" || query.Storage != ""

	if v := r.URL.Query().Get("ram_gb"); v != "" {
		ram, err := strconv.Atoi(v)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "ram_gb must be a valid integer"},
			})
			return
		}
		query.RAMGb = &ram
		hasSelection = true
	}

	if err := validator.Validate(query); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	var sel *domain.Selection
	if hasSelection {
		sel = &domain.Selection{RAMGb: query.RAMGb}
		if query.Color != "" {
			sel.Color = &query.Color
		}
		if query.Storage != "" {
			sel.Storage = &query.Storage
		}
	}

	detail, err := h.products.GetDetail(r.Context(), sku, sel)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: detail})
}

// GetRelated handles GET /api/v1/products/{sku}/related
//
// A resolution superseded by a newer one for the same anchor returns an
// empty list rather than an error.
func (h *ProductHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if sku == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "sku is required"},
		})
		return
	}

	result, err := h.related.GetRelated(r.Context(), sku)
	if err != nil {
		if errors.Is(err, apperrors.ErrStaleResult) {
			httputil.WriteJSON(w, http.StatusOK, httputil.Response{
				Data: &domain.RelatedResult{Items: []domain.RelatedProduct{}},
			})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
