package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mistico-store/backend/internal/catalog"
	"github.com/mistico-store/backend/internal/domain"
)

type ProductHandler struct {
	catalog catalog.Source
}

func NewProductHandler(source catalog.Source) *ProductHandler {
	return &ProductHandler{catalog: source}
}

type ProductListResponse struct {
	Products []domain.Product `json:"products"`
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, ProductListResponse{Products: products})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.catalog.GetByID(r.Context(), productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}
