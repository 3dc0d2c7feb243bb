package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistico-store/backend/internal/catalog"
	"github.com/mistico-store/backend/internal/domain"
)

type catalogMock struct {
	products []domain.Product
	err      error
}

func (c *catalogMock) ListAll(context.Context) ([]domain.Product, error) {
	return c.products, c.err
}

func (c *catalogMock) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	for _, p := range c.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, catalog.ErrProductNotFound
}

func productRouter(source catalog.Source) http.Handler {
	r := chi.NewRouter()
	handler := NewProductHandler(source)
	r.Get("/products", handler.ListProducts)
	r.Get("/products/{product_id}", handler.GetProduct)
	return r
}

func TestListProducts(t *testing.T) {
	source := &catalogMock{products: []domain.Product{
		{ID: "1", Name: "Laptop Gaming", Price: 1200},
		{ID: "2", Name: "Smartphone", Price: 599},
	}}

	recorder := httptest.NewRecorder()
	productRouter(source).ServeHTTP(recorder, httptest.NewRequest("GET", "/products", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response ProductListResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Len(t, response.Products, 2)
}

func TestListProducts_EmptyIsAnArray(t *testing.T) {
	recorder := httptest.NewRecorder()
	productRouter(&catalogMock{}).ServeHTTP(recorder, httptest.NewRequest("GET", "/products", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"products":[]}`, recorder.Body.String())
}

func TestGetProduct(t *testing.T) {
	source := &catalogMock{products: []domain.Product{
		{ID: "1", Name: "Laptop Gaming", Price: 1200},
	}}

	recorder := httptest.NewRecorder()
	productRouter(source).ServeHTTP(recorder, httptest.NewRequest("GET", "/products/1", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "Laptop Gaming", response.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	recorder := httptest.NewRecorder()
	productRouter(&catalogMock{}).ServeHTTP(recorder, httptest.NewRequest("GET", "/products/999", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
