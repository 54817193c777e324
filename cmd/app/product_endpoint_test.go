package main

import (
	"net/http"
	"testing"

	"SareeStoreAPI/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productListResponse struct {
	Products []productResponse `json:"products"`
	Count    int64             `json:"count"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct {
		name           string
		query          string
		expectedStatus int
		expectedNames  []string
		expectedCount  int64
	}{
		{name: "Default hides sold out, newest first", query: "", expectedStatus: http.StatusOK, expectedNames: []string{"Banarasi Gold", "Kanjivaram Ruby"}, expectedCount: 2},
		{name: "Category", query: "?category=kanjivaram", expectedStatus: http.StatusOK, expectedNames: []string{"Kanjivaram Ruby"}, expectedCount: 1},
		{name: "Category ignores case", query: "?category=%20Kanjivaram", expectedStatus: http.StatusOK, expectedNames: []string{"Kanjivaram Ruby"}, expectedCount: 1},
		{name: "Search wildcards are literal", query: "?search=_", expectedStatus: http.StatusOK, expectedCount: 0},
		{name: "Price range", query: "?minPrice=10000&maxPrice=20000", expectedStatus: http.StatusOK, expectedNames: []string{"Kanjivaram Ruby"}, expectedCount: 1},
		{name: "Search ignores case", query: "?search=GOLD", expectedStatus: http.StatusOK, expectedNames: []string{"Banarasi Gold"}, expectedCount: 1},
		{name: "Page size", query: "?limit=1&offset=1", expectedStatus: http.StatusOK, expectedNames: []string{"Kanjivaram Ruby"}, expectedCount: 2},
		{name: "Bad price", query: "?minPrice=cheap", expectedStatus: http.StatusBadRequest},
		{name: "Inverted range", query: "?minPrice=20000&maxPrice=1000", expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/products"+tc.query, nil, nil)
			require.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())
			if tc.expectedStatus != http.StatusOK {
				assert.NotEmpty(t, errorMessage(t, rec))
				return
			}
			body := decode[productListResponse](t, rec)
			var names []string
			for _, p := range body.Products {
				names = append(names, p.Name)
			}
			assert.Equal(t, tc.expectedNames, names)
			assert.Equal(t, tc.expectedCount, body.Count)
		})
	}
}

func TestProductDetailAndRelated(t *testing.T) {
	env := newTestEnv(t)
	emerald := env.db.SeedProduct(model.Product{Name: "Kanjivaram Emerald", Price: 18000, Category: "kanjivaram", StockQuantity: 1, InStock: true})

	rec := env.do(t, http.MethodGet, "/api/products/"+env.soldOut.ProductID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[map[string]productResponse](t, rec)["product"]
	assert.Equal(t, env.soldOut.ProductID, p.ID)
	assert.False(t, p.InStock)
	assert.Equal(t, []string{}, p.Images)

	rec = env.do(t, http.MethodGet, "/api/products/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/products/banarasi-gold", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/products/"+env.kanji.ProductID.String()+"/related", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	related := decode[productListResponse](t, rec).Products
	require.Len(t, related, 1)
	assert.Equal(t, emerald.ProductID, related[0].ID)

	rec = env.do(t, http.MethodGet, "/api/products/"+env.banarasi.ProductID.String()+"/related", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[productListResponse](t, rec).Products)

	rec = env.do(t, http.MethodGet, "/api/products/categories", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"banarasi", "kanjivaram"}, decode[map[string][]string](t, rec)["categories"])
}
