package main

import (
	"net/http"
	"testing"

	"SareeStoreAPI/internal/cart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartBodyResponse struct {
	Items    []cart.Item `json:"items"`
	Count    int         `json:"count"`
	Subtotal float64     `json:"subtotal"`
	Added    *bool       `json:"added"`
}

func TestCart_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/cart", nil, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing X-Cart-Session header", errorMessage(t, rec))
}

func TestCart_Flow(t *testing.T) {
	env := newTestEnv(t)
	session := map[string]string{cartSessionHeader: "sess-1"}

	rec := env.do(t, http.MethodPost, "/api/cart/items", addCartItemRequest{ProductID: env.kanji.ProductID}, session)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[cartBodyResponse](t, rec)
	require.NotNil(t, body.Added)
	assert.True(t, *body.Added)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "https://cdn.example.com/ruby.jpg", body.Items[0].Image)

	// a saree is one of a kind, adding it twice is a no-op
	rec = env.do(t, http.MethodPost, "/api/cart/items", addCartItemRequest{ProductID: env.kanji.ProductID}, session)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode[cartBodyResponse](t, rec)
	assert.False(t, *body.Added)
	assert.Equal(t, 1, body.Count)

	rec = env.do(t, http.MethodPost, "/api/cart/items", addCartItemRequest{ProductID: env.banarasi.ProductID}, session)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cart", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode[cartBodyResponse](t, rec)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 24000.0, body.Subtotal)

	rec = env.do(t, http.MethodGet, "/api/cart", nil, map[string]string{cartSessionHeader: "sess-2"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[cartBodyResponse](t, rec).Count)

	rec = env.do(t, http.MethodDelete, "/api/cart/items/"+env.kanji.ProductID.String(), nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[cartBodyResponse](t, rec).Count)

	rec = env.do(t, http.MethodDelete, "/api/cart", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cart", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[cartBodyResponse](t, rec).Count)
}

func TestCart_AddRejections(t *testing.T) {
	env := newTestEnv(t)
	session := map[string]string{cartSessionHeader: "sess-1"}

	testCases := []struct {
		name           string
		productID      uuid.UUID
		expectedStatus int
	}{
		{name: "Missing product id", productID: uuid.Nil, expectedStatus: http.StatusBadRequest},
		{name: "Unknown product", productID: uuid.New(), expectedStatus: http.StatusNotFound},
		{name: "Sold out", productID: env.soldOut.ProductID, expectedStatus: http.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/cart/items", addCartItemRequest{ProductID: tc.productID}, session)
			assert.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())
		})
	}
}
