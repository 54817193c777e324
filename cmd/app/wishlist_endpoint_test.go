package main

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct {
		name          string
		headers       map[string]string
		expectedError string
	}{
		{name: "No header", expectedError: "missing authorization header"},
		{name: "Garbage token", headers: map[string]string{"Authorization": "Bearer nope"}, expectedError: "invalid or expired token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/wishlist", nil, tc.headers)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.expectedError, errorMessage(t, rec))
		})
	}
}

func TestWishlist_Flow(t *testing.T) {
	env := newTestEnv(t)
	auth := env.token(t, "meera@example.com", false)
	body := addWishlistRequest{ProductID: env.kanji.ProductID}

	rec := env.do(t, http.MethodPost, "/api/wishlist", body, auth)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, env.kanji.ProductID, decode[wishlistItemResponse](t, rec).ProductID)

	rec = env.do(t, http.MethodPost, "/api/wishlist", body, auth)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/wishlist", addWishlistRequest{ProductID: uuid.New()}, auth)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/wishlist", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[map[string][]wishlistItemResponse](t, rec)["items"]
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Kanjivaram Ruby", items[0].Product.Name)

	// another user sees their own empty list
	rec = env.do(t, http.MethodGet, "/api/wishlist", nil, env.token(t, "other@example.com", false))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[map[string][]wishlistItemResponse](t, rec)["items"])

	for range 2 {
		rec = env.do(t, http.MethodDelete, "/api/wishlist?productId="+env.kanji.ProductID.String(), nil, auth)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decode[map[string]bool](t, rec)["success"])
	}

	rec = env.do(t, http.MethodDelete, "/api/wishlist?productId=abc", nil, auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
