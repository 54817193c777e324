package main

import (
	"net/http"
	"testing"

	"SareeStoreAPI/internal/events"
	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderPayload(state string, items ...model.Product) createOrderRequest {
	req := createOrderRequest{
		ShippingAddress: shippingAddressRequest{
			FullName:     "Lakshmi Iyer",
			Email:        "lakshmi@example.com",
			Phone:        "9876543210",
			AddressLine1: "12 Temple Street",
			City:         "Chennai",
			State:        state,
			PostalCode:   "600004",
			Country:      "India",
		},
	}
	for _, p := range items {
		req.Items = append(req.Items, orderItemRequest{ProductID: p.ProductID, Name: p.Name, Price: p.Price})
	}
	return req
}

type createdOrder struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/orders", orderPayload("Tamil Nadu", env.kanji, env.banarasi), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[createdOrder](t, rec)
	assert.NotEqual(t, uuid.Nil, created.OrderID)
	assert.Regexp(t, `^ORD-\d+-[A-Z0-9]{9}$`, created.OrderNumber)

	rec = env.do(t, http.MethodGet, "/api/orders/"+created.OrderID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	detail := decode[orderDetailResponse](t, rec)

	assert.Equal(t, created.OrderNumber, detail.OrderNumber)
	assert.Equal(t, 24000.0, detail.Subtotal)
	assert.Equal(t, 150.0, detail.ShippingCost)
	assert.Equal(t, 24150.0, detail.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, detail.Status)
	assert.Equal(t, model.PaymentStatusPending, detail.PaymentStatus)
	assert.Equal(t, "lakshmi@example.com", detail.Customer.Email)
	assert.Equal(t, "Tamil Nadu", detail.ShippingAddress.State)
	require.Len(t, detail.Items, 2)

	var sum float64
	for _, it := range detail.Items {
		assert.Equal(t, 1, it.Quantity)
		assert.Equal(t, it.UnitPrice, it.TotalPrice)
		sum += it.UnitPrice
	}
	assert.Equal(t, detail.TotalAmount, sum+detail.ShippingCost)

	rec = env.do(t, http.MethodGet, "/api/orders/track/"+created.OrderNumber, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.OrderID, decode[orderDetailResponse](t, rec).ID)

	rec = env.do(t, http.MethodGet, "/api/orders?email=LAKSHMI@example.com", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[map[string][]orderResponse](t, rec)["orders"], 1)

	evs := env.events.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.OrderCreated, evs[0].Type)
	assert.Equal(t, created.OrderNumber, evs[0].OrderNumber)
}

func TestCreateOrder_RollsBackWhenItemsFail(t *testing.T) {
	env := newTestEnv(t)
	env.db.FailItemInsert = memstore.ErrForced
	headers := map[string]string{idempotencyKeyHeader: "checkout-1"}

	rec := env.do(t, http.MethodPost, "/api/orders", orderPayload("Tamil Nadu", env.kanji), headers)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	customers, addresses, orders, items := env.db.Counts()
	assert.Zero(t, customers)
	assert.Zero(t, addresses)
	assert.Zero(t, orders)
	assert.Zero(t, items)
	assert.Empty(t, env.events.Events())

	rec = env.do(t, http.MethodGet, "/api/orders?email=lakshmi@example.com", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[map[string][]orderResponse](t, rec)["orders"])

	// the key is released, so the same request succeeds once storage recovers
	env.db.FailItemInsert = nil
	rec = env.do(t, http.MethodPost, "/api/orders", orderPayload("Tamil Nadu", env.kanji), headers)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestCreateOrder_Errors(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct {
		name           string
		payload        createOrderRequest
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "No shipping zone for state",
			payload:        orderPayload("Assam", env.kanji),
			expectedStatus: http.StatusNotFound,
			expectedError:  "shipping not available for this location",
		},
		{
			name:           "Empty cart",
			payload:        orderPayload("Tamil Nadu"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Out of stock item",
			payload:        orderPayload("Tamil Nadu", env.soldOut),
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Invalid postal code",
			payload: func() createOrderRequest {
				p := orderPayload("Tamil Nadu", env.kanji)
				p.ShippingAddress.PostalCode = "6000"
				return p
			}(),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/orders", tc.payload, nil)

			assert.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())
			msg := errorMessage(t, rec)
			assert.NotEmpty(t, msg)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, msg)
			}
		})
	}

	_, _, orders, _ := env.db.Counts()
	assert.Zero(t, orders)
}

func TestCreateOrder_IdempotencyKeyReplay(t *testing.T) {
	env := newTestEnv(t)
	headers := map[string]string{idempotencyKeyHeader: "same-key"}

	rec := env.do(t, http.MethodPost, "/api/orders", orderPayload("Kerala", env.banarasi), headers)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/orders", orderPayload("Kerala", env.banarasi), headers)
	assert.Equal(t, http.StatusConflict, rec.Code)

	_, _, orders, _ := env.db.Counts()
	assert.Equal(t, 1, orders)
}

func TestGetOrder_NotFoundAndBadID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/orders/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/orders/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/orders/track/ORD-0-NOPE", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
