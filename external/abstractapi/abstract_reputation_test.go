package abstractapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"SareeStoreAPI/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T, status int, body string) *AbstractReputationValidator {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	v, err := NewAbstractReputationValidator("test-key")
	require.NoError(t, err)
	v.endpoint = srv.URL + "/v1/"
	return v
}

func TestNewAbstractReputationValidator_RequiresKey(t *testing.T) {
	_, err := NewAbstractReputationValidator("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name         string
		status       int
		body         string
		wantErr      bool
		wantRejected bool
	}{
		{name: "Good address", status: http.StatusOK, body: `{"email_reputation":"HIGH"}`},
		{name: "Disposable", status: http.StatusOK, body: `{"is_disposable_email":true}`, wantErr: true, wantRejected: true},
		{name: "Role address", status: http.StatusOK, body: `{"is_role_email":true}`, wantErr: true, wantRejected: true},
		{name: "Low reputation", status: http.StatusOK, body: `{"email_reputation":"LOW"}`, wantErr: true, wantRejected: true},
		{name: "Service outage", status: http.StatusBadGateway, body: ``, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestValidator(t, tc.status, tc.body)
			err := v.Validate(context.Background(), "someone@example.com")
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantRejected, errors.Is(err, services.ErrEmailRejected))
		})
	}
}
