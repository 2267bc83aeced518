package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/service"
	"github.com/MKhiriev/go-shop/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "invalid credentials", err: service.ErrInvalidEmailOrPassword, wantStatus: http.StatusUnauthorized, wantMessage: "Invalid Email or Password"},
		{name: "wrapped not found", err: fmt.Errorf("%w: %w", service.ErrUserNotFound, store.ErrUserNotFound), wantStatus: http.StatusNotFound, wantMessage: "User Not Found"},
		{name: "duplicate user is 400", err: service.ErrUserAlreadyExists, wantStatus: http.StatusBadRequest, wantMessage: "User Already Exists"},
		{name: "not admin", err: service.ErrNotAdmin, wantStatus: http.StatusForbidden, wantMessage: "Not authorized as an admin"},
		{name: "throttled", err: ErrTooManyRequests, wantStatus: http.StatusTooManyRequests, wantMessage: "Too many requests, please try again later"},
		{name: "store error alone", err: store.ErrStorageUnavailable, wantStatus: http.StatusInternalServerError, wantMessage: "Internal Server Error"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMessage: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestErrorStack(t *testing.T) {
	base := errors.New("connection refused")
	err := fmt.Errorf("%w: %w", service.ErrOrderNotFound, fmt.Errorf("lookup: %w", base))

	assert.Equal(t,
		"Order Not Found: lookup: connection refused\nOrder Not Found\nlookup: connection refused\nconnection refused",
		errorStack(err))
	assert.Empty(t, errorStack(nil))
}

func TestWriteError_StackOnlyOutsideProduction(t *testing.T) {
	err := fmt.Errorf("%w: %w", service.ErrOrderNotFound, store.ErrOrderNotFound)

	for _, production := range []bool{false, true} {
		h := &Handler{production: production, logger: logger.Nop()}

		rr := httptest.NewRecorder()
		h.writeError(rr, httptest.NewRequest(http.MethodGet, "/api/orders/x", nil), err)

		require.Equal(t, http.StatusNotFound, rr.Code)
		msg := decodeMessage(t, rr)
		assert.Equal(t, "Order Not Found", msg.Message)
		if production {
			assert.Empty(t, msg.Stack)
		} else {
			assert.Contains(t, msg.Stack, store.ErrOrderNotFound.Error())
		}
	}
}
