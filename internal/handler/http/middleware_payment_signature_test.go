package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/utils"
	"github.com/MKhiriev/go-shop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestVerifyPaymentSignature(t *testing.T) {
	const (
		key  = "payment-secret"
		body = `{"id":"PAY-1","status":"COMPLETED","update_time":"2026-04-01T12:00:00Z","payer":{"email_address":"b@x.com"}}`
	)

	tests := []struct {
		name        string
		hasher      *utils.Hasher
		signature   string
		wantStatus  int
		wantMessage string
	}{
		{name: "check disabled", hasher: nil, wantStatus: http.StatusOK},
		{name: "valid signature", hasher: utils.NewHasher(key), signature: utils.NewHasher(key).HexSum([]byte(body)), wantStatus: http.StatusOK},
		{name: "missing signature", hasher: utils.NewHasher(key), wantStatus: http.StatusBadRequest, wantMessage: ErrMissingSignature.Error()},
		{name: "signed with another key", hasher: utils.NewHasher(key), signature: utils.NewHasher("other").HexSum([]byte(body)), wantStatus: http.StatusBadRequest, wantMessage: ErrInvalidSignature.Error()},
		{name: "not hex", hasher: utils.NewHasher(key), signature: "zz", wantStatus: http.StatusBadRequest, wantMessage: ErrInvalidSignature.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{paymentHasher: tt.hasher, logger: logger.Nop()}

			var gotBody string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				raw, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				gotBody = string(raw)
			})

			req := httptest.NewRequest(http.MethodPut, "/api/orders/x/pay", stringsReader(body))
			if tt.signature != "" {
				req.Header.Set(paymentSignatureHeader, tt.signature)
			}
			rr := httptest.NewRecorder()
			h.verifyPaymentSignature(next).ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, rr).Message)
				assert.Empty(t, gotBody)
				return
			}
			assert.Equal(t, body, gotBody, "body restored for the handler")
		})
	}
}

func TestPayOrder_SignatureEnforcedOnRoute(t *testing.T) {
	svcs, _, _, orders := testServices()
	orders.payOrderFn = func(_ context.Context, _ string, _ models.PaymentCallback) (models.Order, error) {
		return models.Order{IsPaid: true}, nil
	}
	router := newTestHandler(t, svcs, config.App{PaymentHashKey: "secret"}, defaultServerConfig()).Init()

	rr := doRequest(t, router, http.MethodPut, "/api/orders/"+testUserID.Hex()+"/pay", userToken, models.PaymentCallback{ID: "PAY-1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerifyPaymentSignature_RejectsOversizeBody(t *testing.T) {
	const key = "payment-secret"
	h := &Handler{paymentHasher: utils.NewHasher(key), logger: logger.Nop()}

	tests := []struct {
		name       string
		size       int
		wantStatus int
	}{
		{name: "at the limit", size: maxCallbackBytes, wantStatus: http.StatusOK},
		{name: "one byte over", size: maxCallbackBytes + 1, wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Repeat("a", tt.size)
			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

			req := httptest.NewRequest(http.MethodPut, "/api/orders/x/pay", stringsReader(body))
			// a signature over the truncated prefix must not pass either
			req.Header.Set(paymentSignatureHeader, utils.NewHasher(key).HexSum([]byte(body[:maxCallbackBytes])))
			rr := httptest.NewRecorder()
			h.verifyPaymentSignature(next).ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, ErrPayloadTooLarge.Error(), decodeMessage(t, rr).Message)
			}
		})
	}
}
