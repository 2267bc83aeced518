package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

const paymentSignatureHeader = "HashSHA256"

// maxCallbackBytes bounds the payment callback body read for verification.
const maxCallbackBytes = 1 << 20

// verifyPaymentSignature checks the HMAC-SHA256 of the raw callback body
// against the HashSHA256 header. It is a no-op when no payment hash key is
// configured. The body is restored for the next handler.
func (h *Handler) verifyPaymentSignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.paymentHasher == nil {
			next.ServeHTTP(w, r)
			return
		}

		signature := r.Header.Get(paymentSignatureHeader)
		if signature == "" {
			h.writeError(w, r, ErrMissingSignature)
			return
		}

		// one byte past the limit tells an oversize body from one that fits
		body, err := io.ReadAll(io.LimitReader(r.Body, maxCallbackBytes+1))
		if err != nil {
			h.writeError(w, r, fmt.Errorf("failed to read payment callback: %w", err))
			return
		}
		if len(body) > maxCallbackBytes {
			h.writeError(w, r, ErrPayloadTooLarge)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !h.paymentHasher.Verify(body, signature) {
			h.writeError(w, r, ErrInvalidSignature)
			return
		}

		next.ServeHTTP(w, r)
	})
}
