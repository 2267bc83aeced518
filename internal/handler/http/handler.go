package http

import (
	"time"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/metrics"
	"github.com/MKhiriev/go-shop/internal/service"
	"github.com/MKhiriev/go-shop/internal/utils"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	// credentialLimiter throttles login and register per client IP.
	// Nil disables throttling.
	credentialLimiter *ipRateLimiter

	// paymentHasher verifies payment callback signatures.
	// Nil disables the check.
	paymentHasher *utils.Hasher

	traceIDs       *utils.UUIDGenerator
	requestTimeout time.Duration
	production     bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, app config.App, server config.Server, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		metrics:        m,
		traceIDs:       utils.NewUUIDGenerator(),
		requestTimeout: server.RequestTimeout,
		production:     app.IsProduction(),
		logger:         logger,
	}

	if server.RateLimit > 0 {
		h.credentialLimiter = newIPRateLimiter(server.RateLimit, server.RateBurst)
	}
	if app.PaymentHashKey != "" {
		h.paymentHasher = utils.NewHasher(app.PaymentHashKey)
	}

	logger.Info().
		Bool("rate_limit", h.credentialLimiter != nil).
		Bool("payment_signature", h.paymentHasher != nil).
		Msg("http handler created")
	return h
}
