package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/utils"
	"github.com/MKhiriev/go-shop/models"
	"github.com/go-resty/resty/v2"
)

type httpShopClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	// signs payment callbacks; nil when no key is configured
	paymentHasher *utils.Hasher

	logger *logger.Logger
}

// paymentSignatureHeader carries the hex HMAC-SHA256 of a payment callback.
const paymentSignatureHeader = "HashSHA256"

// NewHTTPShopClient constructs the HTTP implementation of [ShopClient].
// The base URL is taken from cfg.HTTPAddress; a bare host:port gets the http
// scheme. A token configured in cfg.Token is used until Login replaces it.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed.
func NewHTTPShopClient(cfg config.Adapter, logger *logger.Logger) (ShopClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	c := &httpShopClient{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	c.SetToken(cfg.Token)
	if cfg.PaymentHashKey != "" {
		c.paymentHasher = utils.NewHasher(cfg.PaymentHashKey)
	}

	return c, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpShopClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpShopClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpShopClient) Login(ctx context.Context, req models.LoginRequest) (models.UserIdentity, error) {
	var identity models.UserIdentity

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&identity).
		Post("/api/users/login")
	if err != nil {
		return models.UserIdentity{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserIdentity{}, err
	}

	h.SetToken(identity.Token)
	h.logger.Debug().Str("user_id", identity.ID.Hex()).Msg("logged in")
	return identity, nil
}

func (h *httpShopClient) Profile(ctx context.Context) (models.UserIdentity, error) {
	var identity models.UserIdentity
	if err := h.get(ctx, "/api/users/profile", &identity); err != nil {
		return models.UserIdentity{}, fmt.Errorf("get profile: %w", err)
	}
	return identity, nil
}

func (h *httpShopClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := h.get(ctx, "/api/users", &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (h *httpShopClient) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := h.get(ctx, "/api/orders", &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (h *httpShopClient) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := h.get(ctx, "/api/orders/myorders", &orders); err != nil {
		return nil, fmt.Errorf("list my orders: %w", err)
	}
	return orders, nil
}

func (h *httpShopClient) GetOrder(ctx context.Context, id string) (models.Order, error) {
	if id = strings.TrimSpace(id); id == "" {
		return models.Order{}, ErrEmptyID
	}

	var order models.Order
	if err := h.get(ctx, "/api/orders/"+url.PathEscape(id), &order); err != nil {
		return models.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return order, nil
}

func (h *httpShopClient) DeliverOrder(ctx context.Context, id string) (models.Order, error) {
	if id = strings.TrimSpace(id); id == "" {
		return models.Order{}, ErrEmptyID
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Order{}, err
	}

	var order models.Order
	resp, err := req.
		SetResult(&order).
		Put("/api/orders/" + url.PathEscape(id) + "/deliver")
	if err != nil {
		return models.Order{}, fmt.Errorf("deliver order request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Order{}, fmt.Errorf("deliver order %s: %w", id, err)
	}

	return order, nil
}

func (h *httpShopClient) PayOrder(ctx context.Context, id string, callback models.PaymentCallback) (models.Order, error) {
	if id = strings.TrimSpace(id); id == "" {
		return models.Order{}, ErrEmptyID
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Order{}, err
	}

	// the signature covers the exact bytes on the wire
	body, err := json.Marshal(callback)
	if err != nil {
		return models.Order{}, fmt.Errorf("encode payment callback: %w", err)
	}
	req.SetHeader("Content-Type", "application/json").SetBody(body)
	if h.paymentHasher != nil {
		req.SetHeader(paymentSignatureHeader, h.paymentHasher.HexSum(body))
	}

	var order models.Order
	resp, err := req.
		SetResult(&order).
		Put("/api/orders/" + url.PathEscape(id) + "/pay")
	if err != nil {
		return models.Order{}, fmt.Errorf("pay order request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Order{}, fmt.Errorf("pay order %s: %w", id, err)
	}

	h.logger.Debug().Str("order_id", id).Bool("signed", h.paymentHasher != nil).Msg("payment callback sent")
	return order, nil
}

func (h *httpShopClient) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/api/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}

	return info, nil
}

func (h *httpShopClient) get(ctx context.Context, path string, result any) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetResult(result).Get(path)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpShopClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}
