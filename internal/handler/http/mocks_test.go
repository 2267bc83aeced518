package http

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/metrics"
	"github.com/MKhiriev/go-shop/internal/service"
	"github.com/MKhiriev/go-shop/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

type mockAuthService struct {
	loginFn       func(ctx context.Context, req models.LoginRequest) (models.UserIdentity, error)
	registerFn    func(ctx context.Context, req models.RegisterRequest) (models.UserIdentity, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.UserIdentity, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.UserIdentity, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockUserService struct {
	getProfileFn    func(ctx context.Context, userID string) (models.UserIdentity, error)
	updateProfileFn func(ctx context.Context, req models.UpdateProfileRequest) (models.UserIdentity, error)
	listUsersFn     func(ctx context.Context) ([]models.User, error)
	getUserFn       func(ctx context.Context, id string) (models.User, error)
	updateUserFn    func(ctx context.Context, req models.UpdateUserRequest) (models.UserIdentity, error)
	deleteUserFn    func(ctx context.Context, id string) error
	isAdminFn       func(ctx context.Context, userID string) (bool, error)
}

func (m *mockUserService) GetProfile(ctx context.Context, userID string) (models.UserIdentity, error) {
	return m.getProfileFn(ctx, userID)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserIdentity, error) {
	return m.updateProfileFn(ctx, req)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listUsersFn(ctx)
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (models.User, error) {
	return m.getUserFn(ctx, id)
}

func (m *mockUserService) UpdateUser(ctx context.Context, req models.UpdateUserRequest) (models.UserIdentity, error) {
	return m.updateUserFn(ctx, req)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id string) error {
	return m.deleteUserFn(ctx, id)
}

func (m *mockUserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if m.isAdminFn == nil {
		return false, nil
	}
	return m.isAdminFn(ctx, userID)
}

type mockOrderService struct {
	createOrderFn    func(ctx context.Context, userID string, req models.CreateOrderRequest) (models.Order, error)
	getOrderFn       func(ctx context.Context, id string) (models.Order, error)
	payOrderFn       func(ctx context.Context, id string, callback models.PaymentCallback) (models.Order, error)
	listUserOrdersFn func(ctx context.Context, userID string) ([]models.Order, error)
	listOrdersFn     func(ctx context.Context) ([]models.Order, error)
	deliverOrderFn   func(ctx context.Context, id string) (models.Order, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, userID string, req models.CreateOrderRequest) (models.Order, error) {
	return m.createOrderFn(ctx, userID, req)
}

func (m *mockOrderService) GetOrder(ctx context.Context, id string) (models.Order, error) {
	return m.getOrderFn(ctx, id)
}

func (m *mockOrderService) PayOrder(ctx context.Context, id string, callback models.PaymentCallback) (models.Order, error) {
	return m.payOrderFn(ctx, id, callback)
}

func (m *mockOrderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return m.listUserOrdersFn(ctx, userID)
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return m.listOrdersFn(ctx)
}

func (m *mockOrderService) DeliverOrder(ctx context.Context, id string) (models.Order, error) {
	return m.deliverOrderFn(ctx, id)
}

type mockAppInfoService struct {
	build models.AppBuildInfo
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.build.Version
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return m.build
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

var (
	testUserID  = primitive.NewObjectID()
	testAdminID = primitive.NewObjectID()
)

// testServices returns services whose auth accepts userToken and adminToken
// and whose admin check recognises testAdminID. Tests override the mock
// functions they exercise.
func testServices() (*service.Services, *mockAuthService, *mockUserService, *mockOrderService) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			switch tokenString {
			case userToken:
				return models.Token{SignedString: tokenString, UserID: testUserID.Hex()}, nil
			case adminToken:
				return models.Token{SignedString: tokenString, UserID: testAdminID.Hex()}, nil
			}
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	users := &mockUserService{
		isAdminFn: func(_ context.Context, userID string) (bool, error) {
			return userID == testAdminID.Hex(), nil
		},
	}
	orders := &mockOrderService{}

	return &service.Services{
		AuthService:    auth,
		UserService:    users,
		OrderService:   orders,
		AppInfoService: &mockAppInfoService{build: models.AppBuildInfo{Version: "1.2.3", BuildDate: "2026-04-01", BuildCommit: "abc123"}},
	}, auth, users, orders
}

func newTestHandler(t *testing.T, services *service.Services, app config.App, server config.Server) *Handler {
	t.Helper()
	if app.Environment == "" {
		app.Environment = config.EnvDevelopment
	}
	return NewHandler(services, metrics.New(), app, server, logger.Nop())
}

func defaultServerConfig() config.Server {
	return config.Server{RequestTimeout: 5 * time.Second}
}
