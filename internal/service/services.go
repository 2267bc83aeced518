package service

import (
	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/store"
	"github.com/MKhiriev/go-shop/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	OrderService   OrderService
	AppInfoService AppInfoService
}

// NewServices wires the business services to the repositories. Every
// service that accepts client input is wrapped by its validation layer.
func NewServices(storages *store.Storages, cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg, build, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthValidationService().Wrap(
		NewAuthService(storages.UserRepository, cfg, logger),
	)

	return &Services{
		AuthService: authService,
		UserService: NewUserValidationService().Wrap(
			NewUserService(storages.UserRepository, authService, cfg, logger),
		),
		OrderService: NewOrderValidationService().Wrap(
			NewOrderService(storages.OrderRepository, logger),
		),
		AppInfoService: appInfoService,
	}, nil
}
