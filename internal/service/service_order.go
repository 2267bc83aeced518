package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/store"
	"github.com/MKhiriev/go-shop/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type orderService struct {
	orderRepository store.OrderRepository
	now             func() time.Time

	logger *logger.Logger
}

func NewOrderService(orderRepository store.OrderRepository, logger *logger.Logger) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		now:             func() time.Time { return time.Now().UTC() },
		logger:          logger,
	}
}

// CreateOrder stores the checkout as submitted. Prices are not recomputed.
func (s *orderService) CreateOrder(ctx context.Context, userID string, req models.CreateOrderRequest) (models.Order, error) {
	log := logger.FromContext(ctx)

	if len(req.OrderItems) == 0 {
		return models.Order{}, ErrNoOrderItems
	}

	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}

	order, err := s.orderRepository.CreateOrder(ctx, models.Order{
		UserID:          owner,
		OrderItems:      req.OrderItems,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
	})
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("order creation failed")
		return models.Order{}, mapStoreError(err)
	}

	log.Info().Str("order_id", order.ID.Hex()).Str("user_id", userID).Msg("order created")
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (models.Order, error) {
	order, err := s.orderRepository.FindOrderByID(ctx, id)
	if err != nil {
		return models.Order{}, mapStoreError(err)
	}
	return order, nil
}

func (s *orderService) PayOrder(ctx context.Context, id string, callback models.PaymentCallback) (models.Order, error) {
	order, err := s.orderRepository.MarkOrderPaid(ctx, id, callback.Result(), s.now())
	if err != nil {
		return models.Order{}, mapStoreError(err)
	}

	logger.FromContext(ctx).Info().Str("order_id", id).Str("payment_id", callback.ID).Msg("order paid")
	return order, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepository.FindOrdersByUser(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return orders, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepository.FindAllOrders(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return orders, nil
}

func (s *orderService) DeliverOrder(ctx context.Context, id string) (models.Order, error) {
	order, err := s.orderRepository.MarkOrderDelivered(ctx, id, s.now())
	if err != nil {
		return models.Order{}, mapStoreError(err)
	}

	logger.FromContext(ctx).Info().Str("order_id", id).Msg("order delivered")
	return order, nil
}
