package validators

import (
	"context"

	"github.com/MKhiriev/go-shop/models"
)

// Field name constants for order-related validation.
const (
	// FieldOrderItems requires a non-empty list of line items.
	FieldOrderItems = "order_items"

	// FieldOrderItemsContent checks quantity and product of every line item.
	FieldOrderItemsContent = "order_items_content"

	// FieldPrices rejects negative price components.
	FieldPrices = "prices"
)

// OrderValidator implements Validator for order creation requests and order
// ids. Payment callbacks are stored verbatim and are not validated.
type OrderValidator struct {
}

// NewOrderValidator constructs an OrderValidator and returns it as a Validator.
func NewOrderValidator() Validator {
	return &OrderValidator{}
}

func (v *OrderValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateOrderRequest:
		return v.validateCreateOrderRequest(ctx, value, fields...)
	case *models.CreateOrderRequest:
		return v.validateCreateOrderRequest(ctx, *value, fields...)

	case string:
		return validateID(value)

	default:
		return ErrUnsupportedType
	}
}

// validateCreateOrderRequest checks, by default, that items are present,
// that each item is well formed and that no price is negative. Price totals
// are not recomputed.
func (v *OrderValidator) validateCreateOrderRequest(_ context.Context, req models.CreateOrderRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOrderItems, FieldOrderItemsContent, FieldPrices}
	}

	for _, f := range fields {
		switch f {
		case FieldOrderItems:
			if len(req.OrderItems) == 0 {
				return ErrEmptyOrderItems
			}
		case FieldOrderItemsContent:
			for _, item := range req.OrderItems {
				if item.Quantity < 1 {
					return ErrInvalidQuantity
				}
				if item.Product.IsZero() {
					return ErrInvalidProduct
				}
				if item.Price < 0 {
					return ErrNegativePrice
				}
			}
		case FieldPrices:
			if req.ItemsPrice < 0 || req.TaxPrice < 0 || req.ShippingPrice < 0 || req.TotalPrice < 0 {
				return ErrNegativePrice
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
