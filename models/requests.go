package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// LoginRequest carries the credentials of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the new account data of POST /api/users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the caller's own profile changes.
// Empty fields keep their current values.
type UpdateProfileRequest struct {
	UserID   primitive.ObjectID `json:"-"`
	Name     string             `json:"name,omitempty"`
	Email    string             `json:"email,omitempty"`
	Password string             `json:"password,omitempty"`
}

// UpdateUserRequest carries an administrative update of any user.
// Empty Name/Email keep their current values while IsAdmin is always applied.
type UpdateUserRequest struct {
	UserID  primitive.ObjectID `json:"-"`
	Name    string             `json:"name,omitempty"`
	Email   string             `json:"email,omitempty"`
	IsAdmin bool               `json:"isAdmin"`
}

// CreateOrderRequest is the checkout payload of POST /api/orders.
// All prices are supplied by the client.
type CreateOrderRequest struct {
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
}

// Payer is the payer block of a payment-provider callback.
type Payer struct {
	EmailAddress string `json:"email_address"`
}

// PaymentCallback is the payment-provider payload of PUT /api/orders/{id}/pay.
type PaymentCallback struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      Payer  `json:"payer"`
}

// Result converts the callback into the [PaymentResult] stored on the order.
func (p PaymentCallback) Result() PaymentResult {
	return PaymentResult{
		ID:           p.ID,
		Status:       p.Status,
		UpdateTime:   p.UpdateTime,
		EmailAddress: p.Payer.EmailAddress,
	}
}
