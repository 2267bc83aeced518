// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a single line of an order. Price and Name are copied from the
// product at checkout time.
type OrderItem struct {
	Name     string             `bson:"name" json:"name"`
	Quantity int                `bson:"qty" json:"qty"`
	Image    string             `bson:"image" json:"image"`
	Price    float64            `bson:"price" json:"price"`
	Product  primitive.ObjectID `bson:"product" json:"product"`
}

// ShippingAddress is the delivery destination of an order.
type ShippingAddress struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// PaymentResult is the payment-provider outcome stored verbatim when an
// order is marked as paid.
type PaymentResult struct {
	ID           string `bson:"id" json:"id"`
	Status       string `bson:"status" json:"status"`
	UpdateTime   string `bson:"update_time" json:"update_time"`
	EmailAddress string `bson:"email_address" json:"email_address"`
}

// OrderOwner is the joined summary of the user that owns an order.
// Which fields are filled depends on the read: the single-order read joins
// name and email, the administrative listing joins only the name.
type OrderOwner struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Email string             `bson:"email,omitempty" json:"email,omitempty"`
}

// Order is a checkout placed by a user.
//
// UserID is a reference to the owning user, never an embedded copy. Reads that
// need the owner's details fill Owner explicitly; in JSON the "user" field is
// then rendered as the owner object instead of the bare id.
type Order struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID primitive.ObjectID `bson:"user" json:"-"`
	Owner  *OrderOwner        `bson:"owner,omitempty" json:"-"`

	OrderItems      []OrderItem     `bson:"orderItems" json:"orderItems"`
	ShippingAddress ShippingAddress `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string          `bson:"paymentMethod" json:"paymentMethod"`
	PaymentResult   *PaymentResult  `bson:"paymentResult,omitempty" json:"paymentResult,omitempty"`

	ItemsPrice    float64 `bson:"itemsPrice" json:"itemsPrice"`
	TaxPrice      float64 `bson:"taxPrice" json:"taxPrice"`
	ShippingPrice float64 `bson:"shippingPrice" json:"shippingPrice"`
	TotalPrice    float64 `bson:"totalPrice" json:"totalPrice"`

	IsPaid      bool       `bson:"isPaid" json:"isPaid"`
	PaidAt      *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsDelivered bool       `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt *time.Time `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TableName returns the name of the collection (or SQL table)
// associated with the Order model.
func (o Order) TableName() string {
	return "orders"
}

// orderJSON has the same fields as Order but none of its methods,
// so it can be embedded without recursing into MarshalJSON.
type orderJSON Order

// MarshalJSON renders the "user" field as the owner object when it was
// joined and as the owner's hex id otherwise.
func (o Order) MarshalJSON() ([]byte, error) {
	var user any = o.UserID
	if o.Owner != nil {
		user = o.Owner
	}

	return json.Marshal(struct {
		orderJSON
		User any `json:"user"`
	}{
		orderJSON: orderJSON(o),
		User:      user,
	})
}

// UnmarshalJSON accepts both renderings of the "user" field produced by
// [Order.MarshalJSON].
func (o *Order) UnmarshalJSON(data []byte) error {
	aux := struct {
		*orderJSON
		User json.RawMessage `json:"user"`
	}{
		orderJSON: (*orderJSON)(o),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.User) == 0 || string(aux.User) == "null" {
		return nil
	}

	if aux.User[0] == '"' {
		var hexID string
		if err := json.Unmarshal(aux.User, &hexID); err != nil {
			return err
		}
		id, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			return fmt.Errorf("invalid order owner id: %w", err)
		}
		o.UserID = id
		return nil
	}

	var owner OrderOwner
	if err := json.Unmarshal(aux.User, &owner); err != nil {
		return err
	}
	o.Owner = &owner
	o.UserID = owner.ID

	return nil
}
