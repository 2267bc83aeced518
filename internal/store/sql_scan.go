package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-shop/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func parseObjectID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q: %w", ErrDecodingDocument, raw, err)
	}
	return id, nil
}

// scanUser reads a row produced from userColumns.
func scanUser(row rowScanner) (models.User, error) {
	var (
		user models.User
		id   string
	)
	if err := row.Scan(&id, &user.Name, &user.Email, &user.Password, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return models.User{}, err
	}

	oid, err := parseObjectID(id)
	if err != nil {
		return models.User{}, err
	}
	user.ID = oid

	return user, nil
}

// scanUserListing reads a row produced by buildSelectAllUsersQuery.
func scanUserListing(row rowScanner) (models.User, error) {
	var (
		user models.User
		id   string
	)
	if err := row.Scan(&id, &user.Name, &user.Email, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return models.User{}, err
	}

	oid, err := parseObjectID(id)
	if err != nil {
		return models.User{}, err
	}
	user.ID = oid

	return user, nil
}

// scanOrder reads a row produced from orderColumns followed by the owner
// columns selected by join. JSON columns are decoded into their models.
func scanOrder(row rowScanner, join ownerJoin) (models.Order, error) {
	var (
		order                   models.Order
		id, userID              string
		items, address, payment []byte
		paidAt, deliveredAt     sql.NullTime
		joinedName, joinedEmail sql.NullString
	)

	dest := []any{
		&id, &userID, &items, &address, &order.PaymentMethod, &payment,
		&order.ItemsPrice, &order.TaxPrice, &order.ShippingPrice, &order.TotalPrice,
		&order.IsPaid, &paidAt, &order.IsDelivered, &deliveredAt,
		&order.CreatedAt, &order.UpdatedAt,
	}
	switch join {
	case ownerName:
		dest = append(dest, &joinedName)
	case ownerNameEmail:
		dest = append(dest, &joinedName, &joinedEmail)
	}

	if err := row.Scan(dest...); err != nil {
		return models.Order{}, err
	}

	var err error
	if order.ID, err = parseObjectID(id); err != nil {
		return models.Order{}, err
	}
	if order.UserID, err = parseObjectID(userID); err != nil {
		return models.Order{}, err
	}

	if err = json.Unmarshal(items, &order.OrderItems); err != nil {
		return models.Order{}, fmt.Errorf("%w: order items: %w", ErrDecodingDocument, err)
	}
	if err = json.Unmarshal(address, &order.ShippingAddress); err != nil {
		return models.Order{}, fmt.Errorf("%w: shipping address: %w", ErrDecodingDocument, err)
	}
	if len(payment) > 0 && string(payment) != "null" {
		var result models.PaymentResult
		if err = json.Unmarshal(payment, &result); err != nil {
			return models.Order{}, fmt.Errorf("%w: payment result: %w", ErrDecodingDocument, err)
		}
		order.PaymentResult = &result
	}

	if paidAt.Valid {
		t := paidAt.Time
		order.PaidAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		order.DeliveredAt = &t
	}

	// a dangling reference keeps the bare id
	if joinedName.Valid {
		order.Owner = &models.OrderOwner{
			ID:    order.UserID,
			Name:  joinedName.String,
			Email: joinedEmail.String,
		}
	}

	return order, nil
}
