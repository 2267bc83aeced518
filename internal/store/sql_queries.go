// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-shop/models"
)

const (
	usersTable  = "users"
	ordersTable = "orders"
)

var userColumns = []string{
	"id",
	"name",
	"email",
	"password",
	"is_admin",
	"created_at",
	"updated_at",
}

var orderColumns = []string{
	"id",
	"user_id",
	"order_items",
	"shipping_address",
	"payment_method",
	"payment_result",
	"items_price",
	"tax_price",
	"shipping_price",
	"total_price",
	"is_paid",
	"paid_at",
	"is_delivered",
	"delivered_at",
	"created_at",
	"updated_at",
}

// ownerJoin selects which columns of the owning user are joined to an order.
type ownerJoin int

const (
	ownerNone ownerJoin = iota
	ownerName
	ownerNameEmail
)

func qualified(table string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = table + "." + c
	}
	return out
}

func buildInsertUserQuery(ph sq.PlaceholderFormat, user models.User) (string, []any, error) {
	return sq.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID.Hex(), user.Name, user.Email, user.Password, user.IsAdmin, user.CreatedAt, user.UpdatedAt).
		PlaceholderFormat(ph).
		ToSql()
}

// buildSelectUserQuery selects one user by an equality on column.
func buildSelectUserQuery(ph sq.PlaceholderFormat, column string, value any) (string, []any, error) {
	return sq.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{column: value}).
		PlaceholderFormat(ph).
		ToSql()
}

// buildSelectAllUsersQuery lists users without the password column.
func buildSelectAllUsersQuery(ph sq.PlaceholderFormat) (string, []any, error) {
	return sq.Select("id", "name", "email", "is_admin", "created_at", "updated_at").
		From(usersTable).
		OrderBy("created_at ASC").
		PlaceholderFormat(ph).
		ToSql()
}

func buildUpdateUserQuery(ph sq.PlaceholderFormat, user models.User, now time.Time) (string, []any, error) {
	return sq.Update(usersTable).
		Set("name", user.Name).
		Set("email", user.Email).
		Set("password", user.Password).
		Set("is_admin", user.IsAdmin).
		Set("updated_at", now).
		Where(sq.Eq{"id": user.ID.Hex()}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildDeleteByIDQuery(ph sq.PlaceholderFormat, table, id string) (string, []any, error) {
	return sq.Delete(table).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildDeleteAllQuery(ph sq.PlaceholderFormat, table string) (string, []any, error) {
	return sq.Delete(table).PlaceholderFormat(ph).ToSql()
}

func buildInsertOrderQuery(ph sq.PlaceholderFormat, order models.Order) (string, []any, error) {
	items, err := json.Marshal(order.OrderItems)
	if err != nil {
		return "", nil, fmt.Errorf("%w: order items: %w", ErrBuildingSQLQuery, err)
	}
	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return "", nil, fmt.Errorf("%w: shipping address: %w", ErrBuildingSQLQuery, err)
	}

	return sq.Insert(ordersTable).
		Columns(orderColumns...).
		Values(
			order.ID.Hex(),
			order.UserID.Hex(),
			string(items),
			string(address),
			order.PaymentMethod,
			nil,
			order.ItemsPrice,
			order.TaxPrice,
			order.ShippingPrice,
			order.TotalPrice,
			false,
			nil,
			false,
			nil,
			order.CreatedAt,
			order.UpdatedAt,
		).
		PlaceholderFormat(ph).
		ToSql()
}

// buildSelectOrdersQuery selects orders matching where (all orders when nil)
// with the requested owner columns joined from users.
func buildSelectOrdersQuery(ph sq.PlaceholderFormat, where sq.Sqlizer, join ownerJoin) (string, []any, error) {
	columns := qualified("o", orderColumns)
	switch join {
	case ownerName:
		columns = append(columns, "u.name")
	case ownerNameEmail:
		columns = append(columns, "u.name", "u.email")
	}

	builder := sq.Select(columns...).From(ordersTable + " o")
	if join != ownerNone {
		builder = builder.LeftJoin(usersTable + " u ON u.id = o.user_id")
	}
	if where != nil {
		builder = builder.Where(where)
	}

	return builder.
		OrderBy("o.created_at ASC").
		PlaceholderFormat(ph).
		ToSql()
}

func buildMarkOrderPaidQuery(ph sq.PlaceholderFormat, id string, result models.PaymentResult, paidAt, now time.Time) (string, []any, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", nil, fmt.Errorf("%w: payment result: %w", ErrBuildingSQLQuery, err)
	}

	return sq.Update(ordersTable).
		Set("is_paid", true).
		Set("paid_at", paidAt).
		Set("payment_result", string(payload)).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildMarkOrderDeliveredQuery(ph sq.PlaceholderFormat, id string, deliveredAt, now time.Time) (string, []any, error) {
	return sq.Update(ordersTable).
		Set("is_delivered", true).
		Set("delivered_at", deliveredAt).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(ph).
		ToSql()
}
