package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// orderRepository is the SQL implementation of [OrderRepository] over the
// "orders" table. Owners are joined from "users" with a LEFT JOIN.
type orderRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewOrderRepository constructs an [OrderRepository] backed by db.
func NewOrderRepository(db *DB, logger *logger.Logger) OrderRepository {
	logger.Debug().Msg("creating order repository")
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	order.ID = primitive.NewObjectID()
	order.Owner = nil
	order.PaymentResult = nil
	order.IsPaid, order.PaidAt = false, nil
	order.IsDelivered, order.DeliveredAt = false, nil
	order.CreatedAt = now
	order.UpdatedAt = now

	query, args, err := buildInsertOrderQuery(r.db.format(), order)
	if err != nil {
		return models.Order{}, err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*orderRepository.CreateOrder").Str("user_id", order.UserID.Hex()).Msg("error inserting order")
		return models.Order{}, r.db.translate(err, nil)
	}

	return order, nil
}

func (r *orderRepository) FindOrderByID(ctx context.Context, id string) (models.Order, error) {
	if !primitive.IsValidObjectID(id) {
		return models.Order{}, ErrOrderNotFound
	}
	return r.findOne(ctx, id, ownerNameEmail)
}

func (r *orderRepository) findOne(ctx context.Context, id string, join ownerJoin) (models.Order, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectOrdersQuery(r.db.format(), sq.Eq{"o.id": id}, join)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, args...), join)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.findOne").Str("order_id", id).Msg("error finding order")
		if errors.Is(err, ErrDecodingDocument) {
			return models.Order{}, err
		}
		return models.Order{}, r.db.translate(err, nil)
	}

	return order, nil
}

func (r *orderRepository) FindOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	if !primitive.IsValidObjectID(userID) {
		return []models.Order{}, nil
	}
	return r.list(ctx, sq.Eq{"o.user_id": userID}, ownerNone)
}

func (r *orderRepository) FindAllOrders(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, nil, ownerName)
}

func (r *orderRepository) list(ctx context.Context, where sq.Sqlizer, join ownerJoin) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectOrdersQuery(r.db.format(), where, join)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*orderRepository.list").Msg("error executing query")
		return nil, r.db.translate(err, nil)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows, join)
		if err != nil {
			log.Err(err).Str("func", "*orderRepository.list").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return orders, nil
}

func (r *orderRepository) MarkOrderPaid(ctx context.Context, id string, result models.PaymentResult, paidAt time.Time) (models.Order, error) {
	if !primitive.IsValidObjectID(id) {
		return models.Order{}, ErrOrderNotFound
	}

	query, args, err := buildMarkOrderPaidQuery(r.db.format(), id, result, paidAt, time.Now().UTC())
	if err != nil {
		return models.Order{}, err
	}
	return r.update(ctx, "*orderRepository.MarkOrderPaid", id, query, args)
}

func (r *orderRepository) MarkOrderDelivered(ctx context.Context, id string, deliveredAt time.Time) (models.Order, error) {
	if !primitive.IsValidObjectID(id) {
		return models.Order{}, ErrOrderNotFound
	}

	query, args, err := buildMarkOrderDeliveredQuery(r.db.format(), id, deliveredAt, time.Now().UTC())
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.update(ctx, "*orderRepository.MarkOrderDelivered", id, query, args)
}

// update runs a single UPDATE statement and reads the order back.
func (r *orderRepository) update(ctx context.Context, fn, id, query string, args []any) (models.Order, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Str("order_id", id).Msg("error updating order")
		return models.Order{}, r.db.translate(err, nil)
	}
	if err = requireAffected(res, ErrOrderNotFound); err != nil {
		return models.Order{}, err
	}

	return r.findOne(ctx, id, ownerNone)
}

func (r *orderRepository) DeleteAllOrders(ctx context.Context) error {
	query, args, err := buildDeleteAllQuery(r.db.format(), ordersTable)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return r.db.translate(err, nil)
	}
	return nil
}
