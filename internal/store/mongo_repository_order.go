package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoOrderRepository is the MongoDB-backed implementation of
// [OrderRepository] over the "orders" collection. Owner details are joined
// from "users" with $lookup.
type mongoOrderRepository struct {
	db     *MongoDB
	logger *logger.Logger
}

// NewMongoOrderRepository constructs an [OrderRepository] backed by db.
func NewMongoOrderRepository(db *MongoDB, logger *logger.Logger) OrderRepository {
	logger.Debug().Msg("creating mongo order repository")
	return &mongoOrderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *mongoOrderRepository) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	order.ID = primitive.NewObjectID()
	order.Owner = nil
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.db.orders().InsertOne(ctx, order); err != nil {
		log.Err(err).Str("func", "*mongoOrderRepository.CreateOrder").Str("user_id", order.UserID.Hex()).Msg("insert failed")
		return models.Order{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return order, nil
}

func (r *mongoOrderRepository) FindOrderByID(ctx context.Context, id string) (models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Order{}, ErrOrderNotFound
	}

	orders, err := r.aggregate(ctx, matchStage(bson.D{{Key: "_id", Value: oid}}), "name", "email")
	if err != nil {
		return models.Order{}, err
	}
	if len(orders) == 0 {
		return models.Order{}, ErrOrderNotFound
	}

	return orders[0], nil
}

func (r *mongoOrderRepository) FindOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []models.Order{}, nil
	}

	cursor, err := r.db.orders().Find(ctx, bson.D{{Key: "user", Value: oid}}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		log.Err(err).Str("func", "*mongoOrderRepository.FindOrdersByUser").Str("user_id", userID).Msg("find failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	orders := make([]models.Order, 0)
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return orders, nil
}

func (r *mongoOrderRepository) FindAllOrders(ctx context.Context) ([]models.Order, error) {
	return r.aggregate(ctx, nil, "name")
}

// aggregate runs the optional match stage followed by the owner join. Only
// the listed owner fields are projected.
func (r *mongoOrderRepository) aggregate(ctx context.Context, match bson.D, ownerFields ...string) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	projection := bson.D{}
	for _, f := range ownerFields {
		projection = append(projection, bson.E{Key: f, Value: 1})
	}

	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, match)
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: models.User{}.TableName()},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "pipeline", Value: bson.A{bson.D{{Key: "$project", Value: projection}}}},
			{Key: "as", Value: "owner"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
	)

	cursor, err := r.db.orders().Aggregate(ctx, pipeline)
	if err != nil {
		log.Err(err).Str("func", "*mongoOrderRepository.aggregate").Msg("aggregate failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	orders := make([]models.Order, 0)
	if err = cursor.All(ctx, &orders); err != nil {
		log.Err(err).Str("func", "*mongoOrderRepository.aggregate").Msg("decode failed")
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return orders, nil
}

func matchStage(filter bson.D) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

func (r *mongoOrderRepository) MarkOrderPaid(ctx context.Context, id string, result models.PaymentResult, paidAt time.Time) (models.Order, error) {
	return r.setFields(ctx, id, bson.D{
		{Key: "isPaid", Value: true},
		{Key: "paidAt", Value: paidAt},
		{Key: "paymentResult", Value: result},
		{Key: "updatedAt", Value: time.Now().UTC()},
	})
}

func (r *mongoOrderRepository) MarkOrderDelivered(ctx context.Context, id string, deliveredAt time.Time) (models.Order, error) {
	return r.setFields(ctx, id, bson.D{
		{Key: "isDelivered", Value: true},
		{Key: "deliveredAt", Value: deliveredAt},
		{Key: "updatedAt", Value: time.Now().UTC()},
	})
}

// setFields applies a single atomic $set to the order and returns the
// updated document.
func (r *mongoOrderRepository) setFields(ctx context.Context, id string, fields bson.D) (models.Order, error) {
	log := logger.FromContext(ctx)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Order{}, ErrOrderNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err = r.db.orders().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: fields}}, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*mongoOrderRepository.setFields").Str("order_id", id).Msg("update failed")
		return models.Order{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return order, nil
}

func (r *mongoOrderRepository) DeleteAllOrders(ctx context.Context) error {
	if _, err := r.db.orders().DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	return nil
}
