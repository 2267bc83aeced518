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

// mongoUserRepository is the MongoDB-backed implementation of [UserRepository]
// over the "users" collection.
type mongoUserRepository struct {
	db     *MongoDB
	logger *logger.Logger
}

// NewMongoUserRepository constructs a [UserRepository] backed by db.
func NewMongoUserRepository(db *MongoDB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating mongo user repository")
	return &mongoUserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *mongoUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.db.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*mongoUserRepository.CreateUser").Msg("insert failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

func (r *mongoUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *mongoUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.D) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := r.db.users().FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.findOne").Msg("find failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

func (r *mongoUserRepository) FindAllUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	opts := options.Find().
		SetProjection(bson.D{{Key: "password", Value: 0}}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.db.users().Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.FindAllUsers").Msg("find failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	users := make([]models.User, 0)
	if err = cursor.All(ctx, &users); err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.FindAllUsers").Msg("decode failed")
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	return users, nil
}

func (r *mongoUserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: user.Name},
		{Key: "email", Value: user.Email},
		{Key: "password", Value: user.Password},
		{Key: "isAdmin", Value: user.IsAdmin},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.User
	err := r.db.users().FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: user.ID}}, update, opts).Decode(&updated)
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.User{}, ErrUserNotFound
	case mongo.IsDuplicateKeyError(err):
		return models.User{}, ErrEmailAlreadyExists
	default:
		log.Err(err).Str("func", "*mongoUserRepository.UpdateUser").Str("user_id", user.ID.Hex()).Msg("update failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}
}

func (r *mongoUserRepository) DeleteUser(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrUserNotFound
	}

	res, err := r.db.users().DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.DeleteUser").Str("user_id", id).Msg("delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *mongoUserRepository) DeleteAllUsers(ctx context.Context) error {
	if _, err := r.db.users().DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	return nil
}
