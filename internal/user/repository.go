package user

import (
	"context"
	"errors"
	"time"

	"storefront/internal/address"
	"storefront/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	MarkVerified(ctx context.Context, id primitive.ObjectID) (*User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, params UpdateProfileParams) (*User, error)
}

type repository struct {
	users *mongo.Collection
}

func NewRepository(users *mongo.Collection) Repository {
	return &repository{users: users}
}

// CreateIndexes enforces one account per email.
func CreateIndexes(ctx context.Context, users *mongo.Collection) error {
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	return err
}

func (r *repository) Create(ctx context.Context, u *User) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Addresses == nil {
		u.Addresses = []address.Address{}
	}

	if _, err := r.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Info("email already exists")
			return ErrEmailExists
		}
		log.Error("failed to insert user", zap.Error(err))
		return err
	}

	log.Info("user created", zap.String("user_id", u.ID.Hex()))
	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, "FindByEmail", bson.M{"email": email})
}

func (r *repository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return r.findOne(ctx, "FindByID", bson.M{"_id": id})
}

func (r *repository) findOne(ctx context.Context, method string, filter bson.M) (*User, error) {
	var u User
	err := r.users.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to find user",
			zap.String("layer", "repository"),
			zap.String("method", method),
			zap.Error(err),
		)
		return nil, err
	}
	return &u, nil
}

func (r *repository) MarkVerified(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return r.updateOne(ctx, "MarkVerified", id, bson.M{"isVerified": true})
}

func (r *repository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := r.updateOne(ctx, "UpdatePassword", id, bson.M{"password": hash})
	return err
}

// updateOne applies set to the user and returns the updated document.
func (r *repository) updateOne(ctx context.Context, method string, id primitive.ObjectID, set bson.M) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
		zap.String("user_id", id.Hex()),
	)

	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u User
	err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		log.Info("user not found")
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Error("failed to update user", zap.Error(err))
		return nil, err
	}

	return &u, nil
}
