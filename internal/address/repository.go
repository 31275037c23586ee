package address

import (
	"context"
	"errors"

	"storefront/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Repository stores addresses inside the users collection.
type Repository interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]Address, error)

	Add(ctx context.Context, userID primitive.ObjectID, addr Address) error
	Replace(ctx context.Context, userID primitive.ObjectID, addr Address) error
	Remove(ctx context.Context, userID, addressID primitive.ObjectID) error

	ClearDefault(ctx context.Context, userID primitive.ObjectID) error
	SetDefault(ctx context.Context, userID, addressID primitive.ObjectID) error
}

type repository struct {
	users *mongo.Collection
}

func NewRepository(users *mongo.Collection) Repository {
	return &repository{users: users}
}

func (r *repository) List(
	ctx context.Context,
	userID primitive.ObjectID,
) ([]Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "List"),
	)

	var doc struct {
		Addresses []Address `bson:"addresses"`
	}

	opts := options.FindOne().SetProjection(bson.M{"addresses": 1})
	err := r.users.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		log.Error("find failed", zap.Error(err))
		return nil, err
	}

	if doc.Addresses == nil {
		return []Address{}, nil
	}
	return doc.Addresses, nil
}

func (r *repository) Add(
	ctx context.Context,
	userID primitive.ObjectID,
	addr Address,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Add"),
		zap.String("address_id", addr.ID.Hex()),
	)

	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$push":        bson.M{"addresses": addr},
			"$currentDate": bson.M{"updatedAt": true},
		},
	)
	if err != nil {
		log.Error("push failed", zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOwnerNotFound
	}
	return nil
}

func (r *repository) Replace(
	ctx context.Context,
	userID primitive.ObjectID,
	addr Address,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Replace"),
		zap.String("address_id", addr.ID.Hex()),
	)

	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID, "addresses._id": addr.ID},
		bson.M{
			"$set":         bson.M{"addresses.$": addr},
			"$currentDate": bson.M{"updatedAt": true},
		},
	)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *repository) Remove(
	ctx context.Context,
	userID, addressID primitive.ObjectID,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Remove"),
		zap.String("address_id", addressID.Hex()),
	)

	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID, "addresses._id": addressID},
		bson.M{
			"$pull":        bson.M{"addresses": bson.M{"_id": addressID}},
			"$currentDate": bson.M{"updatedAt": true},
		},
	)
	if err != nil {
		log.Error("pull failed", zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *repository) ClearDefault(
	ctx context.Context,
	userID primitive.ObjectID,
) error {

	_, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"addresses.$[].isDefault": false}},
	)
	if err != nil {
		logger.FromCtx(ctx).Error("clear default failed",
			zap.String("repo", "Address"),
			zap.Error(err),
		)
	}
	return err
}

func (r *repository) SetDefault(
	ctx context.Context,
	userID, addressID primitive.ObjectID,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "SetDefault"),
		zap.String("address_id", addressID.Hex()),
	)

	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID, "addresses._id": addressID},
		bson.M{"$set": bson.M{"addresses.$.isDefault": true}},
	)
	if err != nil {
		log.Error("set default failed", zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}
