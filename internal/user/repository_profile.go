package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateProfile sets the non-nil fields of params.
func (r *repository) UpdateProfile(ctx context.Context, id primitive.ObjectID, params UpdateProfileParams) (*User, error) {
	set := bson.M{}
	if params.Username != nil {
		set["username"] = *params.Username
	}
	if params.Avatar != nil {
		set["avatar"] = *params.Avatar
	}
	if params.Phone != nil {
		set["phone"] = *params.Phone
	}
	if len(set) == 0 {
		return nil, ErrEmptyProfileUpdate
	}

	return r.updateOne(ctx, "UpdateProfile", id, set)
}
