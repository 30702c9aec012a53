package repository

import (
	"context"
	"errors"

	"permd/internal/perm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetActiveOverride returns the person's non-revoked override for the action,
// or nil when none exists. Expiry is a resolver concern, not a query concern:
// an expired row is still returned and the engine treats it as absent.
func (r *MongoRepository) GetActiveOverride(ctx context.Context, personID, actionTypeID string) (*model.UserPermissionOverride, error) {
	filter := bson.M{
		"person_id":      personID,
		"action_type_id": actionTypeID,
		"revoked_at":     nil,
	}

	var override model.UserPermissionOverride
	err := r.Overrides.FindOne(ctx, filter).Decode(&override)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &override, nil
}
