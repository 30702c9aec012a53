package repository

import (
	"context"

	"permd/internal/perm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) ListPositionPermissions(ctx context.Context, positionIDs []string, actionTypeID string) ([]*model.PositionPermission, error) {
	if len(positionIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"position_id":    bson.M{"$in": positionIDs},
		"action_type_id": actionTypeID,
		"is_active":      true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "position_id", Value: 1}})

	cursor, err := r.PositionPermissions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []*model.PositionPermission
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
