package repository

import (
	"context"
	"time"

	"permd/internal/perm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListActiveGroupAssignments filters out expired assignments at read time; the
// expiry timestamp is the single source of truth, there is no separate flag.
func (r *MongoRepository) ListActiveGroupAssignments(ctx context.Context, orgID, personID string) ([]*model.UserGroupAssignment, error) {
	filter := bson.M{
		"org_id":    orgID,
		"person_id": personID,
		"$or": []bson.M{
			{"expires_at": nil},
			{"expires_at": bson.M{"$gt": time.Now()}},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "group_id", Value: 1}})

	cursor, err := r.GroupAssignments.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*model.UserGroupAssignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *MongoRepository) ListGroupActions(ctx context.Context, groupIDs []string, actionTypeID string) ([]*model.PermissionGroupAction, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"group_id":       bson.M{"$in": groupIDs},
		"action_type_id": actionTypeID,
	}
	opts := options.Find().SetSort(bson.D{{Key: "group_id", Value: 1}})

	cursor, err := r.GroupActions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []*model.PermissionGroupAction
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
