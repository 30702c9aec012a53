package repository

import (
	"context"
	"errors"

	"permd/internal/perm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) GetActionTypeByCode(ctx context.Context, code string) (*model.ActionType, error) {
	filter := bson.M{"code": code, "is_active": true}

	var at model.ActionType
	err := r.ActionTypes.FindOne(ctx, filter).Decode(&at)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &at, nil
}

func (r *MongoRepository) ListActiveActionTypes(ctx context.Context) ([]*model.ActionType, error) {
	filter := bson.M{"is_active": true}
	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})

	cursor, err := r.ActionTypes.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var actionTypes []*model.ActionType
	if err := cursor.All(ctx, &actionTypes); err != nil {
		return nil, err
	}
	return actionTypes, nil
}
