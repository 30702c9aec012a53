package repository

import (
	"context"

	"permd/internal/perm/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	ActionTypes         *mongo.Collection
	Teams               *mongo.Collection
	Memberships         *mongo.Collection
	PositionPermissions *mongo.Collection
	Overrides           *mongo.Collection
	GroupActions        *mongo.Collection
	GroupAssignments    *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, cfg *config.Config) *MongoRepository {
	return &MongoRepository{
		ActionTypes:         db.Collection(cfg.ActionTypesCollection),
		Teams:               db.Collection(cfg.TeamsCollection),
		Memberships:         db.Collection(cfg.MembershipsCollection),
		PositionPermissions: db.Collection(cfg.PositionPermissionsCollection),
		Overrides:           db.Collection(cfg.OverridesCollection),
		GroupActions:        db.Collection(cfg.GroupActionsCollection),
		GroupAssignments:    db.Collection(cfg.GroupAssignmentsCollection),
	}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	// 1. Action Types: unique code lookup
	idxActionCode := mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_action_code"),
	}
	if _, err := r.ActionTypes.Indexes().CreateOne(ctx, idxActionCode); err != nil {
		return err
	}

	// 2. Memberships: the hot path loads all active rows per person
	idxMembership := mongo.IndexModel{
		Keys: bson.D{
			{Key: "org_id", Value: 1},
			{Key: "person_id", Value: 1},
			{Key: "is_active", Value: 1},
		},
		Options: options.Index().SetName("memberships_by_person"),
	}
	if _, err := r.Memberships.Indexes().CreateOne(ctx, idxMembership); err != nil {
		return err
	}

	// 3. Position permissions: (position, action) lookups
	idxPositionPerm := mongo.IndexModel{
		Keys: bson.D{
			{Key: "position_id", Value: 1},
			{Key: "action_type_id", Value: 1},
			{Key: "is_active", Value: 1},
		},
		Options: options.Index().SetName("position_perms_by_position_action"),
	}
	if _, err := r.PositionPermissions.Indexes().CreateOne(ctx, idxPositionPerm); err != nil {
		return err
	}

	// 4. Overrides: one meaningful non-revoked row per (person, action)
	idxOverride := mongo.IndexModel{
		Keys: bson.D{
			{Key: "person_id", Value: 1},
			{Key: "action_type_id", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_active_override").
			SetPartialFilterExpression(bson.M{"revoked_at": nil}),
	}
	if _, err := r.Overrides.Indexes().CreateOne(ctx, idxOverride); err != nil {
		return err
	}

	// 5. Group assignments per person
	idxAssignment := mongo.IndexModel{
		Keys: bson.D{
			{Key: "org_id", Value: 1},
			{Key: "person_id", Value: 1},
		},
		Options: options.Index().SetName("group_assignments_by_person"),
	}
	if _, err := r.GroupAssignments.Indexes().CreateOne(ctx, idxAssignment); err != nil {
		return err
	}

	// 6. Group actions per (group, action)
	idxGroupAction := mongo.IndexModel{
		Keys: bson.D{
			{Key: "group_id", Value: 1},
			{Key: "action_type_id", Value: 1},
		},
		Options: options.Index().SetName("group_actions_by_group_action"),
	}
	_, err := r.GroupActions.Indexes().CreateOne(ctx, idxGroupAction)
	return err
}
