package repository

import (
	"context"
	"errors"

	"permd/internal/perm/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoRepository) ListActiveMemberships(ctx context.Context, orgID, personID string) ([]*model.Membership, error) {
	filter := bson.M{
		"org_id":    orgID,
		"person_id": personID,
		"is_active": true,
	}
	// Stable order so resolution is reproducible across runs
	opts := options.Find().SetSort(bson.D{
		{Key: "start_date", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.Memberships.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var memberships []*model.Membership
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return memberships, nil
	}

	// Stitch in team metadata with a single teams query
	teamIDs := make([]string, 0, len(memberships))
	seen := make(map[string]bool)
	for _, m := range memberships {
		if !seen[m.TeamID] {
			seen[m.TeamID] = true
			teamIDs = append(teamIDs, m.TeamID)
		}
	}

	teamCursor, err := r.Teams.Find(ctx, bson.M{"_id": bson.M{"$in": teamIDs}})
	if err != nil {
		return nil, err
	}
	defer teamCursor.Close(ctx)

	var teams []*model.Team
	if err := teamCursor.All(ctx, &teams); err != nil {
		return nil, err
	}

	teamsByID := make(map[string]*model.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}
	for _, m := range memberships {
		if t, ok := teamsByID[m.TeamID]; ok {
			m.TeamName = t.Name
			m.TeamType = t.Type
			m.ParentTeamID = t.ParentTeamID
		}
	}

	return memberships, nil
}

func (r *MongoRepository) GetTeam(ctx context.Context, teamID string) (*model.Team, error) {
	var team model.Team
	err := r.Teams.FindOne(ctx, bson.M{"_id": teamID}).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}
