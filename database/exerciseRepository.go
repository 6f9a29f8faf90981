package database

import (
	"context"
	"fmt"

	"golang-exercisetracker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ExerciseRepository struct {
	collection *mongo.Collection
}

func NewExerciseRepository(collection *mongo.Collection) *ExerciseRepository {
	return &ExerciseRepository{collection: collection}
}

func (r *ExerciseRepository) AddExercise(ctx context.Context, exercise *models.Exercise) error {
	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		return fmt.Errorf("insert exercise: %w", err)
	}
	return nil
}

// FindExercises returns a user's exercises in insertion order with the date
// bounds and limit applied by the server.
func (r *ExerciseRepository) FindExercises(ctx context.Context, userID string, filter models.LogFilter) ([]models.Exercise, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.collection.Find(ctx, exerciseQuery(userID, filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find exercises for %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	exercises := []models.Exercise{}
	if err := cursor.All(ctx, &exercises); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	return exercises, nil
}

func exerciseQuery(userID string, filter models.LogFilter) bson.M {
	query := bson.M{"user_id": userID}

	date := bson.M{}
	if filter.From != nil {
		date["$gte"] = *filter.From
	}
	if filter.To != nil {
		date["$lte"] = *filter.To
	}
	if len(date) > 0 {
		query["date"] = date
	}
	return query
}
