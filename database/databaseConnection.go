package database

import (
	"context"
	"errors"
	"fmt"

	"golang-exercisetracker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UserCollection     = "users"
	ExerciseCollection = "exercises"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// Store is everything the API needs from a backend.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUser(ctx context.Context, userID string) (models.User, error)
	AddExercise(ctx context.Context, exercise *models.Exercise) error
	FindExercises(ctx context.Context, userID string, filter models.LogFilter) ([]models.Exercise, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Connect opens a client and pings the deployment before handing it back.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, nil
}

func OpenCollection(client *mongo.Client, databaseName string, collectionName string) *mongo.Collection {
	return client.Database(databaseName).Collection(collectionName)
}

var _ Store = (*MongoStore)(nil)

// MongoStore backs the API with the users and exercises collections.
type MongoStore struct {
	*UserRepository
	*ExerciseRepository
	client   *mongo.Client
	database string
}

func NewMongoStore(client *mongo.Client, databaseName string) *MongoStore {
	return &MongoStore{
		UserRepository:     NewUserRepository(OpenCollection(client, databaseName, UserCollection)),
		ExerciseRepository: NewExerciseRepository(OpenCollection(client, databaseName, ExerciseCollection)),
		client:             client,
		database:           databaseName,
	}
}

// EnsureIndexes creates the lookup indexes. It is safe to run on every start.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	db := s.client.Database(s.database)

	_, err := db.Collection(UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = db.Collection(ExerciseCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create exercises index: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
