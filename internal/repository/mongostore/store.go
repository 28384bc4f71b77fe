// Package mongostore implements the repository interfaces on MongoDB.
//
// Models are serialized through their bson tags. Collection names and
// indexes are managed in one place in ensureIndexes.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"taskblog/internal/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ColUsers = "users"
	ColPosts = "posts"
	ColTasks = "tasks"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB, verifies the connection and creates the
// collection indexes.
func NewStore(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}

	if err := s.ensureIndexes(ctx); err != nil {
		logger.Warn("mongostore: ensure indexes failed: " + err.Error())
	}

	return s, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) Users() *UserStore { return &UserStore{s} }
func (s *Store) Posts() *PostStore { return &PostStore{s} }
func (s *Store) Tasks() *TaskStore { return &TaskStore{s} }

func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		// users
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "username", Value: 1}}, true},

		// posts
		{ColPosts, bson.D{{Key: "slug", Value: 1}}, true},
		{ColPosts, bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColPosts, bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}}, false},

		// tasks
		{ColTasks, bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColTasks, bson.D{{Key: "assigned_to", Value: 1}, {Key: "status", Value: 1}}, false},
		{ColTasks, bson.D{{Key: "due_date", Value: 1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	return nil
}
