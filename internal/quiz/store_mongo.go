package quiz

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

// MongoStore keeps one document per quiz in the "quizzes" collection,
// uniquely indexed on id.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	col := db.Collection("quizzes")
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("quizcol: create index: %w", err)
	}
	return &MongoStore{col: col}, nil
}

// ConnectMongo dials uri and pings the server.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return client, nil
}

func (s *MongoStore) Put(ctx context.Context, q Quiz) error {
	if _, err := s.col.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("quizcol: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (Quiz, error) {
	var q Quiz
	err := s.col.FindOne(ctx, bson.M{"id": id}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Quiz{}, apperr.ErrNotFound
	}
	if err != nil {
		return Quiz{}, fmt.Errorf("quizcol: %w", err)
	}
	return q, nil
}

func (s *MongoStore) List(ctx context.Context, opts ListOpts) ([]Summary, error) {
	opts = opts.normalize()
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "id", Value: 1}}).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit))
	cur, err := s.col.Find(ctx, bson.M{}, find)
	if err != nil {
		return nil, fmt.Errorf("quizcol: %w", err)
	}
	defer cur.Close(ctx)

	out := []Summary{}
	for cur.Next(ctx) {
		var q Quiz
		if err := cur.Decode(&q); err != nil {
			return nil, fmt.Errorf("quizcol: %w", err)
		}
		out = append(out, q.Summary())
	}
	return out, cur.Err()
}
