// Package mongo implements the repositories on MongoDB with the v2 driver.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"mdd-backend/internal/config"
	"mdd-backend/internal/domain/entity"
	"mdd-backend/internal/repository"
	"mdd-backend/internal/resilience/circuitbreaker"
)

const (
	usersCollection    = "users"
	topicsCollection   = "topics"
	articlesCollection = "articles"
	commentsCollection = "comments"
)

// Unique index names double as keys into duplicateMessages.
var duplicateMessages = map[string]string{
	"users_email_key":    "email already exists",
	"users_username_key": "username already exists",
	"topics_name_key":    "topic name already exists",
}

// Store owns the client and hands out repositories bound to one database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	cb     *circuitbreaker.CircuitBreaker
}

// Open connects to cfg.MongoURI and pings the primary, waiting at most 5
// seconds for it.
func Open(ctx context.Context, cfg config.Store) (*Store, error) {
	opts := options.Client().ApplyURI(cfg.MongoURI)
	if cfg.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MongoMaxPoolSize))
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	slog.Info("mongo connected", slog.String("database", cfg.MongoDatabase))
	return &Store{
		client: client,
		db:     client.Database(cfg.MongoDatabase),
		cb:     circuitbreaker.New(circuitbreaker.StoreConfig("mongo"), isClientError),
	}, nil
}

// EnsureIndexes creates the unique and lookup indexes. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("users_email_key")},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("users_username_key")},
		},
		topicsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("topics_name_key")},
		},
		articlesCollection: {
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "article_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}
	return nil
}

// Ping checks the primary through the circuit breaker.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.cb.Execute(func() (any, error) {
		return nil, s.client.Ping(ctx, nil)
	})
	return err
}

// State reports the circuit breaker guarding the client.
func (s *Store) State() gobreaker.State {
	return s.cb.State()
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Users() repository.UserRepository {
	return &UserRepo{c: s.db.Collection(usersCollection), cb: s.cb}
}

func (s *Store) Topics() repository.TopicRepository {
	return &TopicRepo{c: s.db.Collection(topicsCollection), cb: s.cb}
}

func (s *Store) Articles() repository.ArticleRepository {
	return &ArticleRepo{c: s.db.Collection(articlesCollection), cb: s.cb}
}

func (s *Store) Comments() repository.CommentRepository {
	return &CommentRepo{c: s.db.Collection(commentsCollection), cb: s.cb}
}

// IsTransient reports network failures and timeouts, which are worth
// retrying while the server starts.
func IsTransient(err error) bool {
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

func isClientError(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || mongo.IsDuplicateKeyError(err)
}

// storeError classifies a driver error. Duplicate keys are matched to the
// index named in the server message.
func storeError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		msg := "resource already exists"
		for index, m := range duplicateMessages {
			if strings.Contains(err.Error(), index) {
				msg = m
				break
			}
		}
		return fmt.Errorf("%s: %w", op, entity.Duplicate(msg))
	}
	return entity.WrapStore(op, err)
}

// findOne decodes a single document into T; a missing document yields (nil, nil).
func findOne[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, c *mongo.Collection, filter any) (*T, error) {
	return circuitbreaker.Do(cb, func() (*T, error) {
		var doc T
		err := c.FindOne(ctx, filter).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &doc, nil
	})
}

func findAll[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, c *mongo.Collection, filter any, opts ...options.Lister[options.FindOptions]) ([]T, error) {
	return circuitbreaker.Do(cb, func() ([]T, error) {
		cur, err := c.Find(ctx, filter, opts...)
		if err != nil {
			return nil, err
		}
		docs := make([]T, 0)
		if err := cur.All(ctx, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	})
}

func insertOne(ctx context.Context, cb *circuitbreaker.CircuitBreaker, c *mongo.Collection, doc any) error {
	_, err := cb.Execute(func() (any, error) {
		return c.InsertOne(ctx, doc)
	})
	return err
}

// deleteByID removes one document and reports whether it existed.
func deleteByID(ctx context.Context, cb *circuitbreaker.CircuitBreaker, c *mongo.Collection, id string) (bool, error) {
	res, err := circuitbreaker.Do(cb, func() (*mongo.DeleteResult, error) {
		return c.DeleteOne(ctx, bson.M{"_id": id})
	})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
