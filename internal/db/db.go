package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"contentdash/internal/config"
)

// Collection names.
const (
	StrategiesCollection = "seo_topic_content_strategies"
	UsersCollection      = "users"
)

// itemsField is the path of the nested topic array inside a strategy.
const itemsField = "clientData.contentStrategy.items"

const defaultQueryTimeout = 10 * time.Second

// DB wraps a MongoDB client and the application database.
type DB struct {
	Client       *mongo.Client
	Database     *mongo.Database
	queryTimeout time.Duration
}

// New connects to MongoDB and pings the primary.
func New(ctx context.Context, uri, name string, queryTimeout time.Duration) (*DB, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(5 * time.Second).
		SetSocketTimeout(45 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return Wrap(client.Database(name), queryTimeout), nil
}

// Wrap builds a DB around an already connected database handle.
func Wrap(database *mongo.Database, queryTimeout time.Duration) *DB {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &DB{
		Client:       database.Client(),
		Database:     database,
		queryTimeout: queryTimeout,
	}
}

// lazyConn connects at most once and remembers the outcome.
type lazyConn struct {
	once sync.Once
	db   *DB
	err  error
}

func (l *lazyConn) get(connect func() (*DB, error)) (*DB, error) {
	l.once.Do(func() {
		l.db, l.err = connect()
	})
	return l.db, l.err
}

var shared lazyConn

// Shared returns the process-wide handle, connecting on first use. Every
// later call, including concurrent ones, gets the same handle or the same
// connection error.
func Shared(ctx context.Context, cfg *config.Config) (*DB, error) {
	return shared.get(func() (*DB, error) {
		database, err := New(ctx, cfg.MongoURI, cfg.MongoDB, cfg.QueryTimeout)
		if err != nil {
			slog.Error("MongoDB connection error", "error", err)
		}
		return database, err
	})
}

// EnsureIndexes creates the indexes the queries rely on. Topic ids are
// unique across every strategy document.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	_, err := d.strategies().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: itemsField + "._id", Value: 1}},
			Options: options.Index().
				SetName("items_id_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: itemsField + "._id", Value: bson.D{{Key: "$exists", Value: true}}}}),
		},
		{
			Keys:    bson.D{{Key: itemsField + ".status", Value: 1}},
			Options: options.Index().SetName("items_status"),
		},
	})
	if err != nil {
		return wrapErr("create strategy indexes", err)
	}

	_, err = d.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
	if err != nil {
		return wrapErr("create user indexes", err)
	}

	return nil
}

// Ping checks that the deployment is reachable.
func (d *DB) Ping(ctx context.Context) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()
	return wrapErr("ping", d.Client.Ping(ctx, readpref.Primary()))
}

// Close disconnects the client.
func (d *DB) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Client.Disconnect(ctx); err != nil {
		slog.Warn("MongoDB disconnect failed", "error", err)
	}
}

func (d *DB) strategies() *mongo.Collection {
	return d.Database.Collection(StrategiesCollection)
}

func (d *DB) users() *mongo.Collection {
	return d.Database.Collection(UsersCollection)
}

// withTimeout bounds a single store call.
func (d *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.queryTimeout)
}

// wrapErr annotates a driver error with the operation and marks timeouts
// with ErrTimeout.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
