package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spice-catalog-backend/internal/config"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// New opens the configured database. It returns a nil database when the memory
// storage driver is selected; repositories then fall back to their memory variants.
func New(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*mongo.Database, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return nil, nil
	}

	client, err := Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	log.Info("connected to mongodb", zap.String("database", cfg.MongoDatabase))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("disconnecting from mongodb")
			return client.Disconnect(ctx)
		},
	})
	return client.Database(cfg.MongoDatabase), nil
}

// ParseID converts a hex string into an ObjectID.
func ParseID(raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type mongoPinger struct {
	db *mongo.Database
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.db.Client().Ping(ctx, readpref.Primary())
}

type memoryPinger struct{}

func (memoryPinger) Ping(context.Context) error { return nil }

func NewPinger(db *mongo.Database) Pinger {
	if db == nil {
		return memoryPinger{}
	}
	return mongoPinger{db: db}
}

var Module = fx.Module("database",
	fx.Provide(New, NewPinger),
)
