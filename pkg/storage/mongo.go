package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/pagecraft/pkg/cache"
)

// Mongo defaults.
const (
	DefaultDatabase  = "pagecraft"
	UsersCollection  = "users"
	defaultOpTimeout = 10 * time.Second
	emailIndexName   = "email_unique"
)

// MongoConfig configures a MongoDB-backed store.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// MongoStore stores users in a MongoDB collection.
type MongoStore struct {
	client  *mongo.Client
	users   *mongo.Collection
	timeout time.Duration
}

// userDoc is the stored BSON shape. The password field holds the bcrypt hash.
type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d userDoc) user() User {
	return User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures the
// unique email index. Transient connection failures are retried with backoff.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo: uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultOpTimeout
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	err = cache.RetryWithBackoff(ctx, func() error {
		pctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		if err := client.Ping(pctx, nil); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &MongoStore{
		client:  client,
		users:   client.Database(cfg.Database).Collection(UsersCollection),
		timeout: cfg.Timeout,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(emailIndexName),
	})
	if err != nil {
		return fmt.Errorf("mongo create email index: %w", err)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, email, passwordHash string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Email:     NormalizeEmail(email),
		Password:  passwordHash,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrDuplicate
		}
		return User{}, fmt.Errorf("mongo insert user: %w", err)
	}
	return doc.user(), nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (User, error) {
	return s.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var doc userDoc
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("mongo find user: %w", err)
	}
	return doc.user(), nil
}

// Ping checks the connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ UserStore = (*MongoStore)(nil)
