package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VitaminP8/socialgraph/internal/storage"
)

const (
	UsersCollection    = "users"
	PostsCollection    = "posts"
	CommentsCollection = "comments"
)

// Connect открывает клиент и проверяет соединение
func Connect(ctx context.Context, uri string, logger *slog.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("connected to mongodb")
	return client, nil
}

// EnsureIndexes создает уникальные индексы, которые закрывают гонку "проверили - вставили"
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uix_users_email"),
	})
	if err != nil {
		return fmt.Errorf("could not create users.email index: %w", err)
	}

	_, err = db.Collection(PostsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "content", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uix_posts_content"),
	})
	if err != nil {
		return fmt.Errorf("could not create posts.content index: %w", err)
	}
	return nil
}

// NewStores собирает хранилища над тремя коллекциями одной базы
func NewStores(client *mongo.Client, db *mongo.Database) storage.Stores {
	return storage.Stores{
		Users:    NewUserMongoStorage(db.Collection(UsersCollection)),
		Posts:    NewPostMongoStorage(db.Collection(PostsCollection)),
		Comments: NewCommentMongoStorage(db.Collection(CommentsCollection)),
		Tx:       NewTransactor(client),
	}
}

// Transactor работает только на replica set / sharded кластере
type Transactor struct {
	client *mongo.Client
}

func NewTransactor(client *mongo.Client) *Transactor {
	return &Transactor{client: client}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%v: %w", err, storage.ErrDuplicate)
	}
	return err
}

func byID(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id}
}

func byIDs(ids []primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": ids}}
}

// nonNil: nil-срез кодируется как null, а $addToSet/$pull по null падают
func nonNil(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return []primitive.ObjectID{}
	}
	return ids
}

// existence для "пустого" обновления: matched=true, если документ есть
func existence(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) (bool, error) {
	n, err := coll.CountDocuments(ctx, byID(id), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
