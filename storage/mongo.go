package storage

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	currency "github.com/malusev998/currency-rates"
)

var _ currency.Storage = &MongoStorage{}

type (
	MongoStorage struct {
		client     *mongo.Client
		collection *mongo.Collection
	}

	mongoDocument struct {
		Key   string `bson:"_id"`
		Value string `bson:"value"`
	}
)

func NewMongoStorage(ctx context.Context, config MongoDBConfig) (*MongoStorage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))

	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	collection := config.Collection

	if collection == "" {
		collection = DefaultTableName
	}

	return &MongoStorage{
		client:     client,
		collection: client.Database(config.Database).Collection(collection),
	}, nil
}

// NewMongoStorageFromCollection uses a collection whose client is owned by
// the caller; Close does not disconnect it.
func NewMongoStorageFromCollection(collection *mongo.Collection) *MongoStorage {
	return &MongoStorage{
		collection: collection,
	}
}

func (m *MongoStorage) Get(ctx context.Context, key string) (string, error) {
	var doc mongoDocument

	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", currency.ErrKeyNotFound
	}

	if err != nil {
		return "", err
	}

	return doc.Value, nil
}

// Set upserts values in key order with an ordered BulkWrite. A failure
// leaves the keys before it written, so a rate can be newer than its
// timestamp but never the reverse.
func (m *MongoStorage) Set(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	_, err := m.collection.BulkWrite(ctx, upsertModels(values), options.BulkWrite().SetOrdered(true))

	return err
}

func upsertModels(values map[string]string) []mongo.WriteModel {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	models := make([]mongo.WriteModel, 0, len(keys))

	for _, key := range keys {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": key}).
			SetUpdate(bson.M{"$set": bson.M{"value": values[key]}}).
			SetUpsert(true))
	}

	return models
}

func (m *MongoStorage) Drop(ctx context.Context) error {
	return m.collection.Drop(ctx)
}

func (m *MongoStorage) Close() error {
	if m.client == nil {
		return nil
	}

	return m.client.Disconnect(context.Background())
}
