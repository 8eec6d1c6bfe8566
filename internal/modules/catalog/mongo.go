package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoSource reads products from a MongoDB collection.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongo(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	if cfg.URI == "" || cfg.Database == "" {
		return nil, fmt.Errorf("mongo config missing: MONGO_URI and MONGO_DATABASE required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	col := cfg.Collection
	if col == "" {
		col = "products"
	}
	return &MongoSource{client: client, coll: client.Database(cfg.Database).Collection(col)}, nil
}

func (s *MongoSource) All(ctx context.Context) ([]RawProduct, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo scan: %w", err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo scan: %w", err)
	}
	out := make([]RawProduct, 0, len(docs))
	for _, d := range docs {
		raw, err := rawFromBSON(d)
		if err != nil {
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

func (s *MongoSource) Get(ctx context.Context, id string) (RawProduct, error) {
	var key any = id
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		key = oid
	}
	filter := bson.M{"$or": bson.A{bson.M{"_id": key}, bson.M{"id": id}}}

	var doc bson.M
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return RawProduct{}, ErrNotFound
		}
		return RawProduct{}, fmt.Errorf("mongo get %s: %w", id, err)
	}
	return rawFromBSON(doc)
}

func (s *MongoSource) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

// Upsert writes a document keyed by its id; used by the seeding tool.
func (s *MongoSource) Upsert(ctx context.Context, raw RawProduct) error {
	doc, err := toBSON(raw)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": raw.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func rawFromBSON(doc bson.M) (RawProduct, error) {
	id := ""
	switch v := doc["_id"].(type) {
	case primitive.ObjectID:
		id = v.Hex()
	case string:
		id = v
	}
	delete(doc, "_id")
	if _, ok := doc["id"]; !ok && id != "" {
		doc["id"] = id
	}
	b, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return RawProduct{}, err
	}
	return DecodeRaw(b)
}

func toBSON(raw RawProduct) (bson.M, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.UnmarshalExtJSON(b, false, &doc); err != nil {
		return nil, err
	}
	doc["_id"] = raw.ID
	return doc, nil
}
