package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
	"cyberar_admin_backend/internal/util"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

// idFilter matches both ObjectID and plain string identifiers.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

func toDocument(raw bson.M) model.Document {
	doc := model.Document{Data: raw}
	switch v := raw["_id"].(type) {
	case primitive.ObjectID:
		doc.ID = v.Hex()
	case string:
		doc.ID = v
	case nil:
	default:
		doc.ID = fmt.Sprint(v)
	}
	delete(raw, "_id")
	return doc
}

func (s *MongoStore) List(ctx context.Context, collection string) ([]model.Document, error) {
	cur, err := s.DB.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := []model.Document{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		docs = append(docs, toDocument(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	var raw bson.M
	err := s.DB.Collection(collection).FindOne(ctx, idFilter(id)).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	doc := toDocument(raw)
	return &doc, nil
}

func (s *MongoStore) Add(ctx context.Context, collection string, fields bson.M) (string, error) {
	res, err := s.DB.Collection(collection).InsertOne(ctx, stamp(fields, fieldCreatedDate))
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	res, err := s.DB.Collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": stamp(fields, fieldUpdatedDate)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrDocumentNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.DB.Collection(collection).DeleteOne(ctx, idFilter(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return util.ErrDocumentNotFound
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.DB.Client().Ping(ctx, readpref.Primary())
}
