package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection names used by the console and the mobile app.
const (
	CollectionUsers        = "users"
	CollectionModules      = "modules"
	CollectionAssessments  = "assessments"
	CollectionRecords      = "records"
	CollectionSections     = "sections"
	CollectionAchievements = "achievements"
)

var KnownCollections = []string{
	CollectionUsers,
	CollectionModules,
	CollectionAssessments,
	CollectionRecords,
	CollectionSections,
	CollectionAchievements,
}

func IsKnownCollection(name string) bool {
	for _, c := range KnownCollections {
		if c == name {
			return true
		}
	}
	return false
}

const (
	fieldCreatedDate = "createdDate"
	fieldUpdatedDate = "updatedDate"
)

// DocumentStore is a collection-scoped document database. Get, Update and
// Delete return util.ErrDocumentNotFound for unknown identifiers.
type DocumentStore interface {
	List(ctx context.Context, collection string) ([]model.Document, error)
	Get(ctx context.Context, collection, id string) (*model.Document, error)
	// Add assigns the identifier and stamps createdDate.
	Add(ctx context.Context, collection string, fields bson.M) (string, error)
	// Update merges fields into the document and stamps updatedDate.
	Update(ctx context.Context, collection, id string, fields bson.M) error
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
}

// withoutID copies fields, dropping any caller supplied "_id".
func withoutID(fields bson.M) bson.M {
	out := make(bson.M, len(fields)+1)
	for k, v := range fields {
		if k == "_id" || k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

func stamp(fields bson.M, key string) bson.M {
	out := withoutID(fields)
	out[key] = time.Now().UTC()
	return out
}
