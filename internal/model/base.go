package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Document is one schema-less record of a collection as handed out by the store.
// Data never carries the "_id" key; the identifier lives in ID.
type Document struct {
	ID   string `json:"id"`
	Data bson.M `json:"data"`
}

// Decode maps the document onto a typed record. Records expose their
// identifier through a `bson:"_id"` string field.
func (d Document) Decode(v interface{}) error {
	fields := make(bson.M, len(d.Data)+1)
	for k, val := range d.Data {
		fields[k] = val
	}
	fields["_id"] = d.ID

	raw, err := bson.Marshal(fields)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, v)
}

// Timestamps are stamped by the store on create and update.
type Timestamps struct {
	CreatedDate *time.Time `bson:"createdDate,omitempty" json:"createdDate,omitempty"`
	UpdatedDate *time.Time `bson:"updatedDate,omitempty" json:"updatedDate,omitempty"`
}

// DocumentRow backs the SQL document store: one row per document,
// fields kept as relaxed extended JSON.
type DocumentRow struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	Collection string    `gorm:"size:64;not null;index:idx_documents_collection"`
	Data       string    `gorm:"type:longtext;not null"`
	CreatedAt  time.Time `gorm:"index:idx_documents_collection"`
	UpdatedAt  time.Time
}

func (DocumentRow) TableName() string {
	return "documents"
}
