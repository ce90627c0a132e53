package repository

import (
	"context"
	"cyberar_admin_backend/internal/model"
	"cyberar_admin_backend/internal/util"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/gorm"
)

// SQLStore keeps documents as extended JSON rows of a single table.
type SQLStore struct {
	DB *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func encodeFields(fields bson.M) (string, error) {
	raw, err := bson.MarshalExtJSON(fields, false, false)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeRow(row *model.DocumentRow) (model.Document, error) {
	var data bson.M
	if err := bson.UnmarshalExtJSON([]byte(row.Data), false, &data); err != nil {
		return model.Document{}, err
	}
	if data == nil {
		data = bson.M{}
	}
	delete(data, "_id")
	return model.Document{ID: row.ID, Data: data}, nil
}

func (s *SQLStore) List(ctx context.Context, collection string) ([]model.Document, error) {
	var rows []model.DocumentRow
	err := s.DB.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]model.Document, 0, len(rows))
	for i := range rows {
		doc, err := decodeRow(&rows[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *SQLStore) find(db *gorm.DB, collection, id string) (*model.DocumentRow, error) {
	var row model.DocumentRow
	err := db.Where("collection = ? AND id = ?", collection, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	row, err := s.find(s.DB.WithContext(ctx), collection, id)
	if err != nil {
		return nil, err
	}
	doc, err := decodeRow(row)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *SQLStore) Add(ctx context.Context, collection string, fields bson.M) (string, error) {
	data, err := encodeFields(stamp(fields, fieldCreatedDate))
	if err != nil {
		return "", err
	}

	row := &model.DocumentRow{
		ID:         uuid.New().String(),
		Collection: collection,
		Data:       data,
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

func (s *SQLStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.find(tx, collection, id)
		if err != nil {
			return err
		}
		doc, err := decodeRow(row)
		if err != nil {
			return err
		}

		for k, v := range stamp(fields, fieldUpdatedDate) {
			doc.Data[k] = v
		}
		data, err := encodeFields(doc.Data)
		if err != nil {
			return err
		}

		return tx.Model(row).Update("data", data).Error
	})
}

func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	res := s.DB.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&model.DocumentRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrDocumentNotFound
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
