package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClientState is one stored blob.
type ClientState struct {
	Key       string         `gorm:"type:varchar(96);primaryKey"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"type:datetime(3);not null"`
}

func (ClientState) TableName() string { return "client_state" }

// SQL keeps blobs in the client_state table.
type SQL struct{ db *gorm.DB }

func NewSQL(db *gorm.DB) *SQL { return &SQL{db: db} }

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	var row ClientState
	err := s.db.WithContext(ctx).First(&row, "`key` = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Data), nil
}

func (s *SQL) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	row := ClientState{Key: key, Data: datatypes.JSON(data), UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&ClientState{}, "`key` = ?", key).Error
}

func (s *SQL) String() string { return "sql(client_state)" }
