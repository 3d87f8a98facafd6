package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// snapshotRow is the single-row table the document lives in. The whole
// state is one jsonb value keyed by SnapshotKey, mirroring the
// local-storage blob the snapshot format comes from.
type snapshotRow struct {
	Key      string `gorm:"type:varchar(64);primaryKey"`
	Document []byte `gorm:"type:jsonb;not null"`
}

func (snapshotRow) TableName() string {
	return "snapshots"
}

// PostgresStore persists the snapshot in Postgres through GORM.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Save(ctx context.Context, doc []byte) error {
	row := snapshotRow{Key: SnapshotKey, Document: doc}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"document"}),
		}).
		Create(&row).Error
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).First(&row, "key = ?", SnapshotKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	return row.Document, nil
}
