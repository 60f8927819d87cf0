package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "rest-user-client/internal/domain/user"
	"rest-user-client/pkg/logger"
)

// UserRow is the database schema for stored fixture users. The payload is
// the raw record with the id scrubbed; the row id is authoritative.
type UserRow struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Payload []byte `gorm:"not null"`
}

// TableName specifies the table name for the UserRow model.
func (UserRow) TableName() string {
	return "users"
}

// GormStore persists fixture users in SQLite through GORM, so the standalone
// server can keep its state across restarts.
type GormStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormStore opens (or creates) the SQLite database at path and migrates
// the users table.
func NewGormStore(path string, log *zap.Logger) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.NewGormLogger(log, "warn"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", path, err)
	}

	if err := db.AutoMigrate(&UserRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate users table: %w", err)
	}

	return &GormStore{db: db, log: log}, nil
}

// List implements Store, returning records ordered by id.
func (s *GormStore) List(ctx context.Context) ([]domain.Record, error) {
	var rows []UserRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		s.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := s.toRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Get implements Store.
func (s *GormStore) Get(ctx context.Context, id int64) (domain.Record, error) {
	var row UserRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s.toRecord(row)
}

// Create implements Store, letting the database assign the id.
func (s *GormStore) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	payload, err := json.Marshal(scrubID(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	row := UserRow{Payload: payload}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.log.Error("failed to create user in db", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user created in db", zap.Int64("id", row.ID))
	return s.toRecord(row)
}

// Update implements Store, replacing the payload stored under id.
func (s *GormStore) Update(ctx context.Context, id int64, rec domain.Record) (domain.Record, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(scrubID(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	row := UserRow{ID: id, Payload: payload}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		s.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.log.Info("user updated in db", zap.Int64("id", id))
	return s.toRecord(row)
}

// Close releases the underlying database handle.
func (s *GormStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// Delete implements Store.
func (s *GormStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&UserRow{}, id)
	if res.Error != nil {
		s.log.Error("failed to delete user in db", zap.Error(res.Error), zap.Int64("id", id))
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.log.Info("user deleted in db", zap.Int64("id", id))
	return nil
}

// toRecord decodes a row's payload and injects the row id.
func (s *GormStore) toRecord(row UserRow) (domain.Record, error) {
	var rec domain.Record
	if err := json.Unmarshal(row.Payload, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode stored record %d: %w", row.ID, err)
	}
	rec["id"] = row.ID
	return rec, nil
}
