package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is one named collection stored as a row.
type Slot struct {
	Name      string `gorm:"primaryKey;size:64"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (s *Slot) TableName() string {
	return "slots"
}

// GormBackend stores slots in a SQL database through GORM. It works with
// any dialect GORM supports; the storefront uses SQLite and PostgreSQL.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend migrates the slots table and returns a backend over db.
func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate slots table: %w", err)
	}
	return &GormBackend{db: db}, nil
}

func (b *GormBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var slot Slot
	if err := b.db.WithContext(ctx).
		Where("name = ?", name).
		First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load slot %q: %w", name, err)
	}
	return slot.Data, nil
}

func (b *GormBackend) Save(ctx context.Context, name string, data []byte) error {
	slot := Slot{Name: name, Data: data}
	if err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&slot).Error; err != nil {
		return fmt.Errorf("failed to save slot %q: %w", name, err)
	}
	return nil
}

func (b *GormBackend) Remove(ctx context.Context, name string) error {
	if err := b.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&Slot{}).Error; err != nil {
		return fmt.Errorf("failed to remove slot %q: %w", name, err)
	}
	return nil
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
