package mirror

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is the GORM row backing one mirror slot.
type Slot struct {
	Name      string `gorm:"primaryKey;size:128"`
	Data      []byte `gorm:"type:blob;not null"`
	UpdatedAt time.Time
}

func (Slot) TableName() string { return "mirror_slots" }

// GormBackend stores slots in a single upsert table.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, err
	}
	return &GormBackend{db: db}, nil
}

// OpenDB opens sqlite for plain paths and mysql for @tcp( DSNs.
func OpenDB(dsn string) (*gorm.DB, error) {
	if strings.Contains(dsn, "@tcp(") {
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

func (b *GormBackend) Get(ctx context.Context, slot string) ([]byte, error) {
	var s Slot
	if err := b.db.WithContext(ctx).First(&s, "name = ?", slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Data, nil
}

func (b *GormBackend) Put(ctx context.Context, slot string, data []byte) error {
	s := Slot{Name: slot, Data: data}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&s).Error
}
