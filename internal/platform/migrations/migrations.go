package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the orders context. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Amount    int64     `gorm:"column:amount"`
	Quantity  int64     `gorm:"column:quantity"`
	Total     int64     `gorm:"column:total"`
	Processed bool      `gorm:"column:processed;index"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (orderRecord) TableName() string { return "orders" }
