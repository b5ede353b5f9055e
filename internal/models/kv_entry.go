package models

import "time"

const (
	StoreKeySymptoms = "symptoms"
	StoreKeyCycle    = "cycle"
)

type KVEntry struct {
	Key       string    `gorm:"column:store_key;primaryKey"`
	Value     string    `gorm:"column:store_value;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
