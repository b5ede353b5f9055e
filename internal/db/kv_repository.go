package db

import (
	"time"

	"github.com/terraincognita07/flare/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRepository persists JSON documents by key. It is the storage collaborator
// behind the tracker state.
type KVRepository struct {
	database *gorm.DB
	now      func() time.Time
}

func NewKVRepository(database *gorm.DB) *KVRepository {
	return &KVRepository{
		database: database,
		now:      time.Now,
	}
}

func (repo *KVRepository) Get(key string) ([]byte, bool, error) {
	entry := models.KVEntry{}
	result := repo.database.
		Where("store_key = ?", key).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return []byte(entry.Value), true, nil
}

func (repo *KVRepository) Set(key string, value []byte) error {
	return upsertEntry(repo.database, key, value, repo.now().UTC())
}

// SetMany writes every value in one transaction.
func (repo *KVRepository) SetMany(values map[string][]byte) error {
	updatedAt := repo.now().UTC()
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			if err := upsertEntry(tx, key, value, updatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *KVRepository) Clear() error {
	return repo.database.
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.KVEntry{}).Error
}

func upsertEntry(database *gorm.DB, key string, value []byte, updatedAt time.Time) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: updatedAt,
	}
	return database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"store_value", "updated_at"}),
	}).Create(&entry).Error
}
