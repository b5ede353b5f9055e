package db

import "gorm.io/gorm"

type Repositories struct {
	Store *KVRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Store: NewKVRepository(database),
	}
}
