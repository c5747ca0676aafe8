package catalog

import (
	"time"

	"gorm.io/gorm"

	"moviechamp/src/utils"
)

type ReleaseYear struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Value     int       `json:"value" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	MovieCount int64 `json:"movieCount" gorm:"-"`
}

func (y *ReleaseYear) BeforeCreate(tx *gorm.DB) error {
	if y.ID == "" {
		y.ID = utils.NewID()
	}
	return nil
}

func MigrateReleaseYears(db *gorm.DB) error {
	return db.AutoMigrate(&ReleaseYear{})
}
