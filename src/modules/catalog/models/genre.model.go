package catalog

import (
	"time"

	"gorm.io/gorm"

	"moviechamp/src/utils"
)

type Genre struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Populated on read, not stored.
	MovieCount int64 `json:"movieCount" gorm:"-"`
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = utils.NewID()
	}
	return nil
}

func MigrateGenres(db *gorm.DB) error {
	return db.AutoMigrate(&Genre{})
}
