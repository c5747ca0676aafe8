package catalog

import (
	"time"

	"gorm.io/gorm"

	"moviechamp/src/utils"
)

const defaultAvatarURL = "/images/vj-placeholder.png"

// VJ is a video jockey: the narrator/translator a movie is credited to.
type VJ struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Bio       *string   `json:"bio"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	MovieCount int64 `json:"movieCount" gorm:"-"`
}

func (v *VJ) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = utils.NewID()
	}
	if v.AvatarURL == "" {
		v.AvatarURL = defaultAvatarURL
	}
	return nil
}

func MigrateVJs(db *gorm.DB) error {
	return db.AutoMigrate(&VJ{})
}
