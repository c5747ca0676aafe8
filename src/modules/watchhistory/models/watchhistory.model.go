package watchhistory

import (
	"time"

	"gorm.io/gorm"

	catalog "moviechamp/src/modules/catalog/models"
	"moviechamp/src/utils"
)

// WatchHistory holds one row per (user, movie); progress reports upsert it.
type WatchHistory struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID          string    `json:"userId" gorm:"type:varchar(64);index:idx_user_movie,unique,priority:1;not null"`
	MovieID         string    `json:"movieId" gorm:"type:varchar(64);index:idx_user_movie,unique,priority:2;not null"`
	CurrentTime     float64   `json:"currentTime"`
	Duration        float64   `json:"duration"`
	ProgressPercent float64   `json:"progressPercent"`
	Completed       bool      `json:"completed" gorm:"index"`
	LastWatchedAt   time.Time `json:"lastWatchedAt" gorm:"index"`
	CreatedAt       time.Time `json:"createdAt"`

	Movie *catalog.Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

func (w *WatchHistory) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = utils.NewID()
	}
	return nil
}

func MigrateWatchHistory(db *gorm.DB) error {
	return db.AutoMigrate(&WatchHistory{})
}
