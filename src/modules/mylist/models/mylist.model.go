package mylist

import (
	"time"

	"gorm.io/gorm"

	catalog "moviechamp/src/modules/catalog/models"
	"moviechamp/src/utils"
)

// MyList is created lazily the first time a user touches their list.
type MyList struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID    string    `json:"userId" gorm:"uniqueIndex;type:varchar(64);not null"`
	CreatedAt time.Time `json:"createdAt"`

	Movies []MyListMovie  `json:"movies,omitempty" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
	Series []MyListSeries `json:"series,omitempty" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

func (l *MyList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = utils.NewID()
	}
	return nil
}

type MyListMovie struct {
	ID      string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	ListID  string    `json:"listId" gorm:"type:varchar(64);index:idx_list_movie,unique,priority:1;not null"`
	MovieID string    `json:"movieId" gorm:"type:varchar(64);index:idx_list_movie,unique,priority:2;not null"`
	AddedAt time.Time `json:"addedAt" gorm:"autoCreateTime"`

	Movie *catalog.Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

func (m *MyListMovie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	return nil
}

type MyListSeries struct {
	ID       string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	ListID   string    `json:"listId" gorm:"type:varchar(64);index:idx_list_series,unique,priority:1;not null"`
	SeriesID string    `json:"seriesId" gorm:"type:varchar(64);index:idx_list_series,unique,priority:2;not null"`
	AddedAt  time.Time `json:"addedAt" gorm:"autoCreateTime"`

	Series *catalog.Series `json:"series,omitempty" gorm:"foreignKey:SeriesID"`
}

func (s *MyListSeries) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.NewID()
	}
	return nil
}

func MigrateMyLists(db *gorm.DB) error {
	return db.AutoMigrate(&MyList{}, &MyListMovie{}, &MyListSeries{})
}
