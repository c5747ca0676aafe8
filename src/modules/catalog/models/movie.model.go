package catalog

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"moviechamp/src/utils"
)

type Movie struct {
	ID             string         `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Title          string         `json:"title" gorm:"not null"`
	Slug           string         `json:"slug" gorm:"uniqueIndex;not null"`
	Image          string         `json:"image"`
	Poster         string         `json:"poster"`
	TrailerPoster  string         `json:"trailerPoster"`
	Rating         float64        `json:"rating"`
	VJID           string         `json:"vjId" gorm:"type:varchar(64);index;not null"`
	GenreID        string         `json:"genreId" gorm:"type:varchar(64);index;not null"`
	YearID         string         `json:"yearId" gorm:"type:varchar(64);index;not null"`
	Size           string         `json:"size"`
	SizeBytes      *int64         `json:"sizeBytes,string"`
	Length         string         `json:"length"`
	LengthSeconds  *int           `json:"lengthSeconds"`
	Description    string         `json:"description" gorm:"type:text"`
	Director       string         `json:"director"`
	Cast           pq.StringArray `json:"cast" gorm:"type:text"`
	TrailerURL     string         `json:"trailerUrl"`
	VideoURL       string         `json:"videoUrl"`
	IsComingSoon   bool           `json:"isComingSoon"`
	IsTrending     bool           `json:"isTrending"`
	ViewsCount     int64          `json:"viewsCount"`
	DownloadsCount int64          `json:"downloadsCount"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`

	VJ    *VJ          `json:"vj,omitempty" gorm:"foreignKey:VJID"`
	Genre *Genre       `json:"genre,omitempty" gorm:"foreignKey:GenreID"`
	Year  *ReleaseYear `json:"year,omitempty" gorm:"foreignKey:YearID"`
}

func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	return nil
}

func MigrateMovies(db *gorm.DB) error {
	return db.AutoMigrate(&Movie{})
}
