package catalog

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"moviechamp/src/utils"
)

type Series struct {
	ID            string         `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Title         string         `json:"title" gorm:"not null"`
	Slug          string         `json:"slug" gorm:"uniqueIndex;not null"`
	Poster        string         `json:"poster"`
	TrailerPoster string         `json:"trailerPoster"`
	Rating        float64        `json:"rating"`
	VJID          string         `json:"vjId" gorm:"type:varchar(64);index;not null"`
	GenreID       string         `json:"genreId" gorm:"type:varchar(64);index;not null"`
	YearID        string         `json:"yearId" gorm:"type:varchar(64);index;not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Director      string         `json:"director"`
	Cast          pq.StringArray `json:"cast" gorm:"type:text"`
	TrailerURL    string         `json:"trailerUrl"`
	IsComingSoon  bool           `json:"isComingSoon"`
	IsTrending    bool           `json:"isTrending"`
	ViewsCount    int64          `json:"viewsCount"`
	TotalSeasons  int            `json:"totalSeasons"`
	TotalEpisodes int            `json:"totalEpisodes"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`

	VJ      *VJ          `json:"vj,omitempty" gorm:"foreignKey:VJID"`
	Genre   *Genre       `json:"genre,omitempty" gorm:"foreignKey:GenreID"`
	Year    *ReleaseYear `json:"year,omitempty" gorm:"foreignKey:YearID"`
	Seasons []Season     `json:"seasons,omitempty" gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE"`
}

func (s *Series) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.NewID()
	}
	return nil
}

type Season struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(64)"`
	SeriesID      string     `json:"seriesId" gorm:"type:varchar(64);index:idx_series_season,unique,priority:1;not null"`
	SeasonNumber  int        `json:"seasonNumber" gorm:"index:idx_series_season,unique,priority:2;not null"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	Poster        *string    `json:"poster"`
	TrailerURL    *string    `json:"trailerUrl"`
	ReleaseYear   *int       `json:"releaseYear"`
	TotalEpisodes int        `json:"totalEpisodes"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Series   *Series   `json:"series,omitempty" gorm:"foreignKey:SeriesID"`
	Episodes []Episode `json:"episodes,omitempty" gorm:"foreignKey:SeasonID;constraint:OnDelete:CASCADE"`

	EpisodeCount int64 `json:"episodeCount" gorm:"-"`
}

func (s *Season) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.NewID()
	}
	return nil
}

type Episode struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(64)"`
	SeasonID      string     `json:"seasonId" gorm:"type:varchar(64);index:idx_season_episode,unique,priority:1;not null"`
	EpisodeNumber int        `json:"episodeNumber" gorm:"index:idx_season_episode,unique,priority:2;not null"`
	Title         string     `json:"title" gorm:"not null"`
	Description   *string    `json:"description"`
	VideoURL      string     `json:"videoUrl" gorm:"not null"`
	Poster        *string    `json:"poster"`
	Length        *string    `json:"length"`
	LengthSeconds *int       `json:"lengthSeconds"`
	Size          *string    `json:"size"`
	ReleaseDate   *time.Time `json:"releaseDate"`
	ViewsCount    int64      `json:"viewsCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	Season *Season `json:"season,omitempty" gorm:"foreignKey:SeasonID"`
}

func (e *Episode) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = utils.NewID()
	}
	return nil
}

func MigrateSeries(db *gorm.DB) error {
	return db.AutoMigrate(&Series{}, &Season{}, &Episode{})
}
