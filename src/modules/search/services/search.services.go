package search

import (
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"moviechamp/src/config"
	catalog "moviechamp/src/modules/catalog/models"
	"moviechamp/src/utils"
)

type Results struct {
	Movies       []catalog.Movie  `json:"movies"`
	Series       []catalog.Series `json:"series"`
	VJs          []catalog.VJ     `json:"vjs"`
	Genres       []catalog.Genre  `json:"genres"`
	TotalResults int              `json:"totalResults"`
}

// Global runs the four entity searches in parallel and merges the counts.
func Global(query string, limit int) (*Results, *utils.ServiceError) {
	db := config.DB

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.BadRequest("Search query is required")
	}
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + strings.ToLower(query) + "%"
	results := Results{
		Movies: []catalog.Movie{},
		Series: []catalog.Series{},
		VJs:    []catalog.VJ{},
		Genres: []catalog.Genre{},
	}

	var g errgroup.Group
	g.Go(func() error {
		return db.Session(&gorm.Session{}).
			Preload("VJ").Preload("Genre").Preload("Year").
			Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(director) LIKE ?", pattern, pattern, pattern).
			Order("views_count desc").
			Limit(limit).
			Find(&results.Movies).Error
	})
	g.Go(func() error {
		return db.Session(&gorm.Session{}).
			Preload("VJ").Preload("Genre").Preload("Year").
			Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(director) LIKE ?", pattern, pattern, pattern).
			Order("views_count desc").
			Limit(limit).
			Find(&results.Series).Error
	})
	g.Go(func() error {
		return db.Session(&gorm.Session{}).
			Where("LOWER(name) LIKE ?", pattern).
			Limit(5).
			Find(&results.VJs).Error
	})
	g.Go(func() error {
		return db.Session(&gorm.Session{}).
			Where("LOWER(name) LIKE ?", pattern).
			Limit(5).
			Find(&results.Genres).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error running search: %v", err)
		return nil, utils.ServerError("Search failed")
	}

	results.TotalResults = len(results.Movies) + len(results.Series) + len(results.VJs) + len(results.Genres)
	return &results, nil
}
