package catalog

import (
	"errors"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"moviechamp/src/config"
	models "moviechamp/src/modules/catalog/models"
	"moviechamp/src/utils"
)

type SeriesRequest struct {
	Title         string    `json:"title"`
	Poster        *string   `json:"poster"`
	TrailerPoster *string   `json:"trailerPoster"`
	Rating        *float64  `json:"rating"`
	VJID          string    `json:"vjId"`
	GenreID       string    `json:"genreId"`
	YearID        string    `json:"yearId"`
	Description   *string   `json:"description"`
	Director      *string   `json:"director"`
	Cast          *[]string `json:"cast"`
	TrailerURL    *string   `json:"trailerUrl"`
	IsComingSoon  *bool     `json:"isComingSoon"`
	IsTrending    *bool     `json:"isTrending"`
}

type SeriesPage struct {
	Series     []models.Series        `json:"series"`
	Pagination map[string]interface{} `json:"pagination"`
}

func CreateSeries(req SeriesRequest) (*models.Series, *utils.ServiceError) {
	db := config.DB

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, utils.BadRequest("Title is required")
	}
	if req.VJID == "" || req.GenreID == "" || req.YearID == "" {
		return nil, utils.BadRequest("vjId, genreId and yearId are required")
	}
	if svcErr := validateMovieRefs(db, req.VJID, req.GenreID, req.YearID); svcErr != nil {
		return nil, svcErr
	}

	slug := utils.GenerateSlug(title)
	var existing models.Series
	err := db.Where("slug = ?", slug).Select("id").First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("Series with this title already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking series conflict: %v", err)
		return nil, utils.ServerError("Failed to create series")
	}

	series := models.Series{
		Title:   title,
		Slug:    slug,
		VJID:    req.VJID,
		GenreID: req.GenreID,
		YearID:  req.YearID,
	}
	applySeriesFields(&series, req)

	if err := db.Create(&series).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("Series with this title already exists")
		}
		log.Printf("Error creating series: %v", err)
		return nil, utils.ServerError("Failed to create series")
	}

	return loadSeries(series.ID)
}

func applySeriesFields(series *models.Series, req SeriesRequest) {
	if req.Poster != nil {
		series.Poster = strings.TrimSpace(*req.Poster)
	}
	if req.TrailerPoster != nil {
		series.TrailerPoster = strings.TrimSpace(*req.TrailerPoster)
	}
	if req.Rating != nil {
		series.Rating = *req.Rating
	}
	if req.Description != nil {
		series.Description = *req.Description
	}
	if req.Director != nil {
		series.Director = strings.TrimSpace(*req.Director)
	}
	if req.Cast != nil {
		series.Cast = *req.Cast
	}
	if req.TrailerURL != nil {
		series.TrailerURL = *req.TrailerURL
	}
	if req.IsComingSoon != nil {
		series.IsComingSoon = *req.IsComingSoon
	}
	if req.IsTrending != nil {
		series.IsTrending = *req.IsTrending
	}
}

func seriesQuery(db *gorm.DB, filter MovieListFilter) *gorm.DB {
	q := db.Model(&models.Series{})
	if filter.GenreID != "" {
		q = q.Where("genre_id = ?", filter.GenreID)
	}
	if filter.VJID != "" {
		q = q.Where("vj_id = ?", filter.VJID)
	}
	if filter.YearID != "" {
		q = q.Where("year_id = ?", filter.YearID)
	}
	if filter.IsTrending != "" {
		q = q.Where("is_trending = ?", filter.IsTrending == "true")
	}
	if filter.IsComingSoon != "" {
		q = q.Where("is_coming_soon = ?", filter.IsComingSoon == "true")
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(director) LIKE ?", pattern, pattern, pattern)
	}
	return q
}

func ListSeries(filter MovieListFilter) (*SeriesPage, *utils.ServiceError) {
	db := config.DB
	offset := (filter.Page - 1) * filter.Limit

	var (
		series []models.Series
		total  int64
	)

	var g errgroup.Group
	g.Go(func() error {
		return seriesQuery(db.Session(&gorm.Session{}), filter).
			Preload("VJ").Preload("Genre").Preload("Year").
			Order("created_at desc").
			Offset(offset).Limit(filter.Limit).
			Find(&series).Error
	})
	g.Go(func() error {
		return seriesQuery(db.Session(&gorm.Session{}), filter).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error fetching series: %v", err)
		return nil, utils.ServerError("Failed to fetch series")
	}

	return &SeriesPage{
		Series:     series,
		Pagination: utils.Paginate(total, filter.Page, filter.Limit),
	}, nil
}

func GetSeriesByID(id string) (*models.Series, *utils.ServiceError) {
	return getSeries("id = ?", id)
}

func GetSeriesBySlug(slug string) (*models.Series, *utils.ServiceError) {
	return getSeries("slug = ?", slug)
}

func getSeries(query string, arg string) (*models.Series, *utils.ServiceError) {
	db := config.DB

	var series models.Series
	err := db.Preload("VJ").Preload("Genre").Preload("Year").
		Preload("Seasons", func(q *gorm.DB) *gorm.DB {
			return q.Order("season_number asc")
		}).
		Where(query, arg).First(&series).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Series not found")
		}
		log.Printf("Error fetching series: %v", err)
		return nil, utils.ServerError("Server error")
	}

	if svcErr := fillEpisodeCounts(series.Seasons); svcErr != nil {
		return nil, svcErr
	}
	return &series, nil
}

func loadSeries(id string) (*models.Series, *utils.ServiceError) {
	return getSeries("id = ?", id)
}

// fillEpisodeCounts resolves per-season episode counts in one grouped query.
func fillEpisodeCounts(seasons []models.Season) *utils.ServiceError {
	if len(seasons) == 0 {
		return nil
	}
	db := config.DB

	ids := make([]string, len(seasons))
	for i, s := range seasons {
		ids[i] = s.ID
	}

	type row struct {
		Key   string
		Total int64
	}
	var rows []row
	err := db.Model(&models.Episode{}).
		Select("season_id as key, count(*) as total").
		Where("season_id IN ?", ids).
		Group("season_id").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error counting episodes: %v", err)
		return utils.ServerError("Server error")
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Key] = r.Total
	}
	for i := range seasons {
		seasons[i].EpisodeCount = counts[seasons[i].ID]
	}
	return nil
}

func TrendingSeries(limit int) ([]models.Series, *utils.ServiceError) {
	db := config.DB

	if limit <= 0 {
		limit = 10
	}

	var series []models.Series
	err := db.Preload("VJ").Preload("Genre").Preload("Year").
		Where("is_trending = ?", true).
		Order("views_count desc").
		Limit(limit).
		Find(&series).Error
	if err != nil {
		log.Printf("Error fetching trending series: %v", err)
		return nil, utils.ServerError("Failed to fetch trending series")
	}
	return series, nil
}

func ComingSoonSeries(limit int) ([]models.Series, *utils.ServiceError) {
	db := config.DB

	if limit <= 0 {
		limit = 10
	}

	var series []models.Series
	err := db.Preload("VJ").Preload("Genre").Preload("Year").
		Where("is_coming_soon = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&series).Error
	if err != nil {
		log.Printf("Error fetching coming soon series: %v", err)
		return nil, utils.ServerError("Failed to fetch coming soon series")
	}
	return series, nil
}

func UpdateSeries(id string, req SeriesRequest) (*models.Series, *utils.ServiceError) {
	db := config.DB

	var existing models.Series
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Series not found")
		}
		log.Printf("Error fetching series: %v", err)
		return nil, utils.ServerError("Failed to update series")
	}

	if svcErr := validateMovieRefs(db, req.VJID, req.GenreID, req.YearID); svcErr != nil {
		return nil, svcErr
	}

	title := strings.TrimSpace(req.Title)
	if title != "" && title != existing.Title {
		slug := utils.GenerateSlug(title)

		var conflict models.Series
		err := db.Where("slug = ? AND id <> ?", slug, id).Select("id").First(&conflict).Error
		if err == nil {
			return nil, utils.Conflict("Series with this title already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error checking series conflict: %v", err)
			return nil, utils.ServerError("Failed to update series")
		}

		existing.Title = title
		existing.Slug = slug
	}

	if req.VJID != "" {
		existing.VJID = req.VJID
	}
	if req.GenreID != "" {
		existing.GenreID = req.GenreID
	}
	if req.YearID != "" {
		existing.YearID = req.YearID
	}
	applySeriesFields(&existing, req)

	if err := db.Save(&existing).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("Series with this title already exists")
		}
		log.Printf("Error updating series: %v", err)
		return nil, utils.ServerError("Failed to update series")
	}

	return loadSeries(id)
}

// DeleteSeries relies on the cascading constraints to remove seasons and
// episodes along with the parent row.
func DeleteSeries(id string) *utils.ServiceError {
	db := config.DB

	var series models.Series
	if err := db.Select("id").First(&series, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Series not found")
		}
		log.Printf("Error fetching series: %v", err)
		return utils.ServerError("Failed to delete series")
	}

	if err := db.Delete(&models.Series{}, "id = ?", id).Error; err != nil {
		log.Printf("Error deleting series: %v", err)
		return utils.ServerError("Failed to delete series")
	}
	return nil
}

func IncrementSeriesViews(id string) (*models.Series, *utils.ServiceError) {
	db := config.DB

	res := db.Model(&models.Series{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if res.Error != nil {
		log.Printf("Error incrementing series views: %v", res.Error)
		return nil, utils.ServerError("Failed to update view count")
	}
	if res.RowsAffected == 0 {
		return nil, utils.NotFound("Series not found")
	}

	return loadSeries(id)
}
