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

// MovieRequest carries both create and update payloads; pointer fields
// distinguish "absent" from "set to zero value" on update.
type MovieRequest struct {
	Title         string    `json:"title"`
	Image         *string   `json:"image"`
	Poster        *string   `json:"poster"`
	TrailerPoster *string   `json:"trailerPoster"`
	Rating        *float64  `json:"rating"`
	VJID          string    `json:"vjId"`
	GenreID       string    `json:"genreId"`
	YearID        string    `json:"yearId"`
	Size          *string   `json:"size"`
	SizeBytes     *int64    `json:"sizeBytes"`
	Length        *string   `json:"length"`
	LengthSeconds *int      `json:"lengthSeconds"`
	Description   *string   `json:"description"`
	Director      *string   `json:"director"`
	Cast          *[]string `json:"cast"`
	TrailerURL    *string   `json:"trailerUrl"`
	VideoURL      *string   `json:"videoUrl"`
	IsComingSoon  *bool     `json:"isComingSoon"`
	IsTrending    *bool     `json:"isTrending"`
}

// MovieListFilter is built from the listing query string.
type MovieListFilter struct {
	Page         int
	Limit        int
	GenreID      string
	VJID         string
	YearID       string
	IsTrending   string
	IsComingSoon string
	Search       string
}

type MoviePage struct {
	Movies     []models.Movie         `json:"movies"`
	Pagination map[string]interface{} `json:"pagination"`
}

func validateMovieRefs(db *gorm.DB, vjID, genreID, yearID string) *utils.ServiceError {
	if vjID != "" {
		var vj models.VJ
		if err := db.Select("id").First(&vj, "id = ?", vjID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.BadRequest("VJ not found")
			}
			log.Printf("Error checking VJ reference: %v", err)
			return utils.ServerError("Server error")
		}
	}
	if genreID != "" {
		var genre models.Genre
		if err := db.Select("id").First(&genre, "id = ?", genreID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.BadRequest("Genre not found")
			}
			log.Printf("Error checking genre reference: %v", err)
			return utils.ServerError("Server error")
		}
	}
	if yearID != "" {
		var year models.ReleaseYear
		if err := db.Select("id").First(&year, "id = ?", yearID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.BadRequest("Release year not found")
			}
			log.Printf("Error checking year reference: %v", err)
			return utils.ServerError("Server error")
		}
	}
	return nil
}

func CreateMovie(req MovieRequest) (*models.Movie, *utils.ServiceError) {
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
	var existing models.Movie
	err := db.Where("slug = ?", slug).Select("id").First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("Movie with this title already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking movie conflict: %v", err)
		return nil, utils.ServerError("Failed to create movie")
	}

	movie := models.Movie{
		Title:   title,
		Slug:    slug,
		VJID:    req.VJID,
		GenreID: req.GenreID,
		YearID:  req.YearID,
	}
	applyMovieFields(&movie, req)

	if err := db.Create(&movie).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("Movie with this title already exists")
		}
		log.Printf("Error creating movie: %v", err)
		return nil, utils.ServerError("Failed to create movie")
	}

	return loadMovie(movie.ID)
}

func applyMovieFields(movie *models.Movie, req MovieRequest) {
	if req.Image != nil {
		movie.Image = strings.TrimSpace(*req.Image)
	}
	if req.Poster != nil {
		movie.Poster = strings.TrimSpace(*req.Poster)
	}
	if req.TrailerPoster != nil {
		movie.TrailerPoster = strings.TrimSpace(*req.TrailerPoster)
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	if req.Size != nil {
		movie.Size = *req.Size
	}
	if req.SizeBytes != nil {
		movie.SizeBytes = req.SizeBytes
	}
	if req.Length != nil {
		movie.Length = *req.Length
	}
	if req.LengthSeconds != nil {
		movie.LengthSeconds = req.LengthSeconds
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Director != nil {
		movie.Director = strings.TrimSpace(*req.Director)
	}
	if req.Cast != nil {
		movie.Cast = *req.Cast
	}
	if req.TrailerURL != nil {
		movie.TrailerURL = *req.TrailerURL
	}
	if req.VideoURL != nil {
		movie.VideoURL = *req.VideoURL
	}
	if req.IsComingSoon != nil {
		movie.IsComingSoon = *req.IsComingSoon
	}
	if req.IsTrending != nil {
		movie.IsTrending = *req.IsTrending
	}
}

func movieQuery(db *gorm.DB, filter MovieListFilter) *gorm.DB {
	q := db.Model(&models.Movie{})
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

// ListMovies runs the page query and the total count in parallel.
func ListMovies(filter MovieListFilter) (*MoviePage, *utils.ServiceError) {
	db := config.DB
	offset := (filter.Page - 1) * filter.Limit

	var (
		movies []models.Movie
		total  int64
	)

	var g errgroup.Group
	g.Go(func() error {
		return movieQuery(db.Session(&gorm.Session{}), filter).
			Preload("VJ").Preload("Genre").Preload("Year").
			Order("created_at desc").
			Offset(offset).Limit(filter.Limit).
			Find(&movies).Error
	})
	g.Go(func() error {
		return movieQuery(db.Session(&gorm.Session{}), filter).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error fetching movies: %v", err)
		return nil, utils.ServerError("Failed to fetch movies")
	}

	return &MoviePage{
		Movies:     movies,
		Pagination: utils.Paginate(total, filter.Page, filter.Limit),
	}, nil
}

func GetMovieByID(id string) (*models.Movie, *utils.ServiceError) {
	return getMovie("id = ?", id)
}

func GetMovieBySlug(slug string) (*models.Movie, *utils.ServiceError) {
	return getMovie("slug = ?", slug)
}

func getMovie(query string, arg string) (*models.Movie, *utils.ServiceError) {
	db := config.DB

	var movie models.Movie
	err := db.Preload("VJ").Preload("Genre").Preload("Year").
		Where(query, arg).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Movie not found")
		}
		log.Printf("Error fetching movie: %v", err)
		return nil, utils.ServerError("Server error")
	}
	return &movie, nil
}

func loadMovie(id string) (*models.Movie, *utils.ServiceError) {
	return getMovie("id = ?", id)
}

// TrendingMovies returns the most viewed titles flagged as trending.
func TrendingMovies(limit int) ([]models.Movie, *utils.ServiceError) {
	db := config.DB

	if limit <= 0 {
		limit = 10
	}

	var movies []models.Movie
	err := db.Preload("VJ").Preload("Genre").Preload("Year").
		Where("is_trending = ?", true).
		Order("views_count desc").
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		log.Printf("Error fetching trending movies: %v", err)
		return nil, utils.ServerError("Failed to fetch trending movies")
	}
	return movies, nil
}

func ComingSoonMovies(limit int) ([]models.Movie, *utils.ServiceError) {
	db := config.DB

	if limit <= 0 {
		limit = 10
	}

	var movies []models.Movie
	err := db.Preload("VJ").Preload("Genre").Preload("Year").
		Where("is_coming_soon = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		log.Printf("Error fetching coming soon movies: %v", err)
		return nil, utils.ServerError("Failed to fetch coming soon movies")
	}
	return movies, nil
}

func UpdateMovie(id string, req MovieRequest) (*models.Movie, *utils.ServiceError) {
	db := config.DB

	var existing models.Movie
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Movie not found")
		}
		log.Printf("Error fetching movie: %v", err)
		return nil, utils.ServerError("Failed to update movie")
	}

	if svcErr := validateMovieRefs(db, req.VJID, req.GenreID, req.YearID); svcErr != nil {
		return nil, svcErr
	}

	title := strings.TrimSpace(req.Title)
	if title != "" && title != existing.Title {
		slug := utils.GenerateSlug(title)

		var conflict models.Movie
		err := db.Where("slug = ? AND id <> ?", slug, id).Select("id").First(&conflict).Error
		if err == nil {
			return nil, utils.Conflict("Movie with this title already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error checking movie conflict: %v", err)
			return nil, utils.ServerError("Failed to update movie")
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
	applyMovieFields(&existing, req)

	if err := db.Save(&existing).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("Movie with this title already exists")
		}
		log.Printf("Error updating movie: %v", err)
		return nil, utils.ServerError("Failed to update movie")
	}

	return loadMovie(id)
}

func DeleteMovie(id string) *utils.ServiceError {
	db := config.DB

	var movie models.Movie
	if err := db.Select("id").First(&movie, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Movie not found")
		}
		log.Printf("Error fetching movie: %v", err)
		return utils.ServerError("Failed to delete movie")
	}

	if err := db.Delete(&models.Movie{}, "id = ?", id).Error; err != nil {
		log.Printf("Error deleting movie: %v", err)
		return utils.ServerError("Failed to delete movie")
	}
	return nil
}

// IncrementMovieViews bumps the denormalized counter in place.
func IncrementMovieViews(id string) (*models.Movie, *utils.ServiceError) {
	db := config.DB

	res := db.Model(&models.Movie{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if res.Error != nil {
		log.Printf("Error incrementing movie views: %v", res.Error)
		return nil, utils.ServerError("Failed to update view count")
	}
	if res.RowsAffected == 0 {
		return nil, utils.NotFound("Movie not found")
	}

	return loadMovie(id)
}
