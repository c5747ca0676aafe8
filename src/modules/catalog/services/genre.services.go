package catalog

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"moviechamp/src/config"
	models "moviechamp/src/modules/catalog/models"
	"moviechamp/src/utils"
)

type GenreRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func CreateGenre(req GenreRequest) (*models.Genre, *utils.ServiceError) {
	db := config.DB

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.BadRequest("Genre name is required")
	}
	slug := utils.GenerateSlug(name)

	var existing models.Genre
	err := db.Where("name = ? OR slug = ?", name, slug).Select("id").First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("Genre with this name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking genre conflict: %v", err)
		return nil, utils.ServerError("Failed to create genre")
	}

	genre := models.Genre{
		Name:        name,
		Slug:        slug,
		Description: trimmedOrNil(req.Description),
	}
	if err := db.Create(&genre).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("Genre with this name already exists")
		}
		log.Printf("Error creating genre: %v", err)
		return nil, utils.ServerError("Failed to create genre")
	}

	return &genre, nil
}

func ListGenres() ([]models.Genre, *utils.ServiceError) {
	db := config.DB

	var genres []models.Genre
	if err := db.Order("name asc").Find(&genres).Error; err != nil {
		log.Printf("Error fetching genres: %v", err)
		return nil, utils.ServerError("Failed to fetch genres")
	}

	counts, svcErr := movieCountsBy("genre_id")
	if svcErr != nil {
		return nil, svcErr
	}
	for i := range genres {
		genres[i].MovieCount = counts[genres[i].ID]
	}

	return genres, nil
}

func GetGenreByID(id string) (*models.Genre, *utils.ServiceError) {
	return getGenre("id = ?", id)
}

func GetGenreBySlug(slug string) (*models.Genre, *utils.ServiceError) {
	return getGenre("slug = ?", slug)
}

func getGenre(query string, arg string) (*models.Genre, *utils.ServiceError) {
	db := config.DB

	var genre models.Genre
	if err := db.Where(query, arg).First(&genre).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Genre not found")
		}
		log.Printf("Error fetching genre: %v", err)
		return nil, utils.ServerError("Server error")
	}

	if err := db.Model(&models.Movie{}).Where("genre_id = ?", genre.ID).Count(&genre.MovieCount).Error; err != nil {
		log.Printf("Error counting genre movies: %v", err)
		return nil, utils.ServerError("Server error")
	}

	return &genre, nil
}

func UpdateGenre(id string, req GenreRequest) (*models.Genre, *utils.ServiceError) {
	db := config.DB

	var existing models.Genre
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Genre not found")
		}
		log.Printf("Error fetching genre: %v", err)
		return nil, utils.ServerError("Failed to update genre")
	}

	name := strings.TrimSpace(req.Name)
	slug := existing.Slug
	if name != "" && name != existing.Name {
		slug = utils.GenerateSlug(name)

		var conflict models.Genre
		err := db.Where("(name = ? OR slug = ?) AND id <> ?", name, slug, id).Select("id").First(&conflict).Error
		if err == nil {
			return nil, utils.Conflict("Genre with this name already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error checking genre conflict: %v", err)
			return nil, utils.ServerError("Failed to update genre")
		}
	}

	if name != "" {
		existing.Name = name
	}
	existing.Slug = slug
	if req.Description != nil {
		existing.Description = trimmedOrNil(req.Description)
	}

	if err := db.Save(&existing).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("Genre with this name already exists")
		}
		log.Printf("Error updating genre: %v", err)
		return nil, utils.ServerError("Failed to update genre")
	}

	if err := db.Model(&models.Movie{}).Where("genre_id = ?", id).Count(&existing.MovieCount).Error; err != nil {
		log.Printf("Error counting genre movies: %v", err)
		return nil, utils.ServerError("Failed to update genre")
	}

	return &existing, nil
}

func DeleteGenre(id string) *utils.ServiceError {
	db := config.DB

	var genre models.Genre
	if err := db.Select("id").First(&genre, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Genre not found")
		}
		log.Printf("Error fetching genre: %v", err)
		return utils.ServerError("Failed to delete genre")
	}

	var movieCount int64
	if err := db.Model(&models.Movie{}).Where("genre_id = ?", id).Count(&movieCount).Error; err != nil {
		log.Printf("Error counting genre movies: %v", err)
		return utils.ServerError("Failed to delete genre")
	}
	if movieCount > 0 {
		return utils.BadRequest(fmt.Sprintf("Cannot delete genre. It has %d movie(s) associated with it.", movieCount))
	}

	if err := db.Delete(&models.Genre{}, "id = ?", id).Error; err != nil {
		log.Printf("Error deleting genre: %v", err)
		return utils.ServerError("Failed to delete genre")
	}

	return nil
}

// movieCountsBy groups the movies table by the given foreign key column.
func movieCountsBy(column string) (map[string]int64, *utils.ServiceError) {
	db := config.DB

	type row struct {
		Key   string
		Total int64
	}
	var rows []row
	err := db.Model(&models.Movie{}).
		Select(column + " as key, count(*) as total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error grouping movies by %s: %v", column, err)
		return nil, utils.ServerError("Server error")
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Key] = r.Total
	}
	return counts, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
