package catalog

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"moviechamp/src/config"
	models "moviechamp/src/modules/catalog/models"
	"moviechamp/src/utils"
)

// Cinema did not exist before 1888; allow a small window into the future
// for announced titles.
const earliestReleaseYear = 1888

type ReleaseYearRequest struct {
	Value int `json:"value"`
}

func validateYearValue(value int) *utils.ServiceError {
	maxYear := time.Now().Year() + 5
	if value < earliestReleaseYear || value > maxYear {
		return utils.BadRequest(fmt.Sprintf("Year must be between %d and %d", earliestReleaseYear, maxYear))
	}
	return nil
}

func CreateReleaseYear(req ReleaseYearRequest) (*models.ReleaseYear, *utils.ServiceError) {
	db := config.DB

	if req.Value == 0 {
		return nil, utils.BadRequest("Year value is required and must be a number")
	}
	if svcErr := validateYearValue(req.Value); svcErr != nil {
		return nil, svcErr
	}

	var existing models.ReleaseYear
	err := db.Where("value = ?", req.Value).Select("id").First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("This year already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking year conflict: %v", err)
		return nil, utils.ServerError("Failed to create release year")
	}

	year := models.ReleaseYear{Value: req.Value}
	if err := db.Create(&year).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("This year already exists")
		}
		log.Printf("Error creating release year: %v", err)
		return nil, utils.ServerError("Failed to create release year")
	}

	return &year, nil
}

func ListReleaseYears() ([]models.ReleaseYear, *utils.ServiceError) {
	db := config.DB

	var years []models.ReleaseYear
	if err := db.Order("value desc").Find(&years).Error; err != nil {
		log.Printf("Error fetching release years: %v", err)
		return nil, utils.ServerError("Failed to fetch release years")
	}

	counts, svcErr := movieCountsBy("year_id")
	if svcErr != nil {
		return nil, svcErr
	}
	for i := range years {
		years[i].MovieCount = counts[years[i].ID]
	}

	return years, nil
}

func GetReleaseYearByID(id string) (*models.ReleaseYear, *utils.ServiceError) {
	return getReleaseYear("id = ?", id)
}

func GetReleaseYearByValue(value int) (*models.ReleaseYear, *utils.ServiceError) {
	return getReleaseYear("value = ?", value)
}

func getReleaseYear(query string, arg interface{}) (*models.ReleaseYear, *utils.ServiceError) {
	db := config.DB

	var year models.ReleaseYear
	if err := db.Where(query, arg).First(&year).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Release year not found")
		}
		log.Printf("Error fetching release year: %v", err)
		return nil, utils.ServerError("Server error")
	}

	if err := db.Model(&models.Movie{}).Where("year_id = ?", year.ID).Count(&year.MovieCount).Error; err != nil {
		log.Printf("Error counting year movies: %v", err)
		return nil, utils.ServerError("Server error")
	}

	return &year, nil
}

func UpdateReleaseYear(id string, req ReleaseYearRequest) (*models.ReleaseYear, *utils.ServiceError) {
	db := config.DB

	var existing models.ReleaseYear
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Release year not found")
		}
		log.Printf("Error fetching release year: %v", err)
		return nil, utils.ServerError("Failed to update release year")
	}

	if req.Value != 0 {
		if svcErr := validateYearValue(req.Value); svcErr != nil {
			return nil, svcErr
		}

		var conflict models.ReleaseYear
		err := db.Where("value = ? AND id <> ?", req.Value, id).Select("id").First(&conflict).Error
		if err == nil {
			return nil, utils.Conflict("This year already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error checking year conflict: %v", err)
			return nil, utils.ServerError("Failed to update release year")
		}

		existing.Value = req.Value
	}

	if err := db.Save(&existing).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("This year already exists")
		}
		log.Printf("Error updating release year: %v", err)
		return nil, utils.ServerError("Failed to update release year")
	}

	if err := db.Model(&models.Movie{}).Where("year_id = ?", id).Count(&existing.MovieCount).Error; err != nil {
		log.Printf("Error counting year movies: %v", err)
		return nil, utils.ServerError("Failed to update release year")
	}

	return &existing, nil
}

func DeleteReleaseYear(id string) *utils.ServiceError {
	db := config.DB

	var year models.ReleaseYear
	if err := db.Select("id").First(&year, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Release year not found")
		}
		log.Printf("Error fetching release year: %v", err)
		return utils.ServerError("Failed to delete release year")
	}

	var movieCount int64
	if err := db.Model(&models.Movie{}).Where("year_id = ?", id).Count(&movieCount).Error; err != nil {
		log.Printf("Error counting year movies: %v", err)
		return utils.ServerError("Failed to delete release year")
	}
	if movieCount > 0 {
		return utils.BadRequest(fmt.Sprintf("Cannot delete year. It has %d movie(s) associated with it.", movieCount))
	}

	if err := db.Delete(&models.ReleaseYear{}, "id = ?", id).Error; err != nil {
		log.Printf("Error deleting release year: %v", err)
		return utils.ServerError("Failed to delete release year")
	}

	return nil
}
