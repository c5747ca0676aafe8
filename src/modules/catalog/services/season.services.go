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

type SeasonRequest struct {
	SeasonNumber int     `json:"seasonNumber"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Poster       *string `json:"poster"`
	TrailerURL   *string `json:"trailerUrl"`
	ReleaseYear  *int    `json:"releaseYear"`
}

func CreateSeason(seriesID string, req SeasonRequest) (*models.Season, *utils.ServiceError) {
	db := config.DB

	if req.SeasonNumber <= 0 {
		return nil, utils.BadRequest("seasonNumber is required and must be positive")
	}

	var series models.Series
	if err := db.Select("id").First(&series, "id = ?", seriesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Series not found")
		}
		log.Printf("Error fetching series: %v", err)
		return nil, utils.ServerError("Failed to create season")
	}

	var existing models.Season
	err := db.Where("series_id = ? AND season_number = ?", seriesID, req.SeasonNumber).
		Select("id").First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("Season with this number already exists for this series")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking season conflict: %v", err)
		return nil, utils.ServerError("Failed to create season")
	}

	season := models.Season{
		SeriesID:     seriesID,
		SeasonNumber: req.SeasonNumber,
		Title:        fmt.Sprintf("Season %d", req.SeasonNumber),
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		season.Title = strings.TrimSpace(*req.Title)
	}
	season.Description = trimmedOrNil(req.Description)
	season.Poster = trimmedOrNil(req.Poster)
	season.TrailerURL = trimmedOrNil(req.TrailerURL)
	season.ReleaseYear = req.ReleaseYear

	if err := db.Create(&season).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("Season with this number already exists for this series")
		}
		log.Printf("Error creating season: %v", err)
		return nil, utils.ServerError("Failed to create season")
	}

	// Counter drift is tolerated; the season row is already committed.
	err = db.Model(&models.Series{}).Where("id = ?", seriesID).
		UpdateColumn("total_seasons", gorm.Expr("total_seasons + 1")).Error
	if err != nil {
		log.Printf("Error updating series season count: %v", err)
	}

	return &season, nil
}

func ListSeasons(seriesID string) ([]models.Season, *utils.ServiceError) {
	db := config.DB

	var series models.Series
	if err := db.Select("id").First(&series, "id = ?", seriesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Series not found")
		}
		log.Printf("Error fetching series: %v", err)
		return nil, utils.ServerError("Failed to fetch seasons")
	}

	var seasons []models.Season
	err := db.Where("series_id = ?", seriesID).
		Order("season_number asc").
		Find(&seasons).Error
	if err != nil {
		log.Printf("Error fetching seasons: %v", err)
		return nil, utils.ServerError("Failed to fetch seasons")
	}

	if svcErr := fillEpisodeCounts(seasons); svcErr != nil {
		return nil, svcErr
	}
	return seasons, nil
}

func GetSeasonByID(id string) (*models.Season, *utils.ServiceError) {
	db := config.DB

	var season models.Season
	err := db.Preload("Series").
		Preload("Episodes", func(q *gorm.DB) *gorm.DB {
			return q.Order("episode_number asc")
		}).
		First(&season, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Season not found")
		}
		log.Printf("Error fetching season: %v", err)
		return nil, utils.ServerError("Server error")
	}

	season.EpisodeCount = int64(len(season.Episodes))
	return &season, nil
}

func UpdateSeason(id string, req SeasonRequest) (*models.Season, *utils.ServiceError) {
	db := config.DB

	var existing models.Season
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Season not found")
		}
		log.Printf("Error fetching season: %v", err)
		return nil, utils.ServerError("Failed to update season")
	}

	if req.SeasonNumber > 0 && req.SeasonNumber != existing.SeasonNumber {
		var conflict models.Season
		err := db.Where("series_id = ? AND season_number = ? AND id <> ?",
			existing.SeriesID, req.SeasonNumber, id).
			Select("id").First(&conflict).Error
		if err == nil {
			return nil, utils.Conflict("Season with this number already exists for this series")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error checking season conflict: %v", err)
			return nil, utils.ServerError("Failed to update season")
		}
		existing.SeasonNumber = req.SeasonNumber
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		existing.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		existing.Description = trimmedOrNil(req.Description)
	}
	if req.Poster != nil {
		existing.Poster = trimmedOrNil(req.Poster)
	}
	if req.TrailerURL != nil {
		existing.TrailerURL = trimmedOrNil(req.TrailerURL)
	}
	if req.ReleaseYear != nil {
		existing.ReleaseYear = req.ReleaseYear
	}

	if err := db.Save(&existing).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("Season with this number already exists for this series")
		}
		log.Printf("Error updating season: %v", err)
		return nil, utils.ServerError("Failed to update season")
	}

	return &existing, nil
}

func DeleteSeason(id string) *utils.ServiceError {
	db := config.DB

	var season models.Season
	if err := db.First(&season, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Season not found")
		}
		log.Printf("Error fetching season: %v", err)
		return utils.ServerError("Failed to delete season")
	}

	var episodeCount int64
	if err := db.Model(&models.Episode{}).Where("season_id = ?", id).Count(&episodeCount).Error; err != nil {
		log.Printf("Error counting episodes: %v", err)
		return utils.ServerError("Failed to delete season")
	}

	if err := db.Select("Episodes").Delete(&season).Error; err != nil {
		log.Printf("Error deleting season: %v", err)
		return utils.ServerError("Failed to delete season")
	}

	err := db.Model(&models.Series{}).Where("id = ?", season.SeriesID).
		UpdateColumns(map[string]interface{}{
			"total_seasons":  gorm.Expr("total_seasons - 1"),
			"total_episodes": gorm.Expr("total_episodes - ?", episodeCount),
		}).Error
	if err != nil {
		log.Printf("Error updating series counters: %v", err)
	}

	return nil
}
