package catalog

import (
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"moviechamp/src/config"
	models "moviechamp/src/modules/catalog/models"
	"moviechamp/src/utils"
)

type EpisodeRequest struct {
	EpisodeNumber int     `json:"episodeNumber"`
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	VideoURL      string  `json:"videoUrl"`
	Poster        *string `json:"poster"`
	Length        *string `json:"length"`
	LengthSeconds *int    `json:"lengthSeconds"`
	Size          *string `json:"size"`
	ReleaseDate   *string `json:"releaseDate"`
}

func parseReleaseDate(raw *string) (*time.Time, *utils.ServiceError) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, utils.BadRequest("Invalid releaseDate format")
}

func CreateEpisode(seasonID string, req EpisodeRequest) (*models.Episode, *utils.ServiceError) {
	db := config.DB

	if req.EpisodeNumber <= 0 {
		return nil, utils.BadRequest("episodeNumber is required and must be positive")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, utils.BadRequest("Title is required")
	}
	videoURL := strings.TrimSpace(req.VideoURL)
	if videoURL == "" {
		return nil, utils.BadRequest("videoUrl is required")
	}

	var season models.Season
	if err := db.Select("id, series_id").First(&season, "id = ?", seasonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Season not found")
		}
		log.Printf("Error fetching season: %v", err)
		return nil, utils.ServerError("Failed to create episode")
	}

	var existing models.Episode
	err := db.Where("season_id = ? AND episode_number = ?", seasonID, req.EpisodeNumber).
		Select("id").First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("Episode with this number already exists in this season")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking episode conflict: %v", err)
		return nil, utils.ServerError("Failed to create episode")
	}

	releaseDate, svcErr := parseReleaseDate(req.ReleaseDate)
	if svcErr != nil {
		return nil, svcErr
	}

	episode := models.Episode{
		SeasonID:      seasonID,
		EpisodeNumber: req.EpisodeNumber,
		Title:         title,
		Description:   trimmedOrNil(req.Description),
		VideoURL:      videoURL,
		Poster:        trimmedOrNil(req.Poster),
		Length:        trimmedOrNil(req.Length),
		LengthSeconds: req.LengthSeconds,
		Size:          trimmedOrNil(req.Size),
		ReleaseDate:   releaseDate,
	}

	if err := db.Create(&episode).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("Episode with this number already exists in this season")
		}
		log.Printf("Error creating episode: %v", err)
		return nil, utils.ServerError("Failed to create episode")
	}

	// Counter drift is tolerated; the episode row is already committed.
	bumpEpisodeCounters(season.ID, season.SeriesID, 1)

	return &episode, nil
}

func bumpEpisodeCounters(seasonID, seriesID string, delta int) {
	db := config.DB

	err := db.Model(&models.Season{}).Where("id = ?", seasonID).
		UpdateColumn("total_episodes", gorm.Expr("total_episodes + ?", delta)).Error
	if err != nil {
		log.Printf("Error updating season episode count: %v", err)
	}
	err = db.Model(&models.Series{}).Where("id = ?", seriesID).
		UpdateColumn("total_episodes", gorm.Expr("total_episodes + ?", delta)).Error
	if err != nil {
		log.Printf("Error updating series episode count: %v", err)
	}
}

func ListEpisodes(seasonID string) ([]models.Episode, *utils.ServiceError) {
	db := config.DB

	var season models.Season
	if err := db.Select("id").First(&season, "id = ?", seasonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Season not found")
		}
		log.Printf("Error fetching season: %v", err)
		return nil, utils.ServerError("Failed to fetch episodes")
	}

	var episodes []models.Episode
	err := db.Where("season_id = ?", seasonID).
		Order("episode_number asc").
		Find(&episodes).Error
	if err != nil {
		log.Printf("Error fetching episodes: %v", err)
		return nil, utils.ServerError("Failed to fetch episodes")
	}
	return episodes, nil
}

func GetEpisodeByID(id string) (*models.Episode, *utils.ServiceError) {
	db := config.DB

	var episode models.Episode
	err := db.Preload("Season").Preload("Season.Series").
		First(&episode, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Episode not found")
		}
		log.Printf("Error fetching episode: %v", err)
		return nil, utils.ServerError("Server error")
	}
	return &episode, nil
}

func UpdateEpisode(id string, req EpisodeRequest) (*models.Episode, *utils.ServiceError) {
	db := config.DB

	var existing models.Episode
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Episode not found")
		}
		log.Printf("Error fetching episode: %v", err)
		return nil, utils.ServerError("Failed to update episode")
	}

	if req.EpisodeNumber > 0 && req.EpisodeNumber != existing.EpisodeNumber {
		var conflict models.Episode
		err := db.Where("season_id = ? AND episode_number = ? AND id <> ?",
			existing.SeasonID, req.EpisodeNumber, id).
			Select("id").First(&conflict).Error
		if err == nil {
			return nil, utils.Conflict("Episode with this number already exists in this season")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error checking episode conflict: %v", err)
			return nil, utils.ServerError("Failed to update episode")
		}
		existing.EpisodeNumber = req.EpisodeNumber
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		existing.Title = title
	}
	if videoURL := strings.TrimSpace(req.VideoURL); videoURL != "" {
		existing.VideoURL = videoURL
	}
	if req.Description != nil {
		existing.Description = trimmedOrNil(req.Description)
	}
	if req.Poster != nil {
		existing.Poster = trimmedOrNil(req.Poster)
	}
	if req.Length != nil {
		existing.Length = trimmedOrNil(req.Length)
	}
	if req.LengthSeconds != nil {
		existing.LengthSeconds = req.LengthSeconds
	}
	if req.Size != nil {
		existing.Size = trimmedOrNil(req.Size)
	}
	if req.ReleaseDate != nil {
		releaseDate, svcErr := parseReleaseDate(req.ReleaseDate)
		if svcErr != nil {
			return nil, svcErr
		}
		existing.ReleaseDate = releaseDate
	}

	if err := db.Save(&existing).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("Episode with this number already exists in this season")
		}
		log.Printf("Error updating episode: %v", err)
		return nil, utils.ServerError("Failed to update episode")
	}

	return &existing, nil
}

func DeleteEpisode(id string) *utils.ServiceError {
	db := config.DB

	var episode models.Episode
	if err := db.Preload("Season").First(&episode, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Episode not found")
		}
		log.Printf("Error fetching episode: %v", err)
		return utils.ServerError("Failed to delete episode")
	}

	if err := db.Delete(&models.Episode{}, "id = ?", id).Error; err != nil {
		log.Printf("Error deleting episode: %v", err)
		return utils.ServerError("Failed to delete episode")
	}

	if episode.Season != nil {
		bumpEpisodeCounters(episode.SeasonID, episode.Season.SeriesID, -1)
	}
	return nil
}

// IncrementEpisodeViews bumps the episode counter and rolls the view up to
// the parent series.
func IncrementEpisodeViews(id string) (*models.Episode, *utils.ServiceError) {
	db := config.DB

	var episode models.Episode
	if err := db.Preload("Season").First(&episode, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Episode not found")
		}
		log.Printf("Error fetching episode: %v", err)
		return nil, utils.ServerError("Failed to update view count")
	}

	err := db.Model(&models.Episode{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
	if err != nil {
		log.Printf("Error incrementing episode views: %v", err)
		return nil, utils.ServerError("Failed to update view count")
	}

	if episode.Season != nil {
		err = db.Model(&models.Series{}).Where("id = ?", episode.Season.SeriesID).
			UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
		if err != nil {
			log.Printf("Error incrementing series views: %v", err)
		}
	}

	episode.ViewsCount++
	return &episode, nil
}

// NextEpisode resolves the episode that follows the given one in watch
// order: the next number within the same season, otherwise the first
// episode of the next season. A next season with no episodes yet ends the
// sequence rather than skipping ahead.
func NextEpisode(id string) (*models.Episode, *utils.ServiceError) {
	db := config.DB

	current, svcErr := episodeWithSeason(id)
	if svcErr != nil {
		return nil, svcErr
	}

	var next models.Episode
	err := db.Where("season_id = ? AND episode_number > ?", current.SeasonID, current.EpisodeNumber).
		Order("episode_number asc").
		First(&next).Error
	if err == nil {
		return &next, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error fetching next episode: %v", err)
		return nil, utils.ServerError("Server error")
	}

	var nextSeason models.Season
	err = db.Where("series_id = ? AND season_number > ?", current.Season.SeriesID, current.Season.SeasonNumber).
		Order("season_number asc").
		First(&nextSeason).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("No next episode found")
		}
		log.Printf("Error fetching next season: %v", err)
		return nil, utils.ServerError("Server error")
	}

	err = db.Where("season_id = ?", nextSeason.ID).
		Order("episode_number asc").
		First(&next).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("No next episode found")
		}
		log.Printf("Error fetching next episode: %v", err)
		return nil, utils.ServerError("Server error")
	}
	return &next, nil
}

// PreviousEpisode is the mirror of NextEpisode: the preceding number within
// the season, otherwise the last episode of the previous season.
func PreviousEpisode(id string) (*models.Episode, *utils.ServiceError) {
	db := config.DB

	current, svcErr := episodeWithSeason(id)
	if svcErr != nil {
		return nil, svcErr
	}

	var prev models.Episode
	err := db.Where("season_id = ? AND episode_number < ?", current.SeasonID, current.EpisodeNumber).
		Order("episode_number desc").
		First(&prev).Error
	if err == nil {
		return &prev, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error fetching previous episode: %v", err)
		return nil, utils.ServerError("Server error")
	}

	var prevSeason models.Season
	err = db.Where("series_id = ? AND season_number < ?", current.Season.SeriesID, current.Season.SeasonNumber).
		Order("season_number desc").
		First(&prevSeason).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("No previous episode found")
		}
		log.Printf("Error fetching previous season: %v", err)
		return nil, utils.ServerError("Server error")
	}

	err = db.Where("season_id = ?", prevSeason.ID).
		Order("episode_number desc").
		First(&prev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("No previous episode found")
		}
		log.Printf("Error fetching previous episode: %v", err)
		return nil, utils.ServerError("Server error")
	}
	return &prev, nil
}

func episodeWithSeason(id string) (*models.Episode, *utils.ServiceError) {
	db := config.DB

	var episode models.Episode
	err := db.Preload("Season").First(&episode, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Episode not found")
		}
		log.Printf("Error fetching episode: %v", err)
		return nil, utils.ServerError("Server error")
	}
	if episode.Season == nil {
		log.Printf("Episode %s has no season loaded", id)
		return nil, utils.ServerError("Server error")
	}
	return &episode, nil
}
