package watchhistory

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"moviechamp/src/config"
	catalog "moviechamp/src/modules/catalog/models"
	models "moviechamp/src/modules/watchhistory/models"
	"moviechamp/src/utils"
)

// Progress past this share of the runtime marks the title as finished.
const completedThreshold = 90.0

type ProgressRequest struct {
	MovieID     string  `json:"movieId"`
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
}

// UpdateProgress upserts the (user, movie) row. Reported values are stored
// as sent; the client owns clamping.
func UpdateProgress(userID string, req ProgressRequest) (*models.WatchHistory, *utils.ServiceError) {
	db := config.DB

	if userID == "" {
		return nil, utils.BadRequest("User ID is required")
	}
	if req.MovieID == "" {
		return nil, utils.BadRequest("Movie ID is required")
	}

	var movie catalog.Movie
	if err := db.Select("id").First(&movie, "id = ?", req.MovieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Movie not found")
		}
		log.Printf("Error fetching movie: %v", err)
		return nil, utils.ServerError("Failed to update watch progress")
	}

	progress := 0.0
	if req.Duration > 0 {
		progress = req.CurrentTime / req.Duration * 100
	}
	completed := progress >= completedThreshold
	now := time.Now()

	var entry models.WatchHistory
	err := db.Where("user_id = ? AND movie_id = ?", userID, req.MovieID).First(&entry).Error
	switch {
	case err == nil:
		entry.CurrentTime = req.CurrentTime
		entry.Duration = req.Duration
		entry.ProgressPercent = progress
		entry.Completed = completed
		entry.LastWatchedAt = now
		if err := db.Save(&entry).Error; err != nil {
			log.Printf("Error updating watch history: %v", err)
			return nil, utils.ServerError("Failed to update watch progress")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.WatchHistory{
			UserID:          userID,
			MovieID:         req.MovieID,
			CurrentTime:     req.CurrentTime,
			Duration:        req.Duration,
			ProgressPercent: progress,
			Completed:       completed,
			LastWatchedAt:   now,
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("Error creating watch history: %v", err)
			return nil, utils.ServerError("Failed to update watch progress")
		}
	default:
		log.Printf("Error fetching watch history: %v", err)
		return nil, utils.ServerError("Failed to update watch progress")
	}

	err = db.Preload("Movie").Preload("Movie.VJ").Preload("Movie.Genre").Preload("Movie.Year").
		First(&entry, "id = ?", entry.ID).Error
	if err != nil {
		log.Printf("Error reloading watch history: %v", err)
		return nil, utils.ServerError("Failed to update watch progress")
	}
	return &entry, nil
}

// ContinueWatching lists unfinished titles with some progress, most recent
// first.
func ContinueWatching(userID string, limit int) ([]models.WatchHistory, *utils.ServiceError) {
	db := config.DB

	if userID == "" {
		return nil, utils.BadRequest("User ID is required")
	}
	if limit <= 0 {
		limit = 10
	}

	var entries []models.WatchHistory
	err := db.Preload("Movie").Preload("Movie.VJ").Preload("Movie.Genre").Preload("Movie.Year").
		Where("user_id = ? AND completed = ? AND progress_percent > 0", userID, false).
		Order("last_watched_at desc").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		log.Printf("Error fetching continue watching: %v", err)
		return nil, utils.ServerError("Failed to fetch continue watching")
	}
	return entries, nil
}

func History(userID string) ([]models.WatchHistory, *utils.ServiceError) {
	db := config.DB

	if userID == "" {
		return nil, utils.BadRequest("User ID is required")
	}

	var entries []models.WatchHistory
	err := db.Preload("Movie").Preload("Movie.VJ").Preload("Movie.Genre").Preload("Movie.Year").
		Where("user_id = ?", userID).
		Order("last_watched_at desc").
		Find(&entries).Error
	if err != nil {
		log.Printf("Error fetching watch history: %v", err)
		return nil, utils.ServerError("Failed to fetch watch history")
	}
	return entries, nil
}

func DeleteEntry(userID, movieID string) *utils.ServiceError {
	db := config.DB

	if userID == "" {
		return utils.BadRequest("User ID is required")
	}

	res := db.Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.WatchHistory{})
	if res.Error != nil {
		log.Printf("Error deleting watch history: %v", res.Error)
		return utils.ServerError("Failed to delete watch history")
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("Watch history not found")
	}
	return nil
}
