package mylist

import (
	"errors"
	"log"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"moviechamp/src/config"
	catalog "moviechamp/src/modules/catalog/models"
	models "moviechamp/src/modules/mylist/models"
	"moviechamp/src/utils"
)

type AddRequest struct {
	MovieID  string `json:"movieId"`
	SeriesID string `json:"seriesId"`
}

type ListContent struct {
	ID     string                `json:"id"`
	Movies []models.MyListMovie  `json:"movies"`
	Series []models.MyListSeries `json:"series"`
}

type ListStats struct {
	Movies int64 `json:"movies"`
	Series int64 `json:"series"`
	Total  int64 `json:"total"`
}

func getOrCreateList(userID string) (*models.MyList, *utils.ServiceError) {
	db := config.DB

	var list models.MyList
	err := db.Where("user_id = ?", userID).First(&list).Error
	if err == nil {
		return &list, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error fetching list: %v", err)
		return nil, utils.ServerError("Server error")
	}

	list = models.MyList{UserID: userID}
	if err := db.Create(&list).Error; err != nil {
		// Concurrent first touch; fall back to the winner's row.
		if utils.IsUniqueViolation(err) {
			if err := db.Where("user_id = ?", userID).First(&list).Error; err == nil {
				return &list, nil
			}
		}
		log.Printf("Error creating list: %v", err)
		return nil, utils.ServerError("Server error")
	}
	return &list, nil
}

// AddItem accepts exactly one of movieId or seriesId.
func AddItem(userID string, req AddRequest) (interface{}, *utils.ServiceError) {
	db := config.DB

	if userID == "" {
		return nil, utils.BadRequest("User ID is required")
	}
	if (req.MovieID == "") == (req.SeriesID == "") {
		return nil, utils.BadRequest("Provide either movieId or seriesId")
	}

	list, svcErr := getOrCreateList(userID)
	if svcErr != nil {
		return nil, svcErr
	}

	if req.MovieID != "" {
		var movie catalog.Movie
		if err := db.Select("id").First(&movie, "id = ?", req.MovieID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, utils.NotFound("Movie not found")
			}
			log.Printf("Error fetching movie: %v", err)
			return nil, utils.ServerError("Failed to add to list")
		}

		var existing models.MyListMovie
		err := db.Where("list_id = ? AND movie_id = ?", list.ID, req.MovieID).
			Select("id").First(&existing).Error
		if err == nil {
			return nil, utils.Conflict("Movie is already in your list")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error checking list item: %v", err)
			return nil, utils.ServerError("Failed to add to list")
		}

		item := models.MyListMovie{ListID: list.ID, MovieID: req.MovieID}
		if err := db.Create(&item).Error; err != nil {
			if utils.IsUniqueViolation(err) {
				return nil, utils.Conflict("This item is already in your list")
			}
			log.Printf("Error adding movie to list: %v", err)
			return nil, utils.ServerError("Failed to add to list")
		}

		if err := db.Preload("Movie").First(&item, "id = ?", item.ID).Error; err != nil {
			log.Printf("Error reloading list item: %v", err)
			return nil, utils.ServerError("Failed to add to list")
		}
		return &item, nil
	}

	var series catalog.Series
	if err := db.Select("id").First(&series, "id = ?", req.SeriesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Series not found")
		}
		log.Printf("Error fetching series: %v", err)
		return nil, utils.ServerError("Failed to add to list")
	}

	var existing models.MyListSeries
	err := db.Where("list_id = ? AND series_id = ?", list.ID, req.SeriesID).
		Select("id").First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("Series is already in your list")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking list item: %v", err)
		return nil, utils.ServerError("Failed to add to list")
	}

	item := models.MyListSeries{ListID: list.ID, SeriesID: req.SeriesID}
	if err := db.Create(&item).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("This item is already in your list")
		}
		log.Printf("Error adding series to list: %v", err)
		return nil, utils.ServerError("Failed to add to list")
	}

	if err := db.Preload("Series").First(&item, "id = ?", item.ID).Error; err != nil {
		log.Printf("Error reloading list item: %v", err)
		return nil, utils.ServerError("Failed to add to list")
	}
	return &item, nil
}

func RemoveMovie(userID, movieID string) *utils.ServiceError {
	db := config.DB

	list, svcErr := findList(userID)
	if svcErr != nil {
		return svcErr
	}

	res := db.Where("list_id = ? AND movie_id = ?", list.ID, movieID).
		Delete(&models.MyListMovie{})
	if res.Error != nil {
		log.Printf("Error removing movie from list: %v", res.Error)
		return utils.ServerError("Failed to remove from list")
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("Movie not found in your list")
	}
	return nil
}

func RemoveSeries(userID, seriesID string) *utils.ServiceError {
	db := config.DB

	list, svcErr := findList(userID)
	if svcErr != nil {
		return svcErr
	}

	res := db.Where("list_id = ? AND series_id = ?", list.ID, seriesID).
		Delete(&models.MyListSeries{})
	if res.Error != nil {
		log.Printf("Error removing series from list: %v", res.Error)
		return utils.ServerError("Failed to remove from list")
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("Series not found in your list")
	}
	return nil
}

func findList(userID string) (*models.MyList, *utils.ServiceError) {
	db := config.DB

	if userID == "" {
		return nil, utils.BadRequest("User ID is required")
	}

	var list models.MyList
	if err := db.Where("user_id = ?", userID).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("List not found")
		}
		log.Printf("Error fetching list: %v", err)
		return nil, utils.ServerError("Server error")
	}
	return &list, nil
}

// GetList returns the list content, optionally narrowed to one media type.
func GetList(userID, mediaType string) (*ListContent, *utils.ServiceError) {
	db := config.DB

	if userID == "" {
		return nil, utils.BadRequest("User ID is required")
	}

	list, svcErr := getOrCreateList(userID)
	if svcErr != nil {
		return nil, svcErr
	}

	content := ListContent{
		ID:     list.ID,
		Movies: []models.MyListMovie{},
		Series: []models.MyListSeries{},
	}

	if mediaType == "" || mediaType == "movies" {
		err := db.Preload("Movie").Preload("Movie.VJ").Preload("Movie.Genre").Preload("Movie.Year").
			Where("list_id = ?", list.ID).
			Order("added_at desc").
			Find(&content.Movies).Error
		if err != nil {
			log.Printf("Error fetching list movies: %v", err)
			return nil, utils.ServerError("Failed to fetch list")
		}
	}
	if mediaType == "" || mediaType == "series" {
		err := db.Preload("Series").Preload("Series.VJ").Preload("Series.Genre").Preload("Series.Year").
			Where("list_id = ?", list.ID).
			Order("added_at desc").
			Find(&content.Series).Error
		if err != nil {
			log.Printf("Error fetching list series: %v", err)
			return nil, utils.ServerError("Failed to fetch list")
		}
	}

	return &content, nil
}

// CheckItem reports whether the given movie or series is on the list
// without creating one for users who never touched theirs.
func CheckItem(userID, movieID, seriesID string) (bool, *utils.ServiceError) {
	db := config.DB

	if userID == "" {
		return false, utils.BadRequest("User ID is required")
	}
	if (movieID == "") == (seriesID == "") {
		return false, utils.BadRequest("Provide either movieId or seriesId")
	}

	var list models.MyList
	err := db.Where("user_id = ?", userID).Select("id").First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		log.Printf("Error fetching list: %v", err)
		return false, utils.ServerError("Server error")
	}

	var count int64
	if movieID != "" {
		err = db.Model(&models.MyListMovie{}).
			Where("list_id = ? AND movie_id = ?", list.ID, movieID).
			Count(&count).Error
	} else {
		err = db.Model(&models.MyListSeries{}).
			Where("list_id = ? AND series_id = ?", list.ID, seriesID).
			Count(&count).Error
	}
	if err != nil {
		log.Printf("Error checking list item: %v", err)
		return false, utils.ServerError("Server error")
	}
	return count > 0, nil
}

func Stats(userID string) (*ListStats, *utils.ServiceError) {
	db := config.DB

	if userID == "" {
		return nil, utils.BadRequest("User ID is required")
	}

	list, svcErr := getOrCreateList(userID)
	if svcErr != nil {
		return nil, svcErr
	}

	var stats ListStats
	var g errgroup.Group
	g.Go(func() error {
		return db.Model(&models.MyListMovie{}).Where("list_id = ?", list.ID).Count(&stats.Movies).Error
	})
	g.Go(func() error {
		return db.Model(&models.MyListSeries{}).Where("list_id = ?", list.ID).Count(&stats.Series).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error counting list items: %v", err)
		return nil, utils.ServerError("Failed to fetch list stats")
	}

	stats.Total = stats.Movies + stats.Series
	return &stats, nil
}
