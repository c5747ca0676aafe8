package watchhistory

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moviechamp/src/config"
	catalog "moviechamp/src/modules/catalog/models"
	models "moviechamp/src/modules/watchhistory/models"
	"moviechamp/src/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", utils.NewID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.RunMigrations(db))

	config.DB = db
	return db
}

func seedMovie(t *testing.T, db *gorm.DB, title string) *catalog.Movie {
	t.Helper()

	vj := catalog.VJ{Name: "VJ " + title}
	require.NoError(t, db.Create(&vj).Error)
	genre := catalog.Genre{Name: "Genre " + title, Slug: utils.GenerateSlug("Genre " + title)}
	require.NoError(t, db.Create(&genre).Error)
	year := catalog.ReleaseYear{Value: 2020}
	require.NoError(t, db.Where("value = ?", 2020).FirstOrCreate(&year).Error)

	movie := catalog.Movie{
		Title:   title,
		Slug:    utils.GenerateSlug(title),
		VJID:    vj.ID,
		GenreID: genre.ID,
		YearID:  year.ID,
	}
	require.NoError(t, db.Create(&movie).Error)
	return &movie
}

func TestUpdateProgressCreatesThenUpdatesSingleRow(t *testing.T) {
	db := setupTestDB(t)
	movie := seedMovie(t, db, "Upsert Movie")

	first, svcErr := UpdateProgress("user-1", ProgressRequest{
		MovieID:     movie.ID,
		CurrentTime: 300,
		Duration:    6000,
	})
	require.Nil(t, svcErr)
	assert.InDelta(t, 5.0, first.ProgressPercent, 0.001)
	assert.False(t, first.Completed)

	second, svcErr := UpdateProgress("user-1", ProgressRequest{
		MovieID:     movie.ID,
		CurrentTime: 3000,
		Duration:    6000,
	})
	require.Nil(t, svcErr)
	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 50.0, second.ProgressPercent, 0.001)

	var count int64
	require.NoError(t, db.Model(&models.WatchHistory{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateProgressCompletionThreshold(t *testing.T) {
	db := setupTestDB(t)
	movie := seedMovie(t, db, "Threshold Movie")

	entry, svcErr := UpdateProgress("user-1", ProgressRequest{
		MovieID:     movie.ID,
		CurrentTime: 89,
		Duration:    100,
	})
	require.Nil(t, svcErr)
	assert.False(t, entry.Completed)

	entry, svcErr = UpdateProgress("user-1", ProgressRequest{
		MovieID:     movie.ID,
		CurrentTime: 90,
		Duration:    100,
	})
	require.Nil(t, svcErr)
	assert.True(t, entry.Completed)
}

func TestUpdateProgressZeroDuration(t *testing.T) {
	db := setupTestDB(t)
	movie := seedMovie(t, db, "Zero Duration Movie")

	entry, svcErr := UpdateProgress("user-1", ProgressRequest{
		MovieID:     movie.ID,
		CurrentTime: 120,
		Duration:    0,
	})
	require.Nil(t, svcErr)
	assert.Equal(t, 0.0, entry.ProgressPercent)
	assert.False(t, entry.Completed)
}

func TestUpdateProgressRequiresUser(t *testing.T) {
	setupTestDB(t)

	_, svcErr := UpdateProgress("", ProgressRequest{MovieID: "whatever"})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, "User ID is required", svcErr.Message)
}

func TestContinueWatchingExcludesCompletedAndUnstarted(t *testing.T) {
	db := setupTestDB(t)
	inProgress := seedMovie(t, db, "In Progress")
	finished := seedMovie(t, db, "Finished")
	untouched := seedMovie(t, db, "Untouched")

	_, svcErr := UpdateProgress("user-1", ProgressRequest{MovieID: inProgress.ID, CurrentTime: 10, Duration: 100})
	require.Nil(t, svcErr)
	_, svcErr = UpdateProgress("user-1", ProgressRequest{MovieID: finished.ID, CurrentTime: 95, Duration: 100})
	require.Nil(t, svcErr)
	_, svcErr = UpdateProgress("user-1", ProgressRequest{MovieID: untouched.ID, CurrentTime: 0, Duration: 100})
	require.Nil(t, svcErr)

	entries, svcErr := ContinueWatching("user-1", 10)
	require.Nil(t, svcErr)
	require.Len(t, entries, 1)
	assert.Equal(t, inProgress.ID, entries[0].MovieID)
}

func TestDeleteEntry(t *testing.T) {
	db := setupTestDB(t)
	movie := seedMovie(t, db, "Removable")

	_, svcErr := UpdateProgress("user-1", ProgressRequest{MovieID: movie.ID, CurrentTime: 10, Duration: 100})
	require.Nil(t, svcErr)

	require.Nil(t, DeleteEntry("user-1", movie.ID))

	svcErr = DeleteEntry("user-1", movie.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "Watch history not found", svcErr.Message)
}
