package mylist

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

func seedTitles(t *testing.T, db *gorm.DB) (movieID, seriesID string) {
	t.Helper()

	vj := catalog.VJ{Name: "VJ Test"}
	require.NoError(t, db.Create(&vj).Error)
	genre := catalog.Genre{Name: "Drama", Slug: "drama"}
	require.NoError(t, db.Create(&genre).Error)
	year := catalog.ReleaseYear{Value: 2023}
	require.NoError(t, db.Create(&year).Error)

	movie := catalog.Movie{Title: "List Movie", Slug: "list-movie", VJID: vj.ID, GenreID: genre.ID, YearID: year.ID}
	require.NoError(t, db.Create(&movie).Error)
	series := catalog.Series{Title: "List Series", Slug: "list-series", VJID: vj.ID, GenreID: genre.ID, YearID: year.ID}
	require.NoError(t, db.Create(&series).Error)

	return movie.ID, series.ID
}

func TestAddItemRequiresExactlyOneID(t *testing.T) {
	db := setupTestDB(t)
	movieID, seriesID := seedTitles(t, db)

	_, svcErr := AddItem("user-1", AddRequest{})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)

	_, svcErr = AddItem("user-1", AddRequest{MovieID: movieID, SeriesID: seriesID})
	require.NotNil(t, svcErr)
	assert.Equal(t, "Provide either movieId or seriesId", svcErr.Message)
}

func TestAddMovieThenDuplicate(t *testing.T) {
	db := setupTestDB(t)
	movieID, _ := seedTitles(t, db)

	_, svcErr := AddItem("user-1", AddRequest{MovieID: movieID})
	require.Nil(t, svcErr)

	_, svcErr = AddItem("user-1", AddRequest{MovieID: movieID})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, "Movie is already in your list", svcErr.Message)
}

func TestAddSeriesDuplicate(t *testing.T) {
	db := setupTestDB(t)
	_, seriesID := seedTitles(t, db)

	_, svcErr := AddItem("user-1", AddRequest{SeriesID: seriesID})
	require.Nil(t, svcErr)

	_, svcErr = AddItem("user-1", AddRequest{SeriesID: seriesID})
	require.NotNil(t, svcErr)
	assert.Equal(t, "Series is already in your list", svcErr.Message)
}

func TestAddUnknownMovie(t *testing.T) {
	setupTestDB(t)

	_, svcErr := AddItem("user-1", AddRequest{MovieID: "missing"})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "Movie not found", svcErr.Message)
}

func TestRemoveMovieTwice(t *testing.T) {
	db := setupTestDB(t)
	movieID, _ := seedTitles(t, db)

	_, svcErr := AddItem("user-1", AddRequest{MovieID: movieID})
	require.Nil(t, svcErr)

	require.Nil(t, RemoveMovie("user-1", movieID))

	svcErr = RemoveMovie("user-1", movieID)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "Movie not found in your list", svcErr.Message)
}

func TestRemoveWithoutList(t *testing.T) {
	setupTestDB(t)

	svcErr := RemoveMovie("user-without-list", "movie-1")
	require.NotNil(t, svcErr)
	assert.Equal(t, "List not found", svcErr.Message)
}

func TestGetListFiltersByType(t *testing.T) {
	db := setupTestDB(t)
	movieID, seriesID := seedTitles(t, db)

	_, svcErr := AddItem("user-1", AddRequest{MovieID: movieID})
	require.Nil(t, svcErr)
	_, svcErr = AddItem("user-1", AddRequest{SeriesID: seriesID})
	require.Nil(t, svcErr)

	content, svcErr := GetList("user-1", "movies")
	require.Nil(t, svcErr)
	assert.Len(t, content.Movies, 1)
	assert.Empty(t, content.Series)

	content, svcErr = GetList("user-1", "")
	require.Nil(t, svcErr)
	assert.Len(t, content.Movies, 1)
	assert.Len(t, content.Series, 1)
}

func TestCheckItemDoesNotCreateList(t *testing.T) {
	db := setupTestDB(t)
	movieID, _ := seedTitles(t, db)

	inList, svcErr := CheckItem("user-1", movieID, "")
	require.Nil(t, svcErr)
	assert.False(t, inList)

	var count int64
	require.NoError(t, db.Table("my_lists").Count(&count).Error)
	assert.Equal(t, int64(0), count)

	_, svcErr = AddItem("user-1", AddRequest{MovieID: movieID})
	require.Nil(t, svcErr)

	inList, svcErr = CheckItem("user-1", movieID, "")
	require.Nil(t, svcErr)
	assert.True(t, inList)
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	movieID, seriesID := seedTitles(t, db)

	_, svcErr := AddItem("user-1", AddRequest{MovieID: movieID})
	require.Nil(t, svcErr)
	_, svcErr = AddItem("user-1", AddRequest{SeriesID: seriesID})
	require.Nil(t, svcErr)

	stats, svcErr := Stats("user-1")
	require.Nil(t, svcErr)
	assert.Equal(t, int64(1), stats.Movies)
	assert.Equal(t, int64(1), stats.Series)
	assert.Equal(t, int64(2), stats.Total)
}
