package services

import (
	"fmt"
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

func seedCatalogRefs(t *testing.T, db *gorm.DB) (vjID, genreID, yearID string) {
	t.Helper()

	vj := catalog.VJ{Name: "VJ Junior"}
	require.NoError(t, db.Create(&vj).Error)
	genre := catalog.Genre{Name: "Action", Slug: "action"}
	require.NoError(t, db.Create(&genre).Error)
	year := catalog.ReleaseYear{Value: 2024}
	require.NoError(t, db.Create(&year).Error)

	return vj.ID, genre.ID, year.ID
}

func TestExternalPosterMoviesSkipsMirroredRows(t *testing.T) {
	db := setupTestDB(t)
	vjID, genreID, yearID := seedCatalogRefs(t, db)

	external := catalog.Movie{
		Title: "External", Slug: "external",
		VJID: vjID, GenreID: genreID, YearID: yearID,
		Poster: "https://cdn.example.com/external.jpg",
	}
	require.NoError(t, db.Create(&external).Error)
	mirrored := catalog.Movie{
		Title: "Mirrored", Slug: "mirrored",
		VJID: vjID, GenreID: genreID, YearID: yearID,
		Poster: "/static/posters/movies/mirrored",
	}
	require.NoError(t, db.Create(&mirrored).Error)

	movies, err := externalPosterMovies(db, 50)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, external.ID, movies[0].ID)
}

func TestExternalPosterSeriesPickedUpAlongsideMovies(t *testing.T) {
	db := setupTestDB(t)
	vjID, genreID, yearID := seedCatalogRefs(t, db)

	external := catalog.Series{
		Title: "External Show", Slug: "external-show",
		VJID: vjID, GenreID: genreID, YearID: yearID,
		Poster: "http://cdn.example.com/show.jpg",
	}
	require.NoError(t, db.Create(&external).Error)
	local := catalog.Series{
		Title: "Local Show", Slug: "local-show",
		VJID: vjID, GenreID: genreID, YearID: yearID,
		Poster: "/static/posters/series/local",
	}
	require.NoError(t, db.Create(&local).Error)
	noPoster := catalog.Series{
		Title: "No Poster", Slug: "no-poster",
		VJID: vjID, GenreID: genreID, YearID: yearID,
	}
	require.NoError(t, db.Create(&noPoster).Error)

	series, err := externalPosterSeries(db, 50)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, external.ID, series[0].ID)
}

func TestExternalPosterQueriesHonorLimit(t *testing.T) {
	db := setupTestDB(t)
	vjID, genreID, yearID := seedCatalogRefs(t, db)

	for i := 0; i < 3; i++ {
		movie := catalog.Movie{
			Title: fmt.Sprintf("Movie %d", i), Slug: fmt.Sprintf("movie-%d", i),
			VJID: vjID, GenreID: genreID, YearID: yearID,
			Poster: fmt.Sprintf("https://cdn.example.com/m-%d.jpg", i),
		}
		require.NoError(t, db.Create(&movie).Error)
	}

	movies, err := externalPosterMovies(db, 2)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}
