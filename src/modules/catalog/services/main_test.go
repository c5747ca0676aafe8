package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moviechamp/src/config"
	models "moviechamp/src/modules/catalog/models"
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

// seedRefs creates the VJ/genre/year rows every title needs.
func seedRefs(t *testing.T) (vjID, genreID, yearID string) {
	t.Helper()

	vj, svcErr := CreateVJ(VJRequest{Name: "VJ Junior"})
	require.Nil(t, svcErr)
	genre, svcErr := CreateGenre(GenreRequest{Name: "Action"})
	require.Nil(t, svcErr)
	year, svcErr := CreateReleaseYear(ReleaseYearRequest{Value: 2024})
	require.Nil(t, svcErr)

	return vj.ID, genre.ID, year.ID
}

func seedSeries(t *testing.T, title string) *models.Series {
	t.Helper()

	vjID, genreID, yearID := seedRefs(t)
	series, svcErr := CreateSeries(SeriesRequest{
		Title:   title,
		VJID:    vjID,
		GenreID: genreID,
		YearID:  yearID,
	})
	require.Nil(t, svcErr)
	return series
}

func seedEpisode(t *testing.T, seasonID string, number int) *models.Episode {
	t.Helper()

	ep, svcErr := CreateEpisode(seasonID, EpisodeRequest{
		EpisodeNumber: number,
		Title:         fmt.Sprintf("Episode %d", number),
		VideoURL:      fmt.Sprintf("https://cdn.example.com/ep-%d.mp4", number),
	})
	require.Nil(t, svcErr)
	return ep
}
