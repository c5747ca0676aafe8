package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "moviechamp/src/modules/catalog/models"
)

func boolPtr(b bool) *bool { return &b }

func seedSeriesWithFlags(t *testing.T, vjID, genreID, yearID, title string, comingSoon bool) *models.Series {
	t.Helper()

	series, svcErr := CreateSeries(SeriesRequest{
		Title:        title,
		VJID:         vjID,
		GenreID:      genreID,
		YearID:       yearID,
		IsComingSoon: boolPtr(comingSoon),
	})
	require.Nil(t, svcErr)
	return series
}

func TestComingSoonSeriesOnlyReturnsFlagged(t *testing.T) {
	setupTestDB(t)
	vjID, genreID, yearID := seedRefs(t)

	seedSeriesWithFlags(t, vjID, genreID, yearID, "Upcoming One", true)
	seedSeriesWithFlags(t, vjID, genreID, yearID, "Upcoming Two", true)
	seedSeriesWithFlags(t, vjID, genreID, yearID, "Already Out", false)

	series, svcErr := ComingSoonSeries(10)
	require.Nil(t, svcErr)
	require.Len(t, series, 2)
	for _, s := range series {
		assert.True(t, s.IsComingSoon)
		assert.NotEqual(t, "Already Out", s.Title)
	}
}

func TestComingSoonSeriesHonorsLimit(t *testing.T) {
	setupTestDB(t)
	vjID, genreID, yearID := seedRefs(t)

	seedSeriesWithFlags(t, vjID, genreID, yearID, "Upcoming One", true)
	seedSeriesWithFlags(t, vjID, genreID, yearID, "Upcoming Two", true)

	series, svcErr := ComingSoonSeries(1)
	require.Nil(t, svcErr)
	assert.Len(t, series, 1)
}
