package catalog

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "moviechamp/src/modules/catalog/models"
)

// buildSeries creates seasons with the given episode counts, returning
// episode ids in watch order. A zero count leaves that season empty.
func buildSeries(t *testing.T, episodesPerSeason ...int) (seriesID string, order []string) {
	t.Helper()

	series := seedSeries(t, "Traversal Test Series")
	for i, count := range episodesPerSeason {
		season, svcErr := CreateSeason(series.ID, SeasonRequest{SeasonNumber: i + 1})
		require.Nil(t, svcErr)
		for n := 1; n <= count; n++ {
			ep := seedEpisode(t, season.ID, n)
			order = append(order, ep.ID)
		}
	}
	return series.ID, order
}

func TestNextEpisodeWithinSeason(t *testing.T) {
	setupTestDB(t)
	_, order := buildSeries(t, 3)

	next, svcErr := NextEpisode(order[0])
	require.Nil(t, svcErr)
	assert.Equal(t, order[1], next.ID)
}

func TestNextEpisodeCrossesSeasonBoundary(t *testing.T) {
	setupTestDB(t)
	_, order := buildSeries(t, 2, 2)

	// Last episode of season 1 leads to the first of season 2.
	next, svcErr := NextEpisode(order[1])
	require.Nil(t, svcErr)
	assert.Equal(t, order[2], next.ID)
	assert.Equal(t, 1, next.EpisodeNumber)
}

func TestNextEpisodeAtSeriesEnd(t *testing.T) {
	setupTestDB(t)
	_, order := buildSeries(t, 2, 2)

	_, svcErr := NextEpisode(order[len(order)-1])
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "No next episode found", svcErr.Message)
}

func TestNextEpisodeStopsAtEmptySeason(t *testing.T) {
	setupTestDB(t)
	// Season 2 exists but holds no episodes; season 3 does. Navigation does
	// not skip ahead.
	_, order := buildSeries(t, 1, 0, 1)

	_, svcErr := NextEpisode(order[0])
	require.NotNil(t, svcErr)
	assert.Equal(t, "No next episode found", svcErr.Message)
}

func TestPreviousEpisodeWithinSeason(t *testing.T) {
	setupTestDB(t)
	_, order := buildSeries(t, 3)

	prev, svcErr := PreviousEpisode(order[2])
	require.Nil(t, svcErr)
	assert.Equal(t, order[1], prev.ID)
}

func TestPreviousEpisodeCrossesSeasonBoundary(t *testing.T) {
	setupTestDB(t)
	_, order := buildSeries(t, 2, 2)

	// First episode of season 2 leads back to the last of season 1.
	prev, svcErr := PreviousEpisode(order[2])
	require.Nil(t, svcErr)
	assert.Equal(t, order[1], prev.ID)
	assert.Equal(t, 2, prev.EpisodeNumber)
}

func TestPreviousEpisodeAtSeriesStart(t *testing.T) {
	setupTestDB(t)
	_, order := buildSeries(t, 2)

	_, svcErr := PreviousEpisode(order[0])
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "No previous episode found", svcErr.Message)
}

// Walking forward through the whole series visits every episode in order,
// and previous inverts every forward step.
func TestNavigationTraversalAndInverse(t *testing.T) {
	setupTestDB(t)
	_, order := buildSeries(t, 3, 1, 2)

	for i := 0; i < len(order)-1; i++ {
		next, svcErr := NextEpisode(order[i])
		require.Nil(t, svcErr, "next of step %d", i)
		assert.Equal(t, order[i+1], next.ID, "forward step %d", i)

		prev, svcErr := PreviousEpisode(next.ID)
		require.Nil(t, svcErr, "previous of step %d", i)
		assert.Equal(t, order[i], prev.ID, "inverse of step %d", i)
	}
}

func TestNextEpisodeUnknownID(t *testing.T) {
	setupTestDB(t)

	_, svcErr := NextEpisode("missing")
	require.NotNil(t, svcErr)
	assert.Equal(t, "Episode not found", svcErr.Message)
}

func TestCreateEpisodeDuplicateNumber(t *testing.T) {
	setupTestDB(t)
	series := seedSeries(t, "Dup Series")
	season, svcErr := CreateSeason(series.ID, SeasonRequest{SeasonNumber: 1})
	require.Nil(t, svcErr)
	seedEpisode(t, season.ID, 1)

	_, svcErr = CreateEpisode(season.ID, EpisodeRequest{
		EpisodeNumber: 1,
		Title:         "Duplicate",
		VideoURL:      "https://cdn.example.com/dup.mp4",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
}

func TestEpisodeCountersFollowCreateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	series := seedSeries(t, "Counter Series")
	season, svcErr := CreateSeason(series.ID, SeasonRequest{SeasonNumber: 1})
	require.Nil(t, svcErr)

	ep1 := seedEpisode(t, season.ID, 1)
	seedEpisode(t, season.ID, 2)

	var reloaded models.Series
	require.NoError(t, db.First(&reloaded, "id = ?", series.ID).Error)
	assert.Equal(t, 1, reloaded.TotalSeasons)
	assert.Equal(t, 2, reloaded.TotalEpisodes)

	require.Nil(t, DeleteEpisode(ep1.ID))
	require.NoError(t, db.First(&reloaded, "id = ?", series.ID).Error)
	assert.Equal(t, 1, reloaded.TotalEpisodes)
}
