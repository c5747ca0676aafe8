package catalog

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGenreTrimsAndSlugs(t *testing.T) {
	setupTestDB(t)

	genre, svcErr := CreateGenre(GenreRequest{Name: "  Science Fiction  "})
	require.Nil(t, svcErr)
	assert.Equal(t, "Science Fiction", genre.Name)
	assert.Equal(t, "science-fiction", genre.Slug)
}

func TestCreateGenreConflictAfterTrim(t *testing.T) {
	setupTestDB(t)

	_, svcErr := CreateGenre(GenreRequest{Name: "Drama"})
	require.Nil(t, svcErr)

	_, svcErr = CreateGenre(GenreRequest{Name: "Drama   "})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, "Genre with this name already exists", svcErr.Message)
}

func TestCreateGenreRequiresName(t *testing.T) {
	setupTestDB(t)

	_, svcErr := CreateGenre(GenreRequest{Name: "   "})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestDeleteGenreBlockedByMovies(t *testing.T) {
	setupTestDB(t)
	vjID, genreID, yearID := seedRefs(t)

	_, svcErr := CreateMovie(MovieRequest{
		Title:   "Blocking Movie",
		VJID:    vjID,
		GenreID: genreID,
		YearID:  yearID,
	})
	require.Nil(t, svcErr)

	svcErr = DeleteGenre(genreID)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, "Cannot delete genre. It has 1 movie(s) associated with it.", svcErr.Message)
}

func TestDeleteGenreSucceedsWhenUnused(t *testing.T) {
	setupTestDB(t)

	genre, svcErr := CreateGenre(GenreRequest{Name: "Short Lived"})
	require.Nil(t, svcErr)
	require.Nil(t, DeleteGenre(genre.ID))

	_, svcErr = GetGenreByID(genre.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestListGenresCarriesMovieCounts(t *testing.T) {
	setupTestDB(t)
	vjID, genreID, yearID := seedRefs(t)

	for _, title := range []string{"First", "Second"} {
		_, svcErr := CreateMovie(MovieRequest{
			Title:   title,
			VJID:    vjID,
			GenreID: genreID,
			YearID:  yearID,
		})
		require.Nil(t, svcErr)
	}

	genres, svcErr := ListGenres()
	require.Nil(t, svcErr)
	require.Len(t, genres, 1)
	assert.Equal(t, int64(2), genres[0].MovieCount)
}

func TestMovieListFiltersAndPagination(t *testing.T) {
	setupTestDB(t)
	vjID, genreID, yearID := seedRefs(t)

	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		_, svcErr := CreateMovie(MovieRequest{
			Title:   title,
			VJID:    vjID,
			GenreID: genreID,
			YearID:  yearID,
		})
		require.Nil(t, svcErr)
	}

	page, svcErr := ListMovies(MovieListFilter{Page: 1, Limit: 2, GenreID: genreID})
	require.Nil(t, svcErr)
	assert.Len(t, page.Movies, 2)
	assert.Equal(t, int64(3), page.Pagination["total"])
	assert.Equal(t, 2, page.Pagination["totalPages"])

	page, svcErr = ListMovies(MovieListFilter{Page: 1, Limit: 20, Search: "beta"})
	require.Nil(t, svcErr)
	require.Len(t, page.Movies, 1)
	assert.Equal(t, "Beta", page.Movies[0].Title)
}

func TestCreateMovieDuplicateTitle(t *testing.T) {
	setupTestDB(t)
	vjID, genreID, yearID := seedRefs(t)

	req := MovieRequest{Title: "Same Title", VJID: vjID, GenreID: genreID, YearID: yearID}
	_, svcErr := CreateMovie(req)
	require.Nil(t, svcErr)

	_, svcErr = CreateMovie(req)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
}

func TestReleaseYearBounds(t *testing.T) {
	setupTestDB(t)

	_, svcErr := CreateReleaseYear(ReleaseYearRequest{Value: 1500})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)

	_, svcErr = CreateReleaseYear(ReleaseYearRequest{Value: 1999})
	require.Nil(t, svcErr)
}
