package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/catalog/services"
	events "moviechamp/src/services"
	"moviechamp/src/utils"
)

func movieFilterFromQuery(c *gin.Context) services.MovieListFilter {
	page, limit, _ := utils.ParsePageQuery(c, 20)
	return services.MovieListFilter{
		Page:         page,
		Limit:        limit,
		GenreID:      c.Query("genreId"),
		VJID:         c.Query("vjId"),
		YearID:       c.Query("yearId"),
		IsTrending:   c.Query("isTrending"),
		IsComingSoon: c.Query("isComingSoon"),
		Search:       c.Query("search"),
	}
}

func CreateMovie(c *gin.Context) {
	var req services.MovieRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	movie, svcErr := services.CreateMovie(req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	events.PublishEvent("movie.created", movie)
	utils.JSON(c, http.StatusCreated, movie)
}

func ListMovies(c *gin.Context) {
	page, svcErr := services.ListMovies(movieFilterFromQuery(c))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, page)
}

func GetMovie(c *gin.Context) {
	movie, svcErr := services.GetMovieByID(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, movie)
}

func GetMovieBySlug(c *gin.Context) {
	movie, svcErr := services.GetMovieBySlug(c.Param("slug"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, movie)
}

func TrendingMovies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	movies, svcErr := services.TrendingMovies(limit)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, movies)
}

func ComingSoonMovies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	movies, svcErr := services.ComingSoonMovies(limit)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, movies)
}

func UpdateMovie(c *gin.Context) {
	var req services.MovieRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	movie, svcErr := services.UpdateMovie(c.Param("id"), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	events.PublishEvent("movie.updated", movie)
	utils.JSON(c, http.StatusOK, movie)
}

func DeleteMovie(c *gin.Context) {
	id := c.Param("id")
	if svcErr := services.DeleteMovie(id); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	events.PublishEvent("movie.deleted", gin.H{"id": id})
	utils.JSONMessage(c, http.StatusOK, "Movie deleted successfully")
}

func IncrementMovieViews(c *gin.Context) {
	movie, svcErr := services.IncrementMovieViews(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, movie)
}
