package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/catalog/services"
	"moviechamp/src/utils"
)

func CreateGenre(c *gin.Context) {
	var req services.GenreRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	genre, svcErr := services.CreateGenre(req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusCreated, genre)
}

func ListGenres(c *gin.Context) {
	genres, svcErr := services.ListGenres()
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, genres)
}

func GetGenre(c *gin.Context) {
	genre, svcErr := services.GetGenreByID(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, genre)
}

func GetGenreBySlug(c *gin.Context) {
	genre, svcErr := services.GetGenreBySlug(c.Param("slug"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, genre)
}

func UpdateGenre(c *gin.Context) {
	var req services.GenreRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	genre, svcErr := services.UpdateGenre(c.Param("id"), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, genre)
}

func DeleteGenre(c *gin.Context) {
	if svcErr := services.DeleteGenre(c.Param("id")); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Genre deleted successfully")
}
