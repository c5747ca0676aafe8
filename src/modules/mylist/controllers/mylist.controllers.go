package mylist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moviechamp/src/middlewares"
	services "moviechamp/src/modules/mylist/services"
	"moviechamp/src/utils"
)

func AddItem(c *gin.Context) {
	var req services.AddRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	item, svcErr := services.AddItem(middlewares.CurrentUserID(c), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusCreated, item)
}

func GetList(c *gin.Context) {
	content, svcErr := services.GetList(middlewares.CurrentUserID(c), c.Query("type"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, content)
}

func RemoveMovie(c *gin.Context) {
	svcErr := services.RemoveMovie(middlewares.CurrentUserID(c), c.Param("movieId"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Movie removed from your list")
}

func RemoveSeries(c *gin.Context) {
	svcErr := services.RemoveSeries(middlewares.CurrentUserID(c), c.Param("seriesId"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Series removed from your list")
}

func CheckItem(c *gin.Context) {
	inList, svcErr := services.CheckItem(middlewares.CurrentUserID(c), c.Query("movieId"), c.Query("seriesId"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, gin.H{"inList": inList})
}

func Stats(c *gin.Context) {
	stats, svcErr := services.Stats(middlewares.CurrentUserID(c))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, stats)
}
