package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/catalog/services"
	events "moviechamp/src/services"
	"moviechamp/src/utils"
)

func CreateSeries(c *gin.Context) {
	var req services.SeriesRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	series, svcErr := services.CreateSeries(req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	events.PublishEvent("series.created", series)
	utils.JSON(c, http.StatusCreated, series)
}

func ListSeries(c *gin.Context) {
	page, svcErr := services.ListSeries(movieFilterFromQuery(c))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, page)
}

func GetSeries(c *gin.Context) {
	series, svcErr := services.GetSeriesByID(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, series)
}

func GetSeriesBySlug(c *gin.Context) {
	series, svcErr := services.GetSeriesBySlug(c.Param("slug"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, series)
}

func TrendingSeries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	series, svcErr := services.TrendingSeries(limit)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, series)
}

func ComingSoonSeries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	series, svcErr := services.ComingSoonSeries(limit)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, series)
}

func UpdateSeries(c *gin.Context) {
	var req services.SeriesRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	series, svcErr := services.UpdateSeries(c.Param("id"), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	events.PublishEvent("series.updated", series)
	utils.JSON(c, http.StatusOK, series)
}

func DeleteSeries(c *gin.Context) {
	id := c.Param("id")
	if svcErr := services.DeleteSeries(id); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	events.PublishEvent("series.deleted", gin.H{"id": id})
	utils.JSONMessage(c, http.StatusOK, "Series deleted successfully")
}

func IncrementSeriesViews(c *gin.Context) {
	series, svcErr := services.IncrementSeriesViews(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, series)
}
