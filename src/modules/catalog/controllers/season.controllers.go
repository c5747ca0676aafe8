package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/catalog/services"
	"moviechamp/src/utils"
)

func CreateSeason(c *gin.Context) {
	var req services.SeasonRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	season, svcErr := services.CreateSeason(c.Param("id"), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusCreated, season)
}

func ListSeasons(c *gin.Context) {
	seasons, svcErr := services.ListSeasons(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, seasons)
}

func GetSeason(c *gin.Context) {
	season, svcErr := services.GetSeasonByID(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, season)
}

func UpdateSeason(c *gin.Context) {
	var req services.SeasonRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	season, svcErr := services.UpdateSeason(c.Param("id"), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, season)
}

func DeleteSeason(c *gin.Context) {
	if svcErr := services.DeleteSeason(c.Param("id")); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Season deleted successfully")
}
