package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/catalog/services"
	"moviechamp/src/utils"
)

func CreateReleaseYear(c *gin.Context) {
	var req services.ReleaseYearRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	year, svcErr := services.CreateReleaseYear(req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusCreated, year)
}

func ListReleaseYears(c *gin.Context) {
	years, svcErr := services.ListReleaseYears()
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, years)
}

func GetReleaseYear(c *gin.Context) {
	year, svcErr := services.GetReleaseYearByID(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, year)
}

func GetReleaseYearByValue(c *gin.Context) {
	value, err := strconv.Atoi(c.Param("value"))
	if err != nil {
		utils.Fail(c, utils.BadRequest("Year value must be a number"))
		return
	}

	year, svcErr := services.GetReleaseYearByValue(value)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, year)
}

func UpdateReleaseYear(c *gin.Context) {
	var req services.ReleaseYearRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	year, svcErr := services.UpdateReleaseYear(c.Param("id"), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, year)
}

func DeleteReleaseYear(c *gin.Context) {
	if svcErr := services.DeleteReleaseYear(c.Param("id")); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Release year deleted successfully")
}
