package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/catalog/services"
	"moviechamp/src/utils"
)

func CreateVJ(c *gin.Context) {
	var req services.VJRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	vj, svcErr := services.CreateVJ(req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusCreated, vj)
}

func ListVJs(c *gin.Context) {
	vjs, svcErr := services.ListVJs()
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, vjs)
}

func GetVJ(c *gin.Context) {
	vj, svcErr := services.GetVJByID(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, vj)
}

func GetVJByName(c *gin.Context) {
	vj, svcErr := services.GetVJByName(c.Param("name"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, vj)
}

func UpdateVJ(c *gin.Context) {
	var req services.VJRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	vj, svcErr := services.UpdateVJ(c.Param("id"), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, vj)
}

func DeleteVJ(c *gin.Context) {
	if svcErr := services.DeleteVJ(c.Param("id")); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "VJ deleted successfully")
}
