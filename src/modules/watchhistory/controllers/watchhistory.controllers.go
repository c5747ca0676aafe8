package watchhistory

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"moviechamp/src/middlewares"
	services "moviechamp/src/modules/watchhistory/services"
	"moviechamp/src/utils"
)

func UpdateProgress(c *gin.Context) {
	var req services.ProgressRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	entry, svcErr := services.UpdateProgress(middlewares.CurrentUserID(c), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, entry)
}

func ContinueWatching(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	entries, svcErr := services.ContinueWatching(middlewares.CurrentUserID(c), limit)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, entries)
}

func History(c *gin.Context) {
	entries, svcErr := services.History(middlewares.CurrentUserID(c))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, entries)
}

func DeleteEntry(c *gin.Context) {
	svcErr := services.DeleteEntry(middlewares.CurrentUserID(c), c.Param("movieId"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Watch history deleted successfully")
}
