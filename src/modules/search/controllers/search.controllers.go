package search

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/search/services"
	"moviechamp/src/utils"
)

func Global(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	results, svcErr := services.Global(c.Query("q"), limit)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, results)
}
