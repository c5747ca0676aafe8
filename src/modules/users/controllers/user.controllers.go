package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moviechamp/src/middlewares"
	services "moviechamp/src/modules/users/services"
	"moviechamp/src/utils"
)

func Me(c *gin.Context) {
	user, svcErr := services.GetUserByID(middlewares.CurrentUserID(c))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, user)
}

func UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdateRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	user, svcErr := services.UpdateProfile(middlewares.CurrentUserID(c), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, user)
}

func ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	if svcErr := services.ChangePassword(middlewares.CurrentUserID(c), req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Password changed successfully")
}

func DeleteAccount(c *gin.Context) {
	var req services.DeleteAccountRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	if svcErr := services.DeleteAccount(middlewares.CurrentUserID(c), req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Account deleted successfully")
}

func Statistics(c *gin.Context) {
	stats, svcErr := services.Statistics(middlewares.CurrentUserID(c))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, stats)
}
