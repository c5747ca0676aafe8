package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/admin/services"
	users "moviechamp/src/modules/users/services"
	"moviechamp/src/utils"
)

func ListUsers(c *gin.Context) {
	page, limit, _ := utils.ParsePageQuery(c, 20)
	result, svcErr := users.ListUsers(page, limit, c.Query("role"), c.Query("status"), c.Query("search"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, result)
}

func GetUser(c *gin.Context) {
	detail, svcErr := services.GetUserDetail(c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, detail)
}

func UpdateUser(c *gin.Context) {
	var req users.AdminUserUpdate
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	user, svcErr := users.UpdateUser(c.Param("id"), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, user)
}

func DeleteUser(c *gin.Context) {
	if svcErr := users.DeactivateUser(c.Param("id")); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "User deleted successfully")
}

func ListPayments(c *gin.Context) {
	page, limit, _ := utils.ParsePageQuery(c, 20)
	result, svcErr := services.ListPayments(page, limit, c.Query("status"), c.Query("method"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, result)
}

func ListSubscriptions(c *gin.Context) {
	page, limit, _ := utils.ParsePageQuery(c, 20)
	result, svcErr := services.ListSubscriptions(page, limit, c.Query("status"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, result)
}

func GetSettings(c *gin.Context) {
	utils.JSON(c, http.StatusOK, services.GetSettings())
}

func UpdateGeneralSettings(c *gin.Context) {
	var req services.GeneralSettings
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, services.UpdateGeneralSettings(req))
}

func UpdatePaymentSettings(c *gin.Context) {
	var req services.PaymentSettings
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, services.UpdatePaymentSettings(req))
}

func DashboardStats(c *gin.Context) {
	stats, svcErr := services.GetDashboardStats()
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, stats)
}

func RevenueAnalytics(c *gin.Context) {
	points, svcErr := services.RevenueAnalytics(c.Query("period"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, points)
}

func UserAnalytics(c *gin.Context) {
	points, svcErr := services.UserAnalytics(c.Query("period"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, points)
}

func ContentAnalytics(c *gin.Context) {
	analytics, svcErr := services.GetContentAnalytics()
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, analytics)
}

func RecentActivity(c *gin.Context) {
	activity, svcErr := services.RecentActivity()
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, activity)
}
