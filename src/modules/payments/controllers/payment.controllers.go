package payments

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moviechamp/src/middlewares"
	services "moviechamp/src/modules/payments/services"
	"moviechamp/src/utils"
)

func initiate(c *gin.Context, fn func(string, services.InitiateRequest) (*services.InitiateResponse, *utils.ServiceError)) {
	var req services.InitiateRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	resp, svcErr := fn(middlewares.CurrentUserID(c), req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusCreated, resp)
}

func InitiateMobileMoney(c *gin.Context) {
	initiate(c, services.InitiateMobileMoney)
}

func InitiateCard(c *gin.Context) {
	initiate(c, services.InitiateCard)
}

func InitiatePayPal(c *gin.Context) {
	initiate(c, services.InitiatePayPal)
}

func VerifyPayment(c *gin.Context) {
	payment, svcErr := services.VerifyPayment(middlewares.CurrentUserID(c), c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, payment)
}

func GetPayment(c *gin.Context) {
	payment, svcErr := services.GetPayment(middlewares.CurrentUserID(c), c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, payment)
}

func ListPayments(c *gin.Context) {
	payments, svcErr := services.ListUserPayments(middlewares.CurrentUserID(c))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, payments)
}

func CurrentSubscription(c *gin.Context) {
	sub, svcErr := services.CurrentSubscription(middlewares.CurrentUserID(c))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, sub)
}

func CancelSubscription(c *gin.Context) {
	svcErr := services.CancelSubscription(middlewares.CurrentUserID(c), c.Param("id"))
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Subscription cancelled")
}
