package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	services "moviechamp/src/modules/users/services"
	"moviechamp/src/utils"
)

func Register(c *gin.Context) {
	var req services.RegisterRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	user, svcErr := services.Register(req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusCreated, gin.H{
		"user":    user,
		"message": "Registration successful. Check your email for the verification code.",
	})
}

func Login(c *gin.Context) {
	var req services.LoginRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	resp, svcErr := services.Login(req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, resp)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func Refresh(c *gin.Context) {
	var req refreshRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	tokens, svcErr := services.RefreshSession(req.RefreshToken)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, tokens)
}

func Logout(c *gin.Context) {
	var req refreshRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	if svcErr := services.RevokeRefreshToken(req.RefreshToken); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Logged out successfully")
}

func VerifyEmail(c *gin.Context) {
	var req services.VerifyEmailRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	user, svcErr := services.VerifyEmail(req)
	if svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSON(c, http.StatusOK, gin.H{
		"user":    user,
		"message": "Email verified successfully",
	})
}

type resendRequest struct {
	Email string `json:"email"`
}

func ResendVerification(c *gin.Context) {
	var req resendRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	if svcErr := services.ResendVerification(req.Email); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Verification code sent")
}

// ForgotPassword answers the same message whether or not the email exists.
func ForgotPassword(c *gin.Context) {
	var req services.ForgotPasswordRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	if svcErr := services.ForgotPassword(req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "If that email exists, a reset link has been sent.")
}

func ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if svcErr := utils.BindJson(c, &req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}

	if svcErr := services.ResetPassword(req); svcErr != nil {
		utils.Fail(c, svcErr)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Password reset successfully")
}
