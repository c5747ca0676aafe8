package users

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"moviechamp/src/config"
	models "moviechamp/src/modules/users/models"
	mailer "moviechamp/src/services"
	"moviechamp/src/utils"
)

const (
	resetTokenTTL   = 30 * time.Minute
	resetBcryptCost = 10
)

type VerifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// VerifyEmail checks the code held in Redis and activates the account.
func VerifyEmail(req VerifyEmailRequest) (*models.User, *utils.ServiceError) {
	db := config.DB

	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.TrimSpace(req.Code)
	if email == "" || code == "" {
		return nil, utils.BadRequest("Email and code are required")
	}

	if config.RDB == nil {
		return nil, utils.ServerError("Verification service is unavailable")
	}

	stored, err := config.RDB.Get(config.Ctx, verificationKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, utils.BadRequest("Invalid or expired verification code")
		}
		log.Printf("Error reading verification code: %v", err)
		return nil, utils.ServerError("Failed to verify email")
	}
	if stored != code {
		return nil, utils.BadRequest("Invalid or expired verification code")
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		log.Printf("Error fetching user: %v", err)
		return nil, utils.ServerError("Failed to verify email")
	}

	user.EmailVerified = true
	if user.Status == models.StatusPending {
		user.Status = models.StatusActive
	}
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error activating user: %v", err)
		return nil, utils.ServerError("Failed to verify email")
	}

	if err := config.RDB.Del(config.Ctx, verificationKey(email), resendKey(email)).Err(); err != nil {
		log.Printf("Error clearing verification code: %v", err)
	}
	return &user, nil
}

// ResendVerification issues a new code unless the rate limit window from the
// previous send is still open.
func ResendVerification(email string) *utils.ServiceError {
	db := config.DB

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return utils.BadRequest("Email is required")
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("User not found")
		}
		log.Printf("Error fetching user: %v", err)
		return utils.ServerError("Failed to resend verification code")
	}
	if user.EmailVerified {
		return utils.BadRequest("Email is already verified")
	}
	if config.RDB == nil {
		return utils.ServerError("Verification service is unavailable")
	}

	if _, err := config.RDB.Get(config.Ctx, resendKey(email)).Result(); err == nil {
		return utils.BadRequest("Please wait before requesting another code")
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("Error checking resend window: %v", err)
		return utils.ServerError("Failed to resend verification code")
	}

	code, err := newVerificationCode()
	if err != nil {
		log.Printf("Error generating verification code: %v", err)
		return utils.ServerError("Failed to resend verification code")
	}
	if err := storeVerificationCode(email, code); err != nil {
		log.Printf("Error storing verification code: %v", err)
		return utils.ServerError("Failed to resend verification code")
	}

	go mailer.SendVerificationEmail(email, code)
	return nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ForgotPassword always answers the same way so the endpoint cannot be used
// to probe which emails exist.
func ForgotPassword(req ForgotPasswordRequest) *utils.ServiceError {
	db := config.DB

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return utils.BadRequest("Email is required")
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		log.Printf("Error fetching user: %v", err)
		return nil
	}

	token, err := newResetToken()
	if err != nil {
		log.Printf("Error generating reset token: %v", err)
		return nil
	}

	record := models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashResetToken(token),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := db.Create(&record).Error; err != nil {
		log.Printf("Error storing reset token: %v", err)
		return nil
	}

	go mailer.SendPasswordResetEmail(user.Email, token)
	return nil
}

// ResetPassword consumes the token, updates the password and revokes every
// session in one transaction.
func ResetPassword(req ResetPasswordRequest) *utils.ServiceError {
	db := config.DB

	if req.Token == "" {
		return utils.BadRequest("Reset token is required")
	}
	if len(req.Password) < 8 {
		return utils.BadRequest("Password must be at least 8 characters")
	}

	var record models.PasswordResetToken
	err := db.Where("token_hash = ? AND used_at IS NULL", hashResetToken(req.Token)).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest("Invalid or expired reset token")
		}
		log.Printf("Error fetching reset token: %v", err)
		return utils.ServerError("Failed to reset password")
	}
	if time.Now().After(record.ExpiresAt) {
		return utils.BadRequest("Invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), resetBcryptCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return utils.ServerError("Failed to reset password")
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", record.UserID).
			Update("password", string(hash)).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PasswordResetToken{}).Where("id = ?", record.ID).
			Update("used_at", now).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", record.UserID).Delete(&models.RefreshToken{}).Error
	})
	if err != nil {
		log.Printf("Error resetting password: %v", err)
		return utils.ServerError("Failed to reset password")
	}
	return nil
}
