package users

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"moviechamp/src/config"
	models "moviechamp/src/modules/users/models"
	"moviechamp/src/utils"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type TokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func accessSecret() []byte {
	return []byte(os.Getenv("JWT_ACCESS_SECRET"))
}

func refreshSecret() []byte {
	return []byte(os.Getenv("JWT_REFRESH_SECRET"))
}

func signToken(user *models.User, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Phone:  user.Phone,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// IssueTokenPair signs an access/refresh pair and persists the refresh
// token so it can be revoked server side.
func IssueTokenPair(user *models.User) (*TokenPair, *utils.ServiceError) {
	db := config.DB

	access, err := signToken(user, accessTokenTTL, accessSecret())
	if err != nil {
		log.Printf("Error signing access token: %v", err)
		return nil, utils.ServerError("Failed to issue tokens")
	}
	refresh, err := signToken(user, refreshTokenTTL, refreshSecret())
	if err != nil {
		log.Printf("Error signing refresh token: %v", err)
		return nil, utils.ServerError("Failed to issue tokens")
	}

	record := models.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := db.Create(&record).Error; err != nil {
		log.Printf("Error persisting refresh token: %v", err)
		return nil, utils.ServerError("Failed to issue tokens")
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func parseToken(raw string, secret []byte) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ParseAccessToken validates a bearer token and returns its claims.
func ParseAccessToken(raw string) (*TokenClaims, error) {
	return parseToken(raw, accessSecret())
}

// RefreshSession exchanges a valid stored refresh token for a fresh pair,
// rotating the stored token.
func RefreshSession(refreshToken string) (*TokenPair, *utils.ServiceError) {
	db := config.DB

	if refreshToken == "" {
		return nil, utils.BadRequest("Refresh token is required")
	}

	if _, err := parseToken(refreshToken, refreshSecret()); err != nil {
		return nil, utils.Unauthorized("Invalid or expired refresh token")
	}

	var record models.RefreshToken
	if err := db.Where("token = ?", refreshToken).First(&record).Error; err != nil {
		return nil, utils.Unauthorized("Invalid or expired refresh token")
	}
	if time.Now().After(record.ExpiresAt) {
		db.Delete(&record)
		return nil, utils.Unauthorized("Invalid or expired refresh token")
	}

	var user models.User
	if err := db.First(&user, "id = ?", record.UserID).Error; err != nil {
		return nil, utils.Unauthorized("Invalid or expired refresh token")
	}
	if user.Status != models.StatusActive {
		return nil, utils.Forbidden("Account is not active")
	}

	if err := db.Delete(&record).Error; err != nil {
		log.Printf("Error rotating refresh token: %v", err)
		return nil, utils.ServerError("Failed to refresh session")
	}
	return IssueTokenPair(&user)
}

// RevokeRefreshToken deletes one stored session.
func RevokeRefreshToken(refreshToken string) *utils.ServiceError {
	db := config.DB

	if refreshToken == "" {
		return utils.BadRequest("Refresh token is required")
	}

	if err := db.Where("token = ?", refreshToken).Delete(&models.RefreshToken{}).Error; err != nil {
		log.Printf("Error revoking refresh token: %v", err)
		return utils.ServerError("Failed to log out")
	}
	return nil
}
