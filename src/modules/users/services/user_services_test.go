package users

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moviechamp/src/config"
	models "moviechamp/src/modules/users/models"
	"moviechamp/src/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", utils.NewID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.RunMigrations(db))

	config.DB = db
	t.Setenv("JWT_ACCESS_SECRET", "test-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")
	return db
}

func seedActiveUser(t *testing.T, db *gorm.DB, email, phone, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Email:    email,
		Phone:    phone,
		Password: string(hash),
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestRegisterConflictOnEmail(t *testing.T) {
	db := setupTestDB(t)
	seedActiveUser(t, db, "taken@example.com", "256700000001", "password123")

	_, svcErr := Register(RegisterRequest{
		Email:    "taken@example.com",
		Phone:    "256700000002",
		Password: "password123",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, "User with this email already exists", svcErr.Message)
}

func TestRegisterCreatesPendingUser(t *testing.T) {
	setupTestDB(t)

	user, svcErr := Register(RegisterRequest{
		Email:     "New@Example.com",
		Phone:     "256700000003",
		Password:  "password123",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.Nil(t, svcErr)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, models.StatusPending, user.Status)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.NotEqual(t, "password123", user.Password)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	setupTestDB(t)

	_, svcErr := Register(RegisterRequest{
		Email:    "short@example.com",
		Phone:    "256700000004",
		Password: "short",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestLoginByEmailAndPhone(t *testing.T) {
	db := setupTestDB(t)
	seedActiveUser(t, db, "login@example.com", "256700000005", "password123")

	resp, svcErr := Login(LoginRequest{Identifier: "login@example.com", Password: "password123"})
	require.Nil(t, svcErr)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)

	resp, svcErr = Login(LoginRequest{Identifier: "256700000005", Password: "password123"})
	require.Nil(t, svcErr)
	assert.Equal(t, "login@example.com", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	seedActiveUser(t, db, "wrong@example.com", "256700000006", "password123")

	_, svcErr := Login(LoginRequest{Identifier: "wrong@example.com", Password: "nope12345"})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
	assert.Equal(t, "Invalid credentials", svcErr.Message)
}

func TestLoginPendingAccountBlocked(t *testing.T) {
	db := setupTestDB(t)
	user := seedActiveUser(t, db, "pending@example.com", "256700000007", "password123")
	require.NoError(t, db.Model(user).Update("status", models.StatusPending).Error)

	_, svcErr := Login(LoginRequest{Identifier: "pending@example.com", Password: "password123"})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.StatusCode)
	assert.Equal(t, "Please verify your email before logging in", svcErr.Message)
}

func TestRefreshSessionRotatesToken(t *testing.T) {
	db := setupTestDB(t)
	user := seedActiveUser(t, db, "rotate@example.com", "256700000008", "password123")

	pair, svcErr := IssueTokenPair(user)
	require.Nil(t, svcErr)

	fresh, svcErr := RefreshSession(pair.RefreshToken)
	require.Nil(t, svcErr)
	assert.NotEmpty(t, fresh.AccessToken)

	// The old refresh token is single use.
	_, svcErr = RefreshSession(pair.RefreshToken)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
}

func TestParseAccessTokenRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	user := seedActiveUser(t, db, "claims@example.com", "256700000009", "password123")

	pair, svcErr := IssueTokenPair(user)
	require.Nil(t, svcErr)

	claims, err := ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "USER", claims.Role)
}

func TestResetPasswordConsumesTokenAndRevokesSessions(t *testing.T) {
	db := setupTestDB(t)
	user := seedActiveUser(t, db, "reset@example.com", "256700000010", "password123")

	pair, svcErr := IssueTokenPair(user)
	require.Nil(t, svcErr)

	token, err := newResetToken()
	require.NoError(t, err)
	record := models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashResetToken(token),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	require.NoError(t, db.Create(&record).Error)

	require.Nil(t, ResetPassword(ResetPasswordRequest{Token: token, Password: "brand-new-pass"}))

	// Old password no longer works, new one does.
	_, svcErr = Login(LoginRequest{Identifier: "reset@example.com", Password: "password123"})
	require.NotNil(t, svcErr)
	resp, svcErr := Login(LoginRequest{Identifier: "reset@example.com", Password: "brand-new-pass"})
	require.Nil(t, svcErr)
	assert.Equal(t, user.ID, resp.User.ID)

	// Every pre-reset session is gone.
	_, svcErr = RefreshSession(pair.RefreshToken)
	require.NotNil(t, svcErr)

	// The token is single use.
	svcErr = ResetPassword(ResetPasswordRequest{Token: token, Password: "another-pass1"})
	require.NotNil(t, svcErr)
	assert.Equal(t, "Invalid or expired reset token", svcErr.Message)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db := setupTestDB(t)
	user := seedActiveUser(t, db, "expired@example.com", "256700000011", "password123")

	token, err := newResetToken()
	require.NoError(t, err)
	record := models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashResetToken(token),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&record).Error)

	svcErr := ResetPassword(ResetPasswordRequest{Token: token, Password: "brand-new-pass"})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestForgotPasswordUnknownEmailStillSucceeds(t *testing.T) {
	setupTestDB(t)

	require.Nil(t, ForgotPassword(ForgotPasswordRequest{Email: "nobody@example.com"}))
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	db := setupTestDB(t)
	user := seedActiveUser(t, db, "change@example.com", "256700000012", "password123")

	svcErr := ChangePassword(user.ID, ChangePasswordRequest{
		CurrentPassword: "wrong-pass",
		NewPassword:     "new-password",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)

	require.Nil(t, ChangePassword(user.ID, ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "new-password",
	}))

	_, svcErr = Login(LoginRequest{Identifier: "change@example.com", Password: "new-password"})
	require.Nil(t, svcErr)
}

func TestDeactivateUserRevokesSessions(t *testing.T) {
	db := setupTestDB(t)
	user := seedActiveUser(t, db, "gone@example.com", "256700000013", "password123")

	pair, svcErr := IssueTokenPair(user)
	require.Nil(t, svcErr)

	require.Nil(t, DeactivateUser(user.ID))

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, models.StatusDeactivated, reloaded.Status)

	_, svcErr = RefreshSession(pair.RefreshToken)
	require.NotNil(t, svcErr)
}
