package payments

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moviechamp/src/config"
	models "moviechamp/src/modules/payments/models"
	users "moviechamp/src/modules/users/models"
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
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *users.User {
	t.Helper()

	user := users.User{
		Email:    "payer@example.com",
		Phone:    "256700000001",
		Password: "irrelevant",
		Status:   users.StatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestPlanDurations(t *testing.T) {
	cases := map[string]int{
		"DAILY":       1,
		"WEEKLY":      7,
		"MONTHLY":     30,
		"QUARTERLY":   90,
		"SEMI_ANNUAL": 180,
		"ANNUAL":      365,
		"weekly":      7,
		"bogus":       30,
		"":            30,
	}
	for plan, want := range cases {
		assert.Equal(t, want, PlanDuration(plan), "plan %q", plan)
	}
}

func TestInitiateMobileMoneyStaysProcessing(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	resp, svcErr := InitiateMobileMoney(user.ID, InitiateRequest{
		Plan:        "WEEKLY",
		Amount:      5000,
		PhoneNumber: "256700000001",
	})
	require.Nil(t, svcErr)
	assert.Equal(t, models.PaymentProcessing, resp.Payment.Status)
	assert.Equal(t, models.SubscriptionPending, resp.Subscription.Status)
	require.NotNil(t, resp.Payment.TransactionID)
	assert.Contains(t, *resp.Payment.TransactionID, "MM")

	// The user's plan is untouched until the payment is verified.
	var reloaded users.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Nil(t, reloaded.CurrentPlan)
}

func TestInitiateMobileMoneyRequiresPhone(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	_, svcErr := InitiateMobileMoney(user.ID, InitiateRequest{Plan: "WEEKLY", Amount: 5000})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestInitiateCardSettlesImmediately(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	resp, svcErr := InitiateCard(user.ID, InitiateRequest{
		Plan:       "MONTHLY",
		Amount:     20000,
		CardNumber: "4242424242424242",
	})
	require.Nil(t, svcErr)
	assert.Equal(t, models.PaymentCompleted, resp.Payment.Status)
	require.NotNil(t, resp.Payment.CardLast4)
	assert.Equal(t, "4242", *resp.Payment.CardLast4)
	assert.Equal(t, models.SubscriptionActive, resp.Subscription.Status)

	var reloaded users.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	require.NotNil(t, reloaded.CurrentPlan)
	assert.Equal(t, "MONTHLY", *reloaded.CurrentPlan)
	require.NotNil(t, reloaded.PlanExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *reloaded.PlanExpiresAt, time.Minute)
}

func TestInitiatePayPalBuildsApprovalURL(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	resp, svcErr := InitiatePayPal(user.ID, InitiateRequest{
		Plan:      "ANNUAL",
		Amount:    100000,
		ReturnURL: "https://app.example.com/payments/return",
	})
	require.Nil(t, svcErr)
	assert.Equal(t, models.PaymentPending, resp.Payment.Status)
	assert.Equal(t,
		fmt.Sprintf("https://app.example.com/payments/return?paymentId=%s&status=success", resp.Payment.ID),
		resp.ApprovalURL)
}

func TestVerifyPaymentActivatesSubscription(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	resp, svcErr := InitiateMobileMoney(user.ID, InitiateRequest{
		Plan:        "WEEKLY",
		Amount:      5000,
		PhoneNumber: "256700000001",
	})
	require.Nil(t, svcErr)

	payment, svcErr := VerifyPayment(user.ID, resp.Payment.ID)
	require.Nil(t, svcErr)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	require.NotNil(t, payment.PaidAt)

	var sub models.Subscription
	require.NoError(t, db.First(&sub, "id = ?", resp.Subscription.ID).Error)
	assert.Equal(t, models.SubscriptionActive, sub.Status)

	var reloaded users.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	require.NotNil(t, reloaded.CurrentPlan)
	assert.Equal(t, "WEEKLY", *reloaded.CurrentPlan)
}

func TestVerifyPaymentIdempotentWhenCompleted(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	resp, svcErr := InitiateCard(user.ID, InitiateRequest{
		Plan:       "MONTHLY",
		Amount:     20000,
		CardNumber: "4242424242424242",
	})
	require.Nil(t, svcErr)

	payment, svcErr := VerifyPayment(user.ID, resp.Payment.ID)
	require.Nil(t, svcErr)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
}

func TestVerifyPaymentWrongUser(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	resp, svcErr := InitiateMobileMoney(user.ID, InitiateRequest{
		Plan:        "WEEKLY",
		Amount:      5000,
		PhoneNumber: "256700000001",
	})
	require.Nil(t, svcErr)

	_, svcErr = VerifyPayment("someone-else", resp.Payment.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestCancelSubscriptionClearsPlan(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)

	resp, svcErr := InitiateCard(user.ID, InitiateRequest{
		Plan:       "MONTHLY",
		Amount:     20000,
		CardNumber: "4242424242424242",
	})
	require.Nil(t, svcErr)

	require.Nil(t, CancelSubscription(user.ID, resp.Subscription.ID))

	var sub models.Subscription
	require.NoError(t, db.First(&sub, "id = ?", resp.Subscription.ID).Error)
	assert.Equal(t, models.SubscriptionCancelled, sub.Status)

	var reloaded users.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Nil(t, reloaded.CurrentPlan)
	assert.Nil(t, reloaded.PlanExpiresAt)
}
