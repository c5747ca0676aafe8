package payments

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"

	"moviechamp/src/config"
	models "moviechamp/src/modules/payments/models"
	users "moviechamp/src/modules/users/models"
	"moviechamp/src/utils"
)

// planDurations maps subscription plans to their length in days.
var planDurations = map[string]int{
	"DAILY":       1,
	"WEEKLY":      7,
	"MONTHLY":     30,
	"QUARTERLY":   90,
	"SEMI_ANNUAL": 180,
	"ANNUAL":      365,
}

// Gateway confirms a payment with the upstream provider. A real provider
// client can replace the simulated one without touching the services.
type Gateway interface {
	Confirm(paymentID string) (models.PaymentStatus, error)
}

// simulatedGateway approves every confirmation request.
type simulatedGateway struct{}

func (simulatedGateway) Confirm(string) (models.PaymentStatus, error) {
	return models.PaymentCompleted, nil
}

var gateway Gateway = simulatedGateway{}

// PlanDuration resolves a plan name to days, defaulting to monthly.
func PlanDuration(plan string) int {
	if days, ok := planDurations[strings.ToUpper(plan)]; ok {
		return days
	}
	return planDurations["MONTHLY"]
}

func normalizePlan(plan string) string {
	plan = strings.ToUpper(strings.TrimSpace(plan))
	if _, ok := planDurations[plan]; !ok {
		return "MONTHLY"
	}
	return plan
}

type InitiateRequest struct {
	Plan        string  `json:"plan"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	PhoneNumber string  `json:"phoneNumber"`
	CardNumber  string  `json:"cardNumber"`
	ReturnURL   string  `json:"returnUrl"`
}

type InitiateResponse struct {
	Payment      *models.Payment      `json:"payment"`
	Subscription *models.Subscription `json:"subscription"`
	ApprovalURL  string               `json:"approvalUrl,omitempty"`
}

func newTransactionID(prefix string) string {
	return fmt.Sprintf("%s%d%04d", prefix, time.Now().UnixMilli(), rand.Intn(10000))
}

func createPendingSubscription(db *gorm.DB, userID, plan, currency string, amount float64) (*models.Subscription, error) {
	sub := models.Subscription{
		UserID:   userID,
		Plan:     plan,
		Status:   models.SubscriptionPending,
		Amount:   amount,
		Currency: currency,
		EndDate:  time.Now().AddDate(0, 0, PlanDuration(plan)),
	}
	if err := db.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// activate flips the subscription to ACTIVE and stamps the owner's plan.
func activate(db *gorm.DB, sub *models.Subscription) error {
	now := time.Now()
	end := now.AddDate(0, 0, PlanDuration(sub.Plan))

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Subscription{}).Where("id = ?", sub.ID).
			Updates(map[string]interface{}{
				"status":     models.SubscriptionActive,
				"start_date": now,
				"end_date":   end,
			}).Error
		if err != nil {
			return err
		}
		return tx.Model(&users.User{}).Where("id = ?", sub.UserID).
			Updates(map[string]interface{}{
				"current_plan":    sub.Plan,
				"plan_expires_at": end,
			}).Error
	})
}

func validateInitiate(userID string, req *InitiateRequest) *utils.ServiceError {
	if userID == "" {
		return utils.BadRequest("User ID is required")
	}
	if req.Amount <= 0 {
		return utils.BadRequest("Amount must be positive")
	}
	req.Plan = normalizePlan(req.Plan)
	if req.Currency == "" {
		req.Currency = "UGX"
	}
	return nil
}

// InitiateMobileMoney creates the subscription and leaves the payment in
// PROCESSING until the provider callback verifies it.
func InitiateMobileMoney(userID string, req InitiateRequest) (*InitiateResponse, *utils.ServiceError) {
	db := config.DB

	if svcErr := validateInitiate(userID, &req); svcErr != nil {
		return nil, svcErr
	}
	phone := strings.TrimSpace(req.PhoneNumber)
	if phone == "" {
		return nil, utils.BadRequest("Phone number is required for mobile money")
	}

	sub, err := createPendingSubscription(db, userID, req.Plan, req.Currency, req.Amount)
	if err != nil {
		log.Printf("Error creating subscription: %v", err)
		return nil, utils.ServerError("Failed to initiate payment")
	}

	txnID := newTransactionID("MM")
	payment := models.Payment{
		UserID:         userID,
		SubscriptionID: &sub.ID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		PaymentMethod:  models.MethodMobileMoney,
		Status:         models.PaymentProcessing,
		TransactionID:  &txnID,
		PhoneNumber:    &phone,
	}
	if err := db.Create(&payment).Error; err != nil {
		log.Printf("Error creating payment: %v", err)
		return nil, utils.ServerError("Failed to initiate payment")
	}

	return &InitiateResponse{Payment: &payment, Subscription: sub}, nil
}

// InitiateCard settles immediately in this simulated gateway.
func InitiateCard(userID string, req InitiateRequest) (*InitiateResponse, *utils.ServiceError) {
	db := config.DB

	if svcErr := validateInitiate(userID, &req); svcErr != nil {
		return nil, svcErr
	}
	card := strings.TrimSpace(req.CardNumber)
	if len(card) < 4 {
		return nil, utils.BadRequest("Card number is required")
	}

	sub, err := createPendingSubscription(db, userID, req.Plan, req.Currency, req.Amount)
	if err != nil {
		log.Printf("Error creating subscription: %v", err)
		return nil, utils.ServerError("Failed to initiate payment")
	}

	now := time.Now()
	txnID := newTransactionID("CARD")
	last4 := card[len(card)-4:]
	payment := models.Payment{
		UserID:         userID,
		SubscriptionID: &sub.ID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		PaymentMethod:  models.MethodBankCard,
		Status:         models.PaymentCompleted,
		TransactionID:  &txnID,
		CardLast4:      &last4,
		PaidAt:         &now,
	}
	if err := db.Create(&payment).Error; err != nil {
		log.Printf("Error creating payment: %v", err)
		return nil, utils.ServerError("Failed to initiate payment")
	}

	if err := activate(db, sub); err != nil {
		log.Printf("Error activating subscription: %v", err)
		return nil, utils.ServerError("Failed to activate subscription")
	}

	if err := db.Preload("User").First(sub, "id = ?", sub.ID).Error; err != nil {
		log.Printf("Error reloading subscription: %v", err)
	}
	return &InitiateResponse{Payment: &payment, Subscription: sub}, nil
}

// InitiatePayPal hands back the approval URL the client must follow.
func InitiatePayPal(userID string, req InitiateRequest) (*InitiateResponse, *utils.ServiceError) {
	db := config.DB

	if svcErr := validateInitiate(userID, &req); svcErr != nil {
		return nil, svcErr
	}
	if strings.TrimSpace(req.ReturnURL) == "" {
		return nil, utils.BadRequest("Return URL is required for PayPal")
	}

	sub, err := createPendingSubscription(db, userID, req.Plan, req.Currency, req.Amount)
	if err != nil {
		log.Printf("Error creating subscription: %v", err)
		return nil, utils.ServerError("Failed to initiate payment")
	}

	txnID := newTransactionID("PP")
	payment := models.Payment{
		UserID:         userID,
		SubscriptionID: &sub.ID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		PaymentMethod:  models.MethodPayPal,
		Status:         models.PaymentPending,
		TransactionID:  &txnID,
	}
	if err := db.Create(&payment).Error; err != nil {
		log.Printf("Error creating payment: %v", err)
		return nil, utils.ServerError("Failed to initiate payment")
	}

	approvalURL := fmt.Sprintf("%s?paymentId=%s&status=success", req.ReturnURL, payment.ID)
	return &InitiateResponse{Payment: &payment, Subscription: sub, ApprovalURL: approvalURL}, nil
}

// VerifyPayment promotes a PENDING or PROCESSING payment to COMPLETED and
// activates its subscription.
func VerifyPayment(userID, paymentID string) (*models.Payment, *utils.ServiceError) {
	db := config.DB

	var payment models.Payment
	err := db.Preload("Subscription").
		Where("id = ? AND user_id = ?", paymentID, userID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Payment not found")
		}
		log.Printf("Error fetching payment: %v", err)
		return nil, utils.ServerError("Failed to verify payment")
	}

	switch payment.Status {
	case models.PaymentCompleted:
		return &payment, nil
	case models.PaymentPending, models.PaymentProcessing:
	default:
		return nil, utils.BadRequest("Payment cannot be verified in its current state")
	}

	status, err := gateway.Confirm(payment.ID)
	if err != nil {
		log.Printf("Error confirming payment with gateway: %v", err)
		return nil, utils.ServerError("Failed to verify payment")
	}

	updates := map[string]interface{}{"status": status}
	if status == models.PaymentCompleted {
		updates["paid_at"] = time.Now()
	}
	if err := db.Model(&models.Payment{}).Where("id = ?", payment.ID).Updates(updates).Error; err != nil {
		log.Printf("Error completing payment: %v", err)
		return nil, utils.ServerError("Failed to verify payment")
	}

	if status == models.PaymentCompleted && payment.Subscription != nil {
		if err := activate(db, payment.Subscription); err != nil {
			log.Printf("Error activating subscription: %v", err)
			return nil, utils.ServerError("Failed to activate subscription")
		}
	}

	err = db.Preload("Subscription").First(&payment, "id = ?", payment.ID).Error
	if err != nil {
		log.Printf("Error reloading payment: %v", err)
		return nil, utils.ServerError("Failed to verify payment")
	}
	return &payment, nil
}

func GetPayment(userID, paymentID string) (*models.Payment, *utils.ServiceError) {
	db := config.DB

	var payment models.Payment
	err := db.Preload("Subscription").
		Where("id = ? AND user_id = ?", paymentID, userID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Payment not found")
		}
		log.Printf("Error fetching payment: %v", err)
		return nil, utils.ServerError("Server error")
	}
	return &payment, nil
}

func ListUserPayments(userID string) ([]models.Payment, *utils.ServiceError) {
	db := config.DB

	var rows []models.Payment
	err := db.Preload("Subscription").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		log.Printf("Error fetching payments: %v", err)
		return nil, utils.ServerError("Failed to fetch payments")
	}
	return rows, nil
}

// CurrentSubscription returns the user's latest ACTIVE subscription.
func CurrentSubscription(userID string) (*models.Subscription, *utils.ServiceError) {
	db := config.DB

	var sub models.Subscription
	err := db.Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		Order("end_date desc").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("No active subscription")
		}
		log.Printf("Error fetching subscription: %v", err)
		return nil, utils.ServerError("Server error")
	}
	return &sub, nil
}

// CancelSubscription marks it CANCELLED and clears the user's plan.
func CancelSubscription(userID, subscriptionID string) *utils.ServiceError {
	db := config.DB

	var sub models.Subscription
	err := db.Where("id = ? AND user_id = ?", subscriptionID, userID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Subscription not found")
		}
		log.Printf("Error fetching subscription: %v", err)
		return utils.ServerError("Failed to cancel subscription")
	}
	if sub.Status != models.SubscriptionActive && sub.Status != models.SubscriptionPending {
		return utils.BadRequest("Subscription cannot be cancelled in its current state")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Subscription{}).Where("id = ?", sub.ID).
			Update("status", models.SubscriptionCancelled).Error
		if err != nil {
			return err
		}
		return tx.Model(&users.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"current_plan":    nil,
				"plan_expires_at": nil,
			}).Error
	})
	if err != nil {
		log.Printf("Error cancelling subscription: %v", err)
		return utils.ServerError("Failed to cancel subscription")
	}
	return nil
}
