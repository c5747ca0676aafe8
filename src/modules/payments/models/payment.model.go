package payments

import (
	"time"

	"gorm.io/gorm"

	users "moviechamp/src/modules/users/models"
	"moviechamp/src/utils"
)

type PaymentMethod string

const (
	MethodMobileMoney PaymentMethod = "MOBILE_MONEY"
	MethodBankCard    PaymentMethod = "BANK_CARD"
	MethodPayPal      PaymentMethod = "PAYPAL"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentCompleted  PaymentStatus = "COMPLETED"
	PaymentFailed     PaymentStatus = "FAILED"
)

type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "PENDING"
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

type Payment struct {
	ID             string        `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID         string        `json:"userId" gorm:"type:varchar(64);index;not null"`
	SubscriptionID *string       `json:"subscriptionId" gorm:"type:varchar(64);index"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency" gorm:"type:varchar(8)"`
	PaymentMethod  PaymentMethod `json:"paymentMethod" gorm:"type:varchar(16);index"`
	Status         PaymentStatus `json:"status" gorm:"type:varchar(16);index"`
	TransactionID  *string       `json:"transactionId"`
	PhoneNumber    *string       `json:"phoneNumber"`
	CardLast4      *string       `json:"cardLast4" gorm:"type:varchar(4)"`
	PaidAt         *time.Time    `json:"paidAt"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	User         *users.User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Subscription *Subscription `json:"subscription,omitempty" gorm:"foreignKey:SubscriptionID"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.NewID()
	}
	return nil
}

type Subscription struct {
	ID        string             `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID    string             `json:"userId" gorm:"type:varchar(64);index;not null"`
	Plan      string             `json:"plan" gorm:"type:varchar(16);index"`
	Status    SubscriptionStatus `json:"status" gorm:"type:varchar(16);index"`
	Amount    float64            `json:"amount"`
	Currency  string             `json:"currency" gorm:"type:varchar(8)"`
	StartDate *time.Time         `json:"startDate"`
	EndDate   time.Time          `json:"endDate"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`

	User *users.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.NewID()
	}
	return nil
}

func MigratePayments(db *gorm.DB) error {
	return db.AutoMigrate(&Subscription{}, &Payment{})
}
