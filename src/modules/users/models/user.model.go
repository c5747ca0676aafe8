package users

import (
	"time"

	"gorm.io/gorm"

	"moviechamp/src/utils"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type UserStatus string

const (
	StatusPending     UserStatus = "PENDING"
	StatusActive      UserStatus = "ACTIVE"
	StatusSuspended   UserStatus = "SUSPENDED"
	StatusDeactivated UserStatus = "DEACTIVATED"
)

func ValidRole(v string) bool {
	return v == string(RoleUser) || v == string(RoleAdmin)
}

func ValidStatus(v string) bool {
	switch UserStatus(v) {
	case StatusPending, StatusActive, StatusSuspended, StatusDeactivated:
		return true
	}
	return false
}

const defaultUserImageURL = "/images/user-placeholder.png"

type User struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	Phone         string     `json:"phone" gorm:"uniqueIndex;not null"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	Name          string     `json:"name"`
	ImageURL      string     `json:"imageUrl"`
	Password      string     `json:"-" gorm:"not null"`
	Role          UserRole   `json:"role" gorm:"type:varchar(16);default:USER"`
	Status        UserStatus `json:"status" gorm:"type:varchar(16);default:PENDING;index"`
	EmailVerified bool       `json:"emailVerified"`
	IsApproved    bool       `json:"isApproved"`
	CurrentPlan   *string    `json:"currentPlan"`
	PlanExpiresAt *time.Time `json:"planExpiresAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = utils.NewID()
	}
	if u.ImageURL == "" {
		u.ImageURL = defaultUserImageURL
	}
	return nil
}

// RefreshToken is a persisted login session; deleting a user's rows revokes
// every session they hold.
type RefreshToken struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	UserID    string    `json:"userId" gorm:"type:varchar(64);index;not null"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = utils.NewID()
	}
	return nil
}

// PasswordResetToken stores only the sha256 of the emailed token. Kept in
// Postgres (not Redis) so consuming it can share a transaction with the
// password update and session revocation.
type PasswordResetToken struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID    string     `json:"userId" gorm:"type:varchar(64);index;not null"`
	TokenHash string     `json:"-" gorm:"index;not null"`
	ExpiresAt time.Time  `json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (t *PasswordResetToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = utils.NewID()
	}
	return nil
}

func MigrateUsers(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &RefreshToken{}, &PasswordResetToken{})
}
