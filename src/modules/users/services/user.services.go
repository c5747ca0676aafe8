package users

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"moviechamp/src/config"
	models "moviechamp/src/modules/users/models"
	mailer "moviechamp/src/services"
	"moviechamp/src/utils"
)

const (
	registerBcryptCost    = 12
	verificationCodeTTL   = 15 * time.Minute
	verificationResendGap = time.Minute
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	User   *models.User `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

type UserPage struct {
	Users      []models.User          `json:"users"`
	Pagination map[string]interface{} `json:"pagination"`
}

type AdminUserUpdate struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Role       *string `json:"role"`
	Status     *string `json:"status"`
	IsApproved *bool   `json:"isApproved"`
}

func verificationKey(email string) string {
	return "verify:" + email
}

func resendKey(email string) string {
	return "verify:resend:" + email
}

func newVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// storeVerificationCode writes the code with its TTL and arms the resend
// rate limit window.
func storeVerificationCode(email, code string) error {
	if config.RDB == nil {
		return errors.New("redis is not configured")
	}
	if err := config.RDB.Set(config.Ctx, verificationKey(email), code, verificationCodeTTL).Err(); err != nil {
		return err
	}
	return config.RDB.Set(config.Ctx, resendKey(email), "1", verificationResendGap).Err()
}

func Register(req RegisterRequest) (*models.User, *utils.ServiceError) {
	db := config.DB

	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	if email == "" || phone == "" || req.Password == "" {
		return nil, utils.BadRequest("Email, phone and password are required")
	}
	if len(req.Password) < 8 {
		return nil, utils.BadRequest("Password must be at least 8 characters")
	}

	var existing models.User
	err := db.Where("email = ?", email).Select("id").First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("User with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking email conflict: %v", err)
		return nil, utils.ServerError("Failed to register")
	}

	err = db.Where("phone = ?", phone).Select("id").First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("User with this phone already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking phone conflict: %v", err)
		return nil, utils.ServerError("Failed to register")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), registerBcryptCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return nil, utils.ServerError("Failed to register")
	}

	user := models.User{
		Email:     email,
		Phone:     phone,
		FirstName: firstName,
		LastName:  lastName,
		Name:      strings.TrimSpace(firstName + " " + lastName),
		Password:  string(hash),
		Role:      models.RoleUser,
		Status:    models.StatusPending,
	}
	if err := db.Create(&user).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("User with this email already exists")
		}
		log.Printf("Error creating user: %v", err)
		return nil, utils.ServerError("Failed to register")
	}

	code, err := newVerificationCode()
	if err != nil {
		log.Printf("Error generating verification code: %v", err)
	} else if err := storeVerificationCode(email, code); err != nil {
		log.Printf("Error storing verification code: %v", err)
	} else {
		go mailer.SendVerificationEmail(email, code)
	}

	return &user, nil
}

// Login accepts the email or phone as identifier. Only ACTIVE accounts can
// sign in.
func Login(req LoginRequest) (*LoginResponse, *utils.ServiceError) {
	db := config.DB

	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" || req.Password == "" {
		return nil, utils.BadRequest("Identifier and password are required")
	}

	var user models.User
	err := db.Where("email = ? OR phone = ?", strings.ToLower(identifier), identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorized("Invalid credentials")
		}
		log.Printf("Error fetching user: %v", err)
		return nil, utils.ServerError("Failed to log in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, utils.Unauthorized("Invalid credentials")
	}

	switch user.Status {
	case models.StatusActive:
	case models.StatusPending:
		return nil, utils.Forbidden("Please verify your email before logging in")
	default:
		return nil, utils.Forbidden("Account is not active")
	}

	tokens, svcErr := IssueTokenPair(&user)
	if svcErr != nil {
		return nil, svcErr
	}
	return &LoginResponse{User: &user, Tokens: tokens}, nil
}

func GetUserByID(id string) (*models.User, *utils.ServiceError) {
	db := config.DB

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		log.Printf("Error fetching user: %v", err)
		return nil, utils.ServerError("Server error")
	}
	return &user, nil
}

// ListUsers pages through accounts with optional role/status/search filters.
func ListUsers(page, limit int, role, status, search string) (*UserPage, *utils.ServiceError) {
	db := config.DB

	query := func(tx *gorm.DB) *gorm.DB {
		q := tx.Model(&models.User{})
		if role != "" {
			q = q.Where("role = ?", role)
		}
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			q = q.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
		}
		return q
	}

	var (
		userRows []models.User
		total    int64
	)
	var g errgroup.Group
	g.Go(func() error {
		return query(db.Session(&gorm.Session{})).
			Order("created_at desc").
			Offset((page - 1) * limit).Limit(limit).
			Find(&userRows).Error
	})
	g.Go(func() error {
		return query(db.Session(&gorm.Session{})).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error fetching users: %v", err)
		return nil, utils.ServerError("Failed to fetch users")
	}

	return &UserPage{
		Users:      userRows,
		Pagination: utils.Paginate(total, page, limit),
	}, nil
}

// UpdateUser applies administrative changes to an account.
func UpdateUser(id string, req AdminUserUpdate) (*models.User, *utils.ServiceError) {
	db := config.DB

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		log.Printf("Error fetching user: %v", err)
		return nil, utils.ServerError("Failed to update user")
	}

	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, utils.BadRequest("Invalid role")
		}
		user.Role = models.UserRole(*req.Role)
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, utils.BadRequest("Invalid status")
		}
		user.Status = models.UserStatus(*req.Status)
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.FirstName != nil || req.LastName != nil {
		user.Name = strings.TrimSpace(user.FirstName + " " + user.LastName)
	}
	if req.IsApproved != nil {
		user.IsApproved = *req.IsApproved
	}

	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user: %v", err)
		return nil, utils.ServerError("Failed to update user")
	}
	return &user, nil
}

// DeactivateUser is a soft delete: the row stays, sessions are revoked.
func DeactivateUser(id string) *utils.ServiceError {
	db := config.DB

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("User not found")
		}
		log.Printf("Error fetching user: %v", err)
		return utils.ServerError("Failed to delete user")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", id).
			Update("status", models.StatusDeactivated).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error
	})
	if err != nil {
		log.Printf("Error deactivating user: %v", err)
		return utils.ServerError("Failed to delete user")
	}
	return nil
}
