package users

import (
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"moviechamp/src/config"
	mylist "moviechamp/src/modules/mylist/models"
	models "moviechamp/src/modules/users/models"
	watchhistory "moviechamp/src/modules/watchhistory/models"
	"moviechamp/src/utils"
)

type ProfileUpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	ImageURL  *string `json:"imageUrl"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type AccountStatistics struct {
	TotalWatched   int64 `json:"totalWatched"`
	Completed      int64 `json:"completed"`
	InProgress     int64 `json:"inProgress"`
	ListItemsTotal int64 `json:"listItemsTotal"`
}

// UpdateProfile lets users edit their own account fields.
func UpdateProfile(userID string, req ProfileUpdateRequest) (*models.User, *utils.ServiceError) {
	db := config.DB

	user, svcErr := GetUserByID(userID)
	if svcErr != nil {
		return nil, svcErr
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone != "" && phone != user.Phone {
			var conflict models.User
			err := db.Where("phone = ? AND id <> ?", phone, userID).Select("id").First(&conflict).Error
			if err == nil {
				return nil, utils.Conflict("User with this phone already exists")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Error checking phone conflict: %v", err)
				return nil, utils.ServerError("Failed to update profile")
			}
			user.Phone = phone
		}
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
	if req.ImageURL != nil && strings.TrimSpace(*req.ImageURL) != "" {
		user.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	if err := db.Save(user).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, utils.Conflict("User with this phone already exists")
		}
		log.Printf("Error updating profile: %v", err)
		return nil, utils.ServerError("Failed to update profile")
	}
	return user, nil
}

// ChangePassword verifies the current password before swapping it and
// revokes every other session.
func ChangePassword(userID string, req ChangePasswordRequest) *utils.ServiceError {
	db := config.DB

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return utils.BadRequest("Current and new password are required")
	}
	if len(req.NewPassword) < 8 {
		return utils.BadRequest("Password must be at least 8 characters")
	}

	user, svcErr := GetUserByID(userID)
	if svcErr != nil {
		return svcErr
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return utils.Unauthorized("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), resetBcryptCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return utils.ServerError("Failed to change password")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
	})
	if err != nil {
		log.Printf("Error changing password: %v", err)
		return utils.ServerError("Failed to change password")
	}
	return nil
}

// DeleteAccount requires the password to confirm and then soft deletes.
func DeleteAccount(userID string, req DeleteAccountRequest) *utils.ServiceError {
	if req.Password == "" {
		return utils.BadRequest("Password is required")
	}

	user, svcErr := GetUserByID(userID)
	if svcErr != nil {
		return svcErr
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return utils.Unauthorized("Password is incorrect")
	}

	return DeactivateUser(userID)
}

// Statistics aggregates the user's viewing and list numbers in parallel.
func Statistics(userID string) (*AccountStatistics, *utils.ServiceError) {
	db := config.DB

	if userID == "" {
		return nil, utils.BadRequest("User ID is required")
	}

	var stats AccountStatistics
	var g errgroup.Group
	g.Go(func() error {
		return db.Model(&watchhistory.WatchHistory{}).
			Where("user_id = ?", userID).
			Count(&stats.TotalWatched).Error
	})
	g.Go(func() error {
		return db.Model(&watchhistory.WatchHistory{}).
			Where("user_id = ? AND completed = ?", userID, true).
			Count(&stats.Completed).Error
	})
	g.Go(func() error {
		return db.Model(&watchhistory.WatchHistory{}).
			Where("user_id = ? AND completed = ? AND progress_percent > 0", userID, false).
			Count(&stats.InProgress).Error
	})
	g.Go(func() error {
		var list mylist.MyList
		err := db.Where("user_id = ?", userID).Select("id").First(&list).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		var movies, series int64
		if err := db.Model(&mylist.MyListMovie{}).Where("list_id = ?", list.ID).Count(&movies).Error; err != nil {
			return err
		}
		if err := db.Model(&mylist.MyListSeries{}).Where("list_id = ?", list.ID).Count(&series).Error; err != nil {
			return err
		}
		stats.ListItemsTotal = movies + series
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error aggregating account statistics: %v", err)
		return nil, utils.ServerError("Failed to fetch statistics")
	}
	return &stats, nil
}
