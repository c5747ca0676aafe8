package admin

import (
	"errors"
	"log"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"moviechamp/src/config"
	payments "moviechamp/src/modules/payments/models"
	users "moviechamp/src/modules/users/models"
	watchhistory "moviechamp/src/modules/watchhistory/models"
	"moviechamp/src/utils"
)

type PaymentPage struct {
	Payments   []payments.Payment     `json:"payments"`
	Pagination map[string]interface{} `json:"pagination"`
	Stats      PaymentStats           `json:"stats"`
}

type PaymentStats struct {
	Completed int64   `json:"completed"`
	Pending   int64   `json:"pending"`
	Failed    int64   `json:"failed"`
	Revenue   float64 `json:"revenue"`
}

type SubscriptionPage struct {
	Subscriptions []payments.Subscription `json:"subscriptions"`
	Pagination    map[string]interface{}  `json:"pagination"`
}

type UserDetail struct {
	User          *users.User                 `json:"user"`
	Subscriptions []payments.Subscription     `json:"subscriptions"`
	Payments      []payments.Payment          `json:"payments"`
	WatchHistory  []watchhistory.WatchHistory `json:"watchHistory"`
}

// GetUserDetail returns the account with its most recent subscriptions,
// payments and watch activity.
func GetUserDetail(id string) (*UserDetail, *utils.ServiceError) {
	db := config.DB

	var user users.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		log.Printf("Error fetching user: %v", err)
		return nil, utils.ServerError("Failed to fetch user")
	}

	detail := UserDetail{
		User:          &user,
		Subscriptions: []payments.Subscription{},
		Payments:      []payments.Payment{},
		WatchHistory:  []watchhistory.WatchHistory{},
	}

	var g errgroup.Group
	g.Go(func() error {
		return db.Where("user_id = ?", id).
			Order("created_at desc").
			Limit(5).
			Find(&detail.Subscriptions).Error
	})
	g.Go(func() error {
		return db.Where("user_id = ?", id).
			Order("created_at desc").
			Limit(5).
			Find(&detail.Payments).Error
	})
	g.Go(func() error {
		return db.Preload("Movie").
			Where("user_id = ?", id).
			Order("last_watched_at desc").
			Limit(5).
			Find(&detail.WatchHistory).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error fetching user detail: %v", err)
		return nil, utils.ServerError("Failed to fetch user")
	}

	return &detail, nil
}

// ListPayments pages all payments with optional status/method filters and
// aggregates the headline counters alongside.
func ListPayments(page, limit int, status, method string) (*PaymentPage, *utils.ServiceError) {
	db := config.DB

	query := func(tx *gorm.DB) *gorm.DB {
		q := tx.Model(&payments.Payment{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if method != "" {
			q = q.Where("payment_method = ?", method)
		}
		return q
	}

	var (
		result PaymentPage
		total  int64
	)
	var g errgroup.Group
	g.Go(func() error {
		return query(db.Session(&gorm.Session{})).
			Preload("User").Preload("Subscription").
			Order("created_at desc").
			Offset((page - 1) * limit).Limit(limit).
			Find(&result.Payments).Error
	})
	g.Go(func() error {
		return query(db.Session(&gorm.Session{})).Count(&total).Error
	})
	g.Go(func() error {
		return db.Model(&payments.Payment{}).
			Where("status = ?", payments.PaymentCompleted).
			Count(&result.Stats.Completed).Error
	})
	g.Go(func() error {
		return db.Model(&payments.Payment{}).
			Where("status IN ?", []payments.PaymentStatus{payments.PaymentPending, payments.PaymentProcessing}).
			Count(&result.Stats.Pending).Error
	})
	g.Go(func() error {
		return db.Model(&payments.Payment{}).
			Where("status = ?", payments.PaymentFailed).
			Count(&result.Stats.Failed).Error
	})
	g.Go(func() error {
		return db.Model(&payments.Payment{}).
			Where("status = ?", payments.PaymentCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&result.Stats.Revenue).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error fetching payments: %v", err)
		return nil, utils.ServerError("Failed to fetch payments")
	}

	result.Pagination = utils.Paginate(total, page, limit)
	return &result, nil
}

// ListSubscriptions pages all subscriptions with an optional status filter.
func ListSubscriptions(page, limit int, status string) (*SubscriptionPage, *utils.ServiceError) {
	db := config.DB

	query := func(tx *gorm.DB) *gorm.DB {
		q := tx.Model(&payments.Subscription{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var (
		result SubscriptionPage
		total  int64
	)
	var g errgroup.Group
	g.Go(func() error {
		return query(db.Session(&gorm.Session{})).
			Preload("User").
			Order("created_at desc").
			Offset((page - 1) * limit).Limit(limit).
			Find(&result.Subscriptions).Error
	})
	g.Go(func() error {
		return query(db.Session(&gorm.Session{})).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error fetching subscriptions: %v", err)
		return nil, utils.ServerError("Failed to fetch subscriptions")
	}

	result.Pagination = utils.Paginate(total, page, limit)
	return &result, nil
}
