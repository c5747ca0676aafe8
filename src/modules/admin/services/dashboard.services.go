package admin

import (
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"moviechamp/src/config"
	catalog "moviechamp/src/modules/catalog/models"
	payments "moviechamp/src/modules/payments/models"
	users "moviechamp/src/modules/users/models"
	"moviechamp/src/utils"
)

type DashboardStats struct {
	TotalUsers          int64   `json:"totalUsers"`
	ActiveUsers         int64   `json:"activeUsers"`
	NewUsersThisMonth   int64   `json:"newUsersThisMonth"`
	UserGrowthPercent   float64 `json:"userGrowthPercent"`
	TotalMovies         int64   `json:"totalMovies"`
	TotalSeries         int64   `json:"totalSeries"`
	TotalEpisodes       int64   `json:"totalEpisodes"`
	TotalRevenue        float64 `json:"totalRevenue"`
	RevenueThisMonth    float64 `json:"revenueThisMonth"`
	ActiveSubscriptions int64   `json:"activeSubscriptions"`
}

type SeriesPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

type timeWindow struct {
	start time.Time
	end   time.Time
	label string
}

type ContentAnalytics struct {
	TopMovies         []catalog.Movie  `json:"topMovies"`
	TopSeries         []catalog.Series `json:"topSeries"`
	GenreDistribution []GenreCount     `json:"genreDistribution"`
}

type GenreCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// GetDashboardStats gathers the headline numbers in parallel.
func GetDashboardStats() (*DashboardStats, *utils.ServiceError) {
	db := config.DB

	now := time.Now()
	thisMonth := monthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var (
		stats          DashboardStats
		lastMonthUsers int64
	)

	var g errgroup.Group
	g.Go(func() error {
		return db.Model(&users.User{}).Count(&stats.TotalUsers).Error
	})
	g.Go(func() error {
		return db.Model(&users.User{}).
			Where("status = ?", users.StatusActive).
			Count(&stats.ActiveUsers).Error
	})
	g.Go(func() error {
		return db.Model(&users.User{}).
			Where("created_at >= ?", thisMonth).
			Count(&stats.NewUsersThisMonth).Error
	})
	g.Go(func() error {
		return db.Model(&users.User{}).
			Where("created_at >= ? AND created_at < ?", lastMonth, thisMonth).
			Count(&lastMonthUsers).Error
	})
	g.Go(func() error {
		return db.Model(&catalog.Movie{}).Count(&stats.TotalMovies).Error
	})
	g.Go(func() error {
		return db.Model(&catalog.Series{}).Count(&stats.TotalSeries).Error
	})
	g.Go(func() error {
		return db.Model(&catalog.Episode{}).Count(&stats.TotalEpisodes).Error
	})
	g.Go(func() error {
		return db.Model(&payments.Payment{}).
			Where("status = ?", payments.PaymentCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&stats.TotalRevenue).Error
	})
	g.Go(func() error {
		return db.Model(&payments.Payment{}).
			Where("status = ? AND paid_at >= ?", payments.PaymentCompleted, thisMonth).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&stats.RevenueThisMonth).Error
	})
	g.Go(func() error {
		return db.Model(&payments.Subscription{}).
			Where("status = ?", payments.SubscriptionActive).
			Count(&stats.ActiveSubscriptions).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error aggregating dashboard stats: %v", err)
		return nil, utils.ServerError("Failed to fetch dashboard stats")
	}

	if lastMonthUsers > 0 {
		stats.UserGrowthPercent = float64(stats.NewUsersThisMonth-lastMonthUsers) / float64(lastMonthUsers) * 100
	} else if stats.NewUsersThisMonth > 0 {
		stats.UserGrowthPercent = 100
	}

	return &stats, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func monthlyWindows(months int) []timeWindow {
	now := time.Now()
	windows := make([]timeWindow, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := monthStart(now).AddDate(0, -i, 0)
		windows = append(windows, timeWindow{
			start: start,
			end:   start.AddDate(0, 1, 0),
			label: start.Format("2006-01"),
		})
	}
	return windows
}

func dailyWindows(days int) []timeWindow {
	now := time.Now()
	windows := make([]timeWindow, 0, days)
	for i := days - 1; i >= 0; i-- {
		start := dayStart(now).AddDate(0, 0, -i)
		windows = append(windows, timeWindow{
			start: start,
			end:   start.AddDate(0, 0, 1),
			label: start.Format("2006-01-02"),
		})
	}
	return windows
}

// analyticsWindows resolves the period query into bucket boundaries. Day
// windows bucket per day, longer windows per month.
func analyticsWindows(period string) []timeWindow {
	switch period {
	case "7d":
		return dailyWindows(7)
	case "30d":
		return dailyWindows(30)
	case "90d":
		return monthlyWindows(3)
	case "1y":
		return monthlyWindows(12)
	default:
		return monthlyWindows(6)
	}
}

// RevenueAnalytics returns completed payment totals bucketed over the
// requested period, oldest first.
func RevenueAnalytics(period string) ([]SeriesPoint, *utils.ServiceError) {
	db := config.DB

	windows := analyticsWindows(period)
	points := make([]SeriesPoint, 0, len(windows))

	for _, w := range windows {
		var total float64
		err := db.Model(&payments.Payment{}).
			Where("status = ? AND paid_at >= ? AND paid_at < ?", payments.PaymentCompleted, w.start, w.end).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total).Error
		if err != nil {
			log.Printf("Error aggregating revenue: %v", err)
			return nil, utils.ServerError("Failed to fetch revenue analytics")
		}

		points = append(points, SeriesPoint{Period: w.label, Value: total})
	}
	return points, nil
}

// UserAnalytics returns signup counts bucketed over the requested period,
// oldest first.
func UserAnalytics(period string) ([]SeriesPoint, *utils.ServiceError) {
	db := config.DB

	windows := analyticsWindows(period)
	points := make([]SeriesPoint, 0, len(windows))

	for _, w := range windows {
		var count int64
		err := db.Model(&users.User{}).
			Where("created_at >= ? AND created_at < ?", w.start, w.end).
			Count(&count).Error
		if err != nil {
			log.Printf("Error aggregating signups: %v", err)
			return nil, utils.ServerError("Failed to fetch user analytics")
		}

		points = append(points, SeriesPoint{Period: w.label, Value: float64(count)})
	}
	return points, nil
}

// GetContentAnalytics lists the five most viewed titles of each kind plus
// the genre spread.
func GetContentAnalytics() (*ContentAnalytics, *utils.ServiceError) {
	db := config.DB

	analytics := ContentAnalytics{
		TopMovies:         []catalog.Movie{},
		TopSeries:         []catalog.Series{},
		GenreDistribution: []GenreCount{},
	}

	var g errgroup.Group
	g.Go(func() error {
		return db.Preload("Genre").Preload("VJ").
			Order("views_count desc").
			Limit(5).
			Find(&analytics.TopMovies).Error
	})
	g.Go(func() error {
		return db.Preload("Genre").Preload("VJ").
			Order("views_count desc").
			Limit(5).
			Find(&analytics.TopSeries).Error
	})
	g.Go(func() error {
		return db.Model(&catalog.Movie{}).
			Select("genres.name as name, count(*) as count").
			Joins("JOIN genres ON genres.id = movies.genre_id").
			Group("genres.name").
			Order("count desc").
			Scan(&analytics.GenreDistribution).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error aggregating content analytics: %v", err)
		return nil, utils.ServerError("Failed to fetch content analytics")
	}

	return &analytics, nil
}

// RecentActivity returns the latest transactions and signups for the
// dashboard sidebars.
func RecentActivity() (map[string]interface{}, *utils.ServiceError) {
	db := config.DB

	var (
		recentPayments []payments.Payment
		recentUsers    []users.User
	)

	var g errgroup.Group
	g.Go(func() error {
		return db.Preload("User").
			Order("created_at desc").
			Limit(5).
			Find(&recentPayments).Error
	})
	g.Go(func() error {
		return db.Order("created_at desc").
			Limit(5).
			Find(&recentUsers).Error
	})
	if err := g.Wait(); err != nil {
		log.Printf("Error fetching recent activity: %v", err)
		return nil, utils.ServerError("Failed to fetch recent activity")
	}

	return map[string]interface{}{
		"transactions": recentPayments,
		"users":        recentUsers,
	}, nil
}
