package services

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"moviechamp/src/config"
	catalog "moviechamp/src/modules/catalog/models"
	payments "moviechamp/src/modules/payments/models"
	users "moviechamp/src/modules/users/models"
)

// SetupBackgroundJobs starts the recurring maintenance work: expiring
// lapsed subscriptions and mirroring external posters into object storage.
func SetupBackgroundJobs() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 10m", ExpireLapsedSubscriptions); err != nil {
		log.Printf("[cron] Failed to schedule subscription sweep: %v", err)
	}
	if _, err := c.AddFunc("@every 30m", MirrorExternalPosters); err != nil {
		log.Printf("[cron] Failed to schedule poster mirror: %v", err)
	}

	c.Start()
	log.Println("[cron] Background jobs started")
	return c
}

// ExpireLapsedSubscriptions flips ACTIVE subscriptions past their end date
// to EXPIRED and clears the owner's plan.
func ExpireLapsedSubscriptions() {
	db := config.DB
	now := time.Now()

	var lapsed []payments.Subscription
	err := db.Where("status = ? AND end_date < ?", payments.SubscriptionActive, now).
		Find(&lapsed).Error
	if err != nil {
		log.Printf("[cron] Error fetching lapsed subscriptions: %v", err)
		return
	}
	if len(lapsed) == 0 {
		return
	}

	for _, sub := range lapsed {
		err := db.Transaction(func(tx *gorm.DB) error {
			err := tx.Model(&payments.Subscription{}).Where("id = ?", sub.ID).
				Update("status", payments.SubscriptionExpired).Error
			if err != nil {
				return err
			}
			return tx.Model(&users.User{}).
				Where("id = ? AND current_plan = ?", sub.UserID, sub.Plan).
				Updates(map[string]interface{}{
					"current_plan":    nil,
					"plan_expires_at": nil,
				}).Error
		})
		if err != nil {
			log.Printf("[cron] Error expiring subscription %s: %v", sub.ID, err)
		}
	}
	log.Printf("[cron] Expired %d lapsed subscription(s)", len(lapsed))
}

// externalPosterMovies lists movies whose poster still points at a third
// party host.
func externalPosterMovies(db *gorm.DB, limit int) ([]catalog.Movie, error) {
	var movies []catalog.Movie
	err := db.Where("poster LIKE ?", "http%").Limit(limit).Find(&movies).Error
	return movies, err
}

func externalPosterSeries(db *gorm.DB, limit int) ([]catalog.Series, error) {
	var series []catalog.Series
	err := db.Where("poster LIKE ?", "http%").Limit(limit).Find(&series).Error
	return series, err
}

// mirrorPoster downloads the poster and stores it in the media bucket under
// objectPath.
func mirrorPoster(client *http.Client, url, objectPath string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("not an image: %q", contentType)
	}

	_, err = config.MinioClient.PutObject(config.Ctx, config.BucketName, objectPath,
		resp.Body, resp.ContentLength, minio.PutObjectOptions{ContentType: contentType})
	return err
}

// MirrorExternalPosters copies movie and series posters still pointing at
// third party hosts into the media bucket and rewrites the rows to the
// proxied path.
func MirrorExternalPosters() {
	if config.MinioClient == nil {
		return
	}
	db := config.DB

	client := &http.Client{Timeout: 30 * time.Second}
	mirrored := 0

	movies, err := externalPosterMovies(db, 50)
	if err != nil {
		log.Printf("[cron] Error fetching movies with external posters: %v", err)
		return
	}
	for _, movie := range movies {
		objectPath := "posters/movies/" + movie.ID
		if err := mirrorPoster(client, movie.Poster, objectPath); err != nil {
			log.Printf("[cron] Error mirroring poster for movie %s: %v", movie.ID, err)
			continue
		}
		err := db.Model(&catalog.Movie{}).Where("id = ?", movie.ID).
			Update("poster", "/static/"+objectPath).Error
		if err != nil {
			log.Printf("[cron] Error updating poster path for movie %s: %v", movie.ID, err)
			continue
		}
		mirrored++
	}

	series, err := externalPosterSeries(db, 50)
	if err != nil {
		log.Printf("[cron] Error fetching series with external posters: %v", err)
		return
	}
	for _, s := range series {
		objectPath := "posters/series/" + s.ID
		if err := mirrorPoster(client, s.Poster, objectPath); err != nil {
			log.Printf("[cron] Error mirroring poster for series %s: %v", s.ID, err)
			continue
		}
		err := db.Model(&catalog.Series{}).Where("id = ?", s.ID).
			Update("poster", "/static/"+objectPath).Error
		if err != nil {
			log.Printf("[cron] Error updating poster path for series %s: %v", s.ID, err)
			continue
		}
		mirrored++
	}

	if mirrored > 0 {
		log.Printf("[cron] Mirrored %d poster(s) into object storage", mirrored)
	}
}
