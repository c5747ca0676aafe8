package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	catalog "moviechamp/src/modules/catalog/models"
	mylist "moviechamp/src/modules/mylist/models"
	payments "moviechamp/src/modules/payments/models"
	users "moviechamp/src/modules/users/models"
	watchhistory "moviechamp/src/modules/watchhistory/models"
)

var DB *gorm.DB

// ConnectDatabase initializes and migrates the database.
func ConnectDatabase() *gorm.DB {
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		dbHost, dbPort, dbUser, dbPass, dbName)

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	DB = database
	log.Println("Connected to PostgreSQL database")

	if err := RunMigrations(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	return DB
}

func CheckConnection() bool {
	if DB == nil {
		return false
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("Failed to get generic database object: %v", err)
		return false
	}

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database ping failed: %v", err)
		return false
	}
	return true
}

// RunMigrations applies every model migration; also used by tests against
// an in-memory database.
func RunMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		catalog.MigrateGenres,
		catalog.MigrateVJs,
		catalog.MigrateReleaseYears,
		catalog.MigrateMovies,
		catalog.MigrateSeries,
		users.MigrateUsers,
		watchhistory.MigrateWatchHistory,
		mylist.MigrateMyLists,
		payments.MigratePayments,
	}

	for _, migrate := range migrations {
		if err := migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
