// File: /database/database.go
package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alumninet-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(gormmysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.AlumniProfile{},
		&models.Company{},
		&models.Opportunity{},
		&models.Application{},
		&models.Connection{},
		&models.Message{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Add custom indexes for better performance
	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Unread counts group by sender for a receiver
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_messages_receiver_read ON messages(receiver_id, read_status)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for messages receiver/read: %v\n", err)
	}

	// Thread queries scan both directions ordered by time
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_messages_sender_receiver_created ON messages(sender_id, receiver_id, created_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for messages thread lookup: %v\n", err)
	}

	// Opportunity listings for students filter on status
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_opportunities_status_created ON opportunities(status, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for opportunities: %v\n", err)
	}

	return nil
}

// IsDuplicateEntry reports whether err is a unique constraint violation from
// the backing store. MySQL surfaces these as error 1062; the sqlite driver
// used in tests reports a textual UNIQUE constraint failure.
func IsDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
// Safe to call on every start.
func SeedAdmin(db *gorm.DB, email, passwordHash string) error {
	if email == "" || passwordHash == "" {
		return nil
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	admin := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		Verified:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	fmt.Printf("Seeded admin account %s\n", email)
	return nil
}
