package database

import (
	"log"

	"cafeteria-backend/internal/config"
	"cafeteria-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.TillSession{},
		&models.CashMovement{},
		&models.Order{},
		&models.OrderItem{},
		&models.Customer{},
		&models.Rating{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Backstop for the single-open-session invariant. The open path also
	// re-checks inside a transaction; this index closes the remaining race.
	if err := DB.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_till_sessions_single_open ON till_sessions(status) WHERE status = 'open'",
	).Error; err != nil {
		log.Printf("Could not create single-open-session index: %v", err)
	}

	log.Println("Database connected. Migration complete.")
}
