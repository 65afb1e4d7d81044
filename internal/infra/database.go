package infra

import (
	"fmt"

	"github.com/heytrackid/heytrack-umkm-sub013/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for all models. gen_random_uuid() needs the pgcrypto extension
// on Postgres < 13, so it is created first.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return nil, fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by the seeding CLI.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Ingredient{},
		&model.IngredientPurchase{},
		&model.StockMovement{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.Order{},
		&model.OrderItem{},
		&model.FinancialRecord{},
		&model.Supplier{},
		&model.CostRecommendation{},
		&model.Setting{},
	)
}
