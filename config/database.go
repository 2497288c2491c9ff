package config

import (
	"fmt"

	"github.com/toptours/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	// TranslateError maps driver unique-violation errors onto
	// gorm.ErrDuplicatedKey so insert retries can detect them.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Destination{},
		&models.Restaurant{},
		&models.RestaurantSubscription{},
		&models.RestaurantPremiumSubscription{},
		&models.PromotedRestaurant{},
		&models.TourOperatorCRM{},
		&models.OperatorSubscription{},
		&models.StripeCustomer{},
		&models.PromotionAccount{},
		&models.ListingScore{},
		&models.BoostCredit{},
		&models.TravelPlan{},
		&models.TravelPlanItem{},
		&models.CategoryGuide{},
		&models.RestaurantGuide{},
		&models.BabyEquipmentRental{},
		&models.PartnerGuide{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate failed: %w", err)
	}

	return db, nil
}
