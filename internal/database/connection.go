// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/koushiks/supplements-backend/internal/config"
	"github.com/koushiks/supplements-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Rating{},
		&models.Order{},
		&models.OrderItem{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Full-text search index for catalog keyword search
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('english', name || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedInitialData creates the default admin account and a starter catalog
// when the store is empty.
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Name:  "Admin User",
			Email: "admin@koushikssupplements.com",
			Role:  models.RoleAdmin,
		}

		if err := admin.SetPassword("Admin@123"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		return nil
	}

	var admin models.User
	if err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		return fmt.Errorf("failed to load admin user for seeding: %w", err)
	}

	for _, product := range sampleProducts() {
		product.CreatedBy = &admin.ID
		if err := db.Create(&product).Error; err != nil {
			log.Printf("Warning: Failed to seed product %s: %v", product.Name, err)
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

func sampleProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Whey Protein Isolate - Vanilla",
			Description: "Premium 100% whey protein isolate with 25g protein per serving. Fast-absorbing, low in carbs and fat. Perfect for post-workout recovery and muscle building.",
			Price:       2499,
			Stock:       50,
			Category:    "Whey Protein",
			Images: models.StringList{
				"https://images.unsplash.com/photo-1593095948071-474c5cc2989d?w=500",
				"https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=500",
			},
		},
		{
			Name:        "Creatine Monohydrate - Unflavored",
			Description: "Pure creatine monohydrate powder. Scientifically proven to increase strength, power, and muscle mass. 5g per serving, 100 servings per container.",
			Price:       899,
			Stock:       75,
			Category:    "Creatine",
			Images: models.StringList{
				"https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=500",
			},
		},
		{
			Name:        "BCAA Powder - Fruit Punch",
			Description: "2:1:1 ratio of Leucine, Isoleucine, and Valine. Supports muscle recovery, reduces fatigue, and enhances endurance during workouts.",
			Price:       1299,
			Stock:       60,
			Category:    "Amino Acids",
			Images: models.StringList{
				"https://images.unsplash.com/photo-1593095948071-474c5cc2989d?w=500",
			},
		},
		{
			Name:        "Pre-Workout Energy - Blue Raspberry",
			Description: "High-energy pre-workout formula with caffeine, beta-alanine, and citrulline malate. Boosts energy, focus, and performance.",
			Price:       1799,
			Stock:       40,
			Category:    "Pre-Workout",
			Images: models.StringList{
				"https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=500",
			},
		},
		{
			Name:        "Casein Protein - Chocolate",
			Description: "Slow-digesting casein protein for sustained amino acid release. Perfect for nighttime use to support muscle recovery while you sleep.",
			Price:       2699,
			Stock:       35,
			Category:    "Casein Protein",
			Images: models.StringList{
				"https://images.unsplash.com/photo-1593095948071-474c5cc2989d?w=500",
			},
		},
		{
			Name:        "Mass Gainer - Vanilla",
			Description: "High-calorie mass gainer with 50g protein and 250g carbs per serving. Perfect for hardgainers looking to bulk up and gain weight.",
			Price:       3299,
			Stock:       30,
			Category:    "Mass Gainers",
			Images: models.StringList{
				"https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=500",
			},
		},
		{
			Name:        "Glutamine Powder - Unflavored",
			Description: "Pure L-Glutamine powder to support muscle recovery, immune function, and gut health. 5g per serving, 200 servings per container.",
			Price:       799,
			Stock:       80,
			Category:    "Amino Acids",
			Images: models.StringList{
				"https://images.unsplash.com/photo-1593095948071-474c5cc2989d?w=500",
			},
		},
		{
			Name:        "Multivitamin Complex",
			Description: "Comprehensive multivitamin with 20+ essential vitamins and minerals. Supports overall health, energy levels, and immune function.",
			Price:       599,
			Stock:       100,
			Category:    "Vitamins",
			Images: models.StringList{
				"https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=500",
			},
		},
	}
}
