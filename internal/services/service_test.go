// internal/services/service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/koushiks/supplements-backend/internal/config"
	"github.com/koushiks/supplements-backend/internal/models"
)

// newTestDB opens an isolated in-memory database. The pool is pinned to a
// single connection so every query sees the same :memory: instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Rating{},
		&models.Order{},
		&models.OrderItem{},
	))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "jwt-test-secret",
			AccessTokenTTL: 1,
		},
		Payment: config.PaymentConfig{
			RazorpayKeyID:     "rzp_test_key",
			RazorpayKeySecret: "test_rzp_secret",
			Currency:          "INR",
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Name:  name,
		Email: email,
		Role:  role,
	}
	require.NoError(t, user.SetPassword("Secret@123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        name,
		Description: "A supplement used only in tests, nothing more.",
		Price:       price,
		Stock:       stock,
		Category:    "Test Category",
		Images:      models.StringList{"https://example.com/image.jpg"},
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
