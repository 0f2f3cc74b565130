// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/koushiks/supplements-backend/internal/models"
	"github.com/koushiks/supplements-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	cfg := newTestConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	s.service = NewAuthService(s.db, cfg)
}

func (s *AuthServiceTestSuite) TestRegisterIssuesCustomerToken() {
	resp, err := s.service.Register(&RegisterRequest{
		Name:     "New Customer",
		Email:    "customer@example.com",
		Password: "Secret@123",
	})
	s.Require().NoError(err)

	s.NotEmpty(resp.Token)
	s.Equal("New Customer", resp.User.Name)
	s.Equal(models.RoleCustomer, resp.User.Role)

	claims, err := utils.ValidateJWT(resp.Token)
	s.Require().NoError(err)
	s.Equal("customer", claims.Role)
	s.Equal(resp.User.ID, claims.UserID)
}

func (s *AuthServiceTestSuite) TestRegisterNeverStoresPlaintextPassword() {
	_, err := s.service.Register(&RegisterRequest{
		Name:     "New Customer",
		Email:    "customer@example.com",
		Password: "Secret@123",
	})
	s.Require().NoError(err)

	var user models.User
	s.Require().NoError(s.db.Where("email = ?", "customer@example.com").First(&user).Error)
	s.NotEqual("Secret@123", user.PasswordHash)
	s.NoError(user.CheckPassword("Secret@123"))
}

func (s *AuthServiceTestSuite) TestRegisterRejectsDuplicateEmail() {
	req := &RegisterRequest{
		Name:     "New Customer",
		Email:    "customer@example.com",
		Password: "Secret@123",
	}
	_, err := s.service.Register(req)
	s.Require().NoError(err)

	_, err = s.service.Register(req)
	s.Require().ErrorIs(err, ErrEmailTaken)
}

func (s *AuthServiceTestSuite) TestRegisterRejectsShortPassword() {
	_, err := s.service.Register(&RegisterRequest{
		Name:     "New Customer",
		Email:    "customer@example.com",
		Password: "short",
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "validation failed")
}

func (s *AuthServiceTestSuite) TestLoginSucceedsWithCorrectPassword() {
	createTestUser(s.T(), s.db, "Existing", "existing@example.com", models.RoleCustomer)

	resp, err := s.service.Login(&LoginRequest{
		Email:    "existing@example.com",
		Password: "Secret@123",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
}

func (s *AuthServiceTestSuite) TestLoginFailuresAreIndistinguishable() {
	createTestUser(s.T(), s.db, "Existing", "existing@example.com", models.RoleCustomer)

	_, wrongPassword := s.service.Login(&LoginRequest{
		Email:    "existing@example.com",
		Password: "WrongPassword",
	})
	_, unknownEmail := s.service.Login(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "Secret@123",
	})

	s.Require().ErrorIs(wrongPassword, ErrInvalidCredentials)
	s.Require().ErrorIs(unknownEmail, ErrInvalidCredentials)
	s.Equal(wrongPassword.Error(), unknownEmail.Error())
}

func (s *AuthServiceTestSuite) TestGetUserByID() {
	user := createTestUser(s.T(), s.db, "Existing", "existing@example.com", models.RoleCustomer)

	found, err := s.service.GetUserByID(user.ID)
	s.Require().NoError(err)
	s.Equal(user.Email, found.Email)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
