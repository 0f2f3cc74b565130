// internal/services/order_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/koushiks/supplements-backend/internal/models"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *OrderService
	owner    *models.User
	stranger *models.User
	admin    *models.User
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewOrderService(s.db)
	s.owner = createTestUser(s.T(), s.db, "Owner", "owner@example.com", models.RoleCustomer)
	s.stranger = createTestUser(s.T(), s.db, "Stranger", "stranger@example.com", models.RoleCustomer)
	s.admin = createTestUser(s.T(), s.db, "Admin User", "admin@example.com", models.RoleAdmin)
}

func (s *OrderServiceTestSuite) createOrder(userID uuid.UUID) *models.Order {
	now := time.Now()
	order := &models.Order{
		UserID: userID,
		OrderItems: []models.OrderItem{
			{ProductID: uuid.New(), Name: "Whey Protein", Qty: 1, Price: 2499},
		},
		ShippingAddress: models.ShippingAddress{
			Address:    "12 MG Road",
			City:       "Bengaluru",
			PostalCode: "560001",
			Country:    "India",
		},
		PaymentMethod: models.PaymentMethodRazorpay,
		ItemsPrice:    2499,
		TaxPrice:      299.88,
		TotalPrice:    2798.88,
		IsPaid:        true,
		PaidAt:        &now,
	}
	s.Require().NoError(s.db.Create(order).Error)
	return order
}

func (s *OrderServiceTestSuite) TestListForUserReturnsOnlyOwnOrders() {
	s.createOrder(s.owner.ID)
	s.createOrder(s.owner.ID)
	s.createOrder(s.stranger.ID)

	orders, err := s.service.ListForUser(s.owner.ID)
	s.Require().NoError(err)

	s.Len(orders, 2)
	for _, order := range orders {
		s.Equal(s.owner.ID, order.UserID)
	}
}

func (s *OrderServiceTestSuite) TestGetOrderAsOwner() {
	created := s.createOrder(s.owner.ID)

	order, err := s.service.GetOrder(created.ID, s.owner.ID, models.RoleCustomer)
	s.Require().NoError(err)

	s.Equal(created.ID, order.ID)
	s.Require().Len(order.OrderItems, 1)
	s.Equal("Whey Protein", order.OrderItems[0].Name)
}

func (s *OrderServiceTestSuite) TestGetOrderAsAdmin() {
	created := s.createOrder(s.owner.ID)

	order, err := s.service.GetOrder(created.ID, s.admin.ID, models.RoleAdmin)
	s.Require().NoError(err)
	s.Equal(created.ID, order.ID)
}

func (s *OrderServiceTestSuite) TestGetOrderForbiddenForStranger() {
	created := s.createOrder(s.owner.ID)

	_, err := s.service.GetOrder(created.ID, s.stranger.ID, models.RoleCustomer)
	s.Require().ErrorIs(err, ErrOrderForbidden)
}

func (s *OrderServiceTestSuite) TestGetOrderNotFound() {
	_, err := s.service.GetOrder(uuid.New(), s.owner.ID, models.RoleCustomer)
	s.Require().ErrorIs(err, ErrOrderNotFound)
}

func (s *OrderServiceTestSuite) TestListAllSeesEveryOrder() {
	s.createOrder(s.owner.ID)
	s.createOrder(s.stranger.ID)

	orders, err := s.service.ListAll()
	s.Require().NoError(err)
	s.Len(orders, 2)
}

func (s *OrderServiceTestSuite) TestMarkDelivered() {
	created := s.createOrder(s.owner.ID)

	order, err := s.service.MarkDelivered(created.ID)
	s.Require().NoError(err)

	s.True(order.IsDelivered)
	s.Require().NotNil(order.DeliveredAt)
}

func (s *OrderServiceTestSuite) TestMarkDeliveredIsIdempotent() {
	created := s.createOrder(s.owner.ID)

	first, err := s.service.MarkDelivered(created.ID)
	s.Require().NoError(err)

	second, err := s.service.MarkDelivered(created.ID)
	s.Require().NoError(err)

	s.True(second.IsDelivered)
	s.Require().NotNil(second.DeliveredAt)
	s.Equal(first.DeliveredAt.Unix(), second.DeliveredAt.Unix())
}

func (s *OrderServiceTestSuite) TestMarkDeliveredNotFound() {
	_, err := s.service.MarkDelivered(uuid.New())
	s.Require().ErrorIs(err, ErrOrderNotFound)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
