// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"

	"github.com/koushiks/supplements-backend/internal/config"
	"github.com/koushiks/supplements-backend/internal/models"
	"github.com/koushiks/supplements-backend/internal/utils"
)

// totalTolerance absorbs client-side rounding when reconciling the submitted
// total against the catalog-derived one.
const totalTolerance = 1.0

var (
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrTotalMismatch    = errors.New("total mismatch detected, please refresh and try again")
)

// OutOfStockError names the product that cannot cover the requested quantity.
type OutOfStockError struct {
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is out of stock", e.ProductName)
}

// PaymentGateway issues pending payment orders with the external processor.
type PaymentGateway interface {
	CreateOrder(amountMinorUnits int64, currency, receipt string, notes map[string]interface{}) (string, error)
}

// RazorpayGateway is the production PaymentGateway.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(cfg *config.Config) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(cfg.Payment.RazorpayKeyID, cfg.Payment.RazorpayKeySecret),
	}
}

func (g *RazorpayGateway) CreateOrder(amountMinorUnits int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinorUnits,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok {
		return "", errors.New("razorpay order response missing id")
	}
	return orderID, nil
}

type PaymentService struct {
	db      *gorm.DB
	cfg     *config.Config
	gateway PaymentGateway
}

type CreatePaymentOrderRequest struct {
	Amount   float64                `json:"amount" validate:"required,gt=0"`
	Currency string                 `json:"currency,omitempty"`
	Receipt  string                 `json:"receipt,omitempty"`
	Notes    map[string]interface{} `json:"notes,omitempty"`
}

type PaymentOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

type OrderItemInput struct {
	Product uuid.UUID `json:"product" validate:"required"`
	Qty     int       `json:"qty" validate:"required,min=1"`
}

type ShippingAddressInput struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string                `json:"razorpayOrderId" validate:"required"`
	RazorpayPaymentID string                `json:"razorpayPaymentId" validate:"required"`
	RazorpaySignature string                `json:"razorpaySignature" validate:"required"`
	OrderItems        []OrderItemInput      `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress   *ShippingAddressInput `json:"shippingAddress" validate:"required"`
	TaxPrice          float64               `json:"taxPrice" validate:"gte=0"`
	ShippingPrice     float64               `json:"shippingPrice" validate:"gte=0"`
	TotalPrice        float64               `json:"totalPrice" validate:"required,gt=0"`
}

func NewPaymentService(db *gorm.DB, cfg *config.Config, gateway PaymentGateway) *PaymentService {
	return &PaymentService{
		db:      db,
		cfg:     cfg,
		gateway: gateway,
	}
}

// CreatePaymentOrder requests a pending order from the gateway for the
// amount in minor units. No local state is written; the order only comes
// into existence after verification.
func (s *PaymentService) CreatePaymentOrder(req *CreatePaymentOrderRequest) (*PaymentOrderResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.cfg.Payment.Currency
	}

	receipt := req.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	}

	amountMinorUnits := int64(math.Round(req.Amount * 100))

	orderID, err := s.gateway.CreateOrder(amountMinorUnits, currency, receipt, req.Notes)
	if err != nil {
		return nil, err
	}

	return &PaymentOrderResponse{
		OrderID:  orderID,
		Amount:   amountMinorUnits,
		Currency: currency,
		Key:      s.cfg.Payment.RazorpayKeyID,
	}, nil
}

// VerifyPayment turns a claimed gateway confirmation into a durable order.
// The validation sequence rejects hard, in this exact precedence: signature,
// per-item existence and stock, price reconciliation. All stock deductions
// and the order insert run in one transaction, so a failure at any step
// leaves the catalog untouched.
func (s *PaymentService) VerifyPayment(userID uuid.UUID, req *VerifyPaymentRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !utils.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.cfg.Payment.RazorpayKeySecret) {
		return nil, ErrInvalidSignature
	}

	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return fmt.Errorf("buyer not found: %w", err)
		}

		// Snapshot line items and validate stock against the live catalog.
		// Prices always come from the catalog, never from the client.
		var itemsPrice float64
		orderItems := make([]models.OrderItem, 0, len(req.OrderItems))
		for _, item := range req.OrderItems {
			var product models.Product
			if err := tx.First(&product, item.Product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return fmt.Errorf("database error: %w", err)
			}

			if product.Stock < item.Qty {
				return &OutOfStockError{ProductName: product.Name}
			}

			itemsPrice += product.Price * float64(item.Qty)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Qty:       item.Qty,
				Price:     product.Price,
				Image:     product.FirstImage(),
			})
		}

		computedTotal := round2(itemsPrice + req.TaxPrice + req.ShippingPrice)
		providedTotal := round2(req.TotalPrice)
		if math.Abs(computedTotal-providedTotal) > totalTolerance {
			return ErrTotalMismatch
		}

		// Conditional decrement: the WHERE clause re-checks stock so two
		// concurrent checkouts cannot both take the last unit.
		for i, item := range req.OrderItems {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.Product, item.Qty).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Qty))
			if res.Error != nil {
				return fmt.Errorf("failed to update stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return &OutOfStockError{ProductName: orderItems[i].Name}
			}
		}

		now := time.Now()
		order = &models.Order{
			UserID:     userID,
			OrderItems: orderItems,
			ShippingAddress: models.ShippingAddress{
				Address:    req.ShippingAddress.Address,
				City:       req.ShippingAddress.City,
				PostalCode: req.ShippingAddress.PostalCode,
				Country:    req.ShippingAddress.Country,
			},
			PaymentMethod: models.PaymentMethodRazorpay,
			PaymentResult: models.PaymentResult{
				PaymentID:  req.RazorpayPaymentID,
				Status:     string(models.PaymentStatusPaid),
				UpdateTime: now.UTC().Format(time.RFC3339),
				Email:      user.Email,
			},
			ItemsPrice:    round2(itemsPrice),
			TaxPrice:      req.TaxPrice,
			ShippingPrice: req.ShippingPrice,
			TotalPrice:    computedTotal,
			IsPaid:        true,
			PaidAt:        &now,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
