// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID          uuid.UUID       `json:"userId" gorm:"type:uuid;not null;index"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"size:50;default:'Razorpay'"`
	PaymentResult   PaymentResult   `json:"paymentResult" gorm:"embedded;embeddedPrefix:payment_"`
	ItemsPrice      float64         `json:"itemsPrice" gorm:"type:decimal(10,2);not null"`
	TaxPrice        float64         `json:"taxPrice" gorm:"type:decimal(10,2);default:0"`
	ShippingPrice   float64         `json:"shippingPrice" gorm:"type:decimal(10,2);default:0"`
	TotalPrice      float64         `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	IsPaid          bool            `json:"isPaid" gorm:"default:false"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered" gorm:"default:false"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// OrderItem snapshots the product at purchase time; it is never a live
// reference to current catalog state.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product" gorm:"type:uuid;not null"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Qty       int       `json:"qty" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Image     string    `json:"image" gorm:"size:512"`
}

type ShippingAddress struct {
	Address    string `json:"address" gorm:"size:255;not null"`
	City       string `json:"city" gorm:"size:100;not null"`
	PostalCode string `json:"postalCode" gorm:"size:20;not null"`
	Country    string `json:"country" gorm:"size:100;not null"`
}

// PaymentResult records the gateway confirmation the order was created from.
type PaymentResult struct {
	PaymentID  string `json:"id" gorm:"size:100"`
	Status     string `json:"status" gorm:"size:20"`
	UpdateTime string `json:"update_time" gorm:"size:40"`
	Email      string `json:"email_address" gorm:"size:255"`
}
