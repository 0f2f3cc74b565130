// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Price       float64    `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int        `json:"stock" gorm:"not null;default:0"`
	Category    string     `json:"category" gorm:"size:100;index"`
	Brand       string     `json:"brand" gorm:"size:100;default:'Koushiks Supplements'"`
	Images      StringList `json:"images" gorm:"type:jsonb"`
	AvgRating   float64    `json:"avgRating" gorm:"type:decimal(3,2);default:0"`
	NumReviews  int64      `json:"numReviews" gorm:"default:0"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty" gorm:"type:uuid"`

	// Relationships
	Ratings []Rating `json:"ratings,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// Rating is one review score; a user keeps at most one per product.
type Rating struct {
	BaseModel
	ProductID uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_product_user"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_product_user"`
	Score     int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
}

// FirstImage returns the image used for order line-item snapshots.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
