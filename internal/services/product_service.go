// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/koushiks/supplements-backend/internal/models"
	"github.com/koushiks/supplements-backend/internal/utils"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       float64  `json:"price" validate:"required,gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// UpdateProductRequest carries named optional fields; only fields that are
// present are validated and merged.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Images      []string `json:"images,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Keyword  string
	Category string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string // "", "price" or "rating"
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// filteredQuery applies the catalog filters shared by the listing and the
// distinct-category lookup.
func (s *ProductService) filteredQuery(params ProductSearchParams) *gorm.DB {
	query := s.db.Model(&models.Product{})

	if params.Keyword != "" {
		searchTerm := "%" + strings.ToLower(params.Keyword) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}

	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}

	return query
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, []string, error) {
	query := s.filteredQuery(params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to count products: %w", err)
	}

	switch params.SortBy {
	case "price":
		query = query.Order("price ASC")
	case "rating":
		query = query.Order("avg_rating DESC")
	default:
		query = query.Order("created_at DESC")
	}

	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	var categories []string
	if err := s.filteredQuery(params).Distinct().Pluck("category", &categories).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	nonEmpty := categories[:0]
	for _, c := range categories {
		if c != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}
	sort.Strings(nonEmpty)

	return products, total, nonEmpty, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Ratings").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(adminID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Brand:       req.Brand,
		Images:      models.StringList(req.Images),
		CreatedBy:   &adminID,
	}
	if product.Brand == "" {
		product.Brand = "Koushiks Supplements"
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Images != nil {
		updates["images"] = models.StringList(req.Images)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	s.db.Preload("Ratings").First(&product, id)

	return &product, nil
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// SubmitReview creates or replaces the caller's rating for a product and
// recomputes the aggregates. A resubmission never adds a second rating.
func (s *ProductService) SubmitReview(productID, userID uuid.UUID, req *ReviewRequest) (*models.Product, bool, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, false, fmt.Errorf("validation failed: %w", err)
	}

	created := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		var rating models.Rating
		err := tx.Where("product_id = ? AND user_id = ?", productID, userID).First(&rating).Error
		switch {
		case err == nil:
			rating.Score = req.Rating
			rating.Comment = req.Comment
			if err := tx.Save(&rating).Error; err != nil {
				return fmt.Errorf("failed to update rating: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			rating = models.Rating{
				ProductID: productID,
				UserID:    userID,
				Score:     req.Rating,
				Comment:   req.Comment,
			}
			if err := tx.Create(&rating).Error; err != nil {
				return fmt.Errorf("failed to create rating: %w", err)
			}
		default:
			return fmt.Errorf("database error: %w", err)
		}

		return recalculateRatings(tx, productID)
	})
	if err != nil {
		return nil, false, err
	}

	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, false, err
	}
	return product, created, nil
}

// recalculateRatings derives avg_rating and num_reviews from the ratings
// table; zero ratings resets both to 0.
func recalculateRatings(tx *gorm.DB, productID uuid.UUID) error {
	var stats struct {
		Count int64
		Avg   float64
	}

	err := tx.Model(&models.Rating{}).
		Where("product_id = ?", productID).
		Select("COUNT(*) AS count, COALESCE(AVG(score), 0) AS avg").
		Scan(&stats).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	return tx.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumns(map[string]interface{}{
			"avg_rating":  stats.Avg,
			"num_reviews": stats.Count,
		}).Error
}

// AppendImages attaches uploaded image URLs to a product.
func (s *ProductService) AppendImages(id uuid.UUID, urls []string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product.Images = append(product.Images, urls...)
	if err := s.db.Model(&product).UpdateColumn("images", product.Images).Error; err != nil {
		return nil, fmt.Errorf("failed to update images: %w", err)
	}

	return &product, nil
}
