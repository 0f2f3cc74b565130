// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/koushiks/supplements-backend/internal/models"
	"github.com/koushiks/supplements-backend/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProductService
	admin   *models.User
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewProductService(s.db)
	s.admin = createTestUser(s.T(), s.db, "Admin User", "admin@example.com", models.RoleAdmin)
}

func (s *ProductServiceTestSuite) seedCatalog() {
	products := []models.Product{
		{Name: "Whey Protein Isolate", Description: "Premium whey protein isolate for recovery.", Price: 2499, Stock: 50, Category: "Whey Protein"},
		{Name: "Creatine Monohydrate", Description: "Pure creatine monohydrate for strength.", Price: 899, Stock: 75, Category: "Creatine"},
		{Name: "BCAA Powder", Description: "Branched-chain amino acids for endurance.", Price: 1299, Stock: 60, Category: "Amino Acids"},
		{Name: "Glutamine Powder", Description: "L-Glutamine for recovery and gut health.", Price: 799, Stock: 80, Category: "Amino Acids"},
	}
	for i := range products {
		s.Require().NoError(s.db.Create(&products[i]).Error)
	}
}

func defaultSearchParams() ProductSearchParams {
	return ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 12},
	}
}

func (s *ProductServiceTestSuite) TestSearchProductsReturnsAll() {
	s.seedCatalog()

	products, total, categories, err := s.service.SearchProducts(defaultSearchParams())
	s.Require().NoError(err)

	s.EqualValues(4, total)
	s.Len(products, 4)
	s.Equal([]string{"Amino Acids", "Creatine", "Whey Protein"}, categories)
}

func (s *ProductServiceTestSuite) TestSearchProductsKeywordMatchesNameAndDescription() {
	s.seedCatalog()

	params := defaultSearchParams()
	params.Keyword = "recovery"

	products, total, _, err := s.service.SearchProducts(params)
	s.Require().NoError(err)

	s.EqualValues(2, total)
	names := []string{products[0].Name, products[1].Name}
	s.ElementsMatch([]string{"Whey Protein Isolate", "Glutamine Powder"}, names)
}

func (s *ProductServiceTestSuite) TestSearchProductsFiltersByCategoryAndPrice() {
	s.seedCatalog()

	params := defaultSearchParams()
	params.Category = "Amino Acids"
	min := 1000.0
	params.MinPrice = &min

	products, total, categories, err := s.service.SearchProducts(params)
	s.Require().NoError(err)

	s.EqualValues(1, total)
	s.Require().Len(products, 1)
	s.Equal("BCAA Powder", products[0].Name)
	s.Equal([]string{"Amino Acids"}, categories)
}

func (s *ProductServiceTestSuite) TestSearchProductsSortsByPrice() {
	s.seedCatalog()

	params := defaultSearchParams()
	params.SortBy = "price"

	products, _, _, err := s.service.SearchProducts(params)
	s.Require().NoError(err)

	s.Require().Len(products, 4)
	for i := 1; i < len(products); i++ {
		s.LessOrEqual(products[i-1].Price, products[i].Price)
	}
}

func (s *ProductServiceTestSuite) TestSearchProductsPaginates() {
	s.seedCatalog()

	params := defaultSearchParams()
	params.Limit = 3

	products, total, _, err := s.service.SearchProducts(params)
	s.Require().NoError(err)
	s.EqualValues(4, total)
	s.Len(products, 3)

	params.Page = 2
	products, _, _, err = s.service.SearchProducts(params)
	s.Require().NoError(err)
	s.Len(products, 1)
}

func (s *ProductServiceTestSuite) TestCreateProductDefaultsBrand() {
	product, err := s.service.CreateProduct(s.admin.ID, &CreateProductRequest{
		Name:        "Mass Gainer",
		Description: "High-calorie gainer with 50g protein per serving.",
		Price:       3299,
		Stock:       30,
		Category:    "Mass Gainers",
	})
	s.Require().NoError(err)

	s.Equal("Koushiks Supplements", product.Brand)
	s.Require().NotNil(product.CreatedBy)
	s.Equal(s.admin.ID, *product.CreatedBy)
}

func (s *ProductServiceTestSuite) TestCreateProductRejectsShortDescription() {
	_, err := s.service.CreateProduct(s.admin.ID, &CreateProductRequest{
		Name:        "Mass Gainer",
		Description: "too short",
		Price:       3299,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "validation failed")
}

func (s *ProductServiceTestSuite) TestUpdateProductMergesOnlyProvidedFields() {
	product := createTestProduct(s.T(), s.db, "Casein Protein", 2699, 35)

	newPrice := 2599.0
	updated, err := s.service.UpdateProduct(product.ID, &UpdateProductRequest{Price: &newPrice})
	s.Require().NoError(err)

	s.InDelta(2599.0, updated.Price, 0.001)
	// Untouched fields survive.
	s.Equal("Casein Protein", updated.Name)
	s.Equal(35, updated.Stock)
	s.Equal("Test Category", updated.Category)
}

func (s *ProductServiceTestSuite) TestUpdateProductAllowsZeroValues() {
	product := createTestProduct(s.T(), s.db, "Casein Protein", 2699, 35)

	zero := 0
	updated, err := s.service.UpdateProduct(product.ID, &UpdateProductRequest{Stock: &zero})
	s.Require().NoError(err)

	s.Equal(0, updated.Stock)
}

func (s *ProductServiceTestSuite) TestUpdateProductNotFound() {
	name := "Anything"
	_, err := s.service.UpdateProduct(uuid.New(), &UpdateProductRequest{Name: &name})
	s.Require().ErrorIs(err, ErrProductNotFound)
}

func (s *ProductServiceTestSuite) TestDeleteProductHidesFromCatalog() {
	product := createTestProduct(s.T(), s.db, "Discontinued", 999, 10)

	s.Require().NoError(s.service.DeleteProduct(product.ID))

	_, err := s.service.GetProduct(product.ID)
	s.Require().ErrorIs(err, ErrProductNotFound)

	_, total, _, err := s.service.SearchProducts(defaultSearchParams())
	s.Require().NoError(err)
	s.EqualValues(0, total)
}

func (s *ProductServiceTestSuite) TestSubmitReviewCreatesAndAggregates() {
	product := createTestProduct(s.T(), s.db, "Whey Protein", 2499, 50)
	reviewer := createTestUser(s.T(), s.db, "Reviewer", "reviewer@example.com", models.RoleCustomer)

	updated, created, err := s.service.SubmitReview(product.ID, reviewer.ID, &ReviewRequest{Rating: 4, Comment: "Mixes well."})
	s.Require().NoError(err)

	s.True(created)
	s.EqualValues(1, updated.NumReviews)
	s.InDelta(4.0, updated.AvgRating, 0.001)
}

func (s *ProductServiceTestSuite) TestSubmitReviewResubmissionReplaces() {
	product := createTestProduct(s.T(), s.db, "Whey Protein", 2499, 50)
	reviewer := createTestUser(s.T(), s.db, "Reviewer", "reviewer@example.com", models.RoleCustomer)

	_, _, err := s.service.SubmitReview(product.ID, reviewer.ID, &ReviewRequest{Rating: 2, Comment: "Meh."})
	s.Require().NoError(err)

	updated, created, err := s.service.SubmitReview(product.ID, reviewer.ID, &ReviewRequest{Rating: 5, Comment: "Changed my mind."})
	s.Require().NoError(err)

	s.False(created)
	s.EqualValues(1, updated.NumReviews)
	s.InDelta(5.0, updated.AvgRating, 0.001)

	var ratingCount int64
	s.db.Model(&models.Rating{}).Where("product_id = ?", product.ID).Count(&ratingCount)
	s.EqualValues(1, ratingCount)
}

func (s *ProductServiceTestSuite) TestSubmitReviewAveragesAcrossUsers() {
	product := createTestProduct(s.T(), s.db, "Whey Protein", 2499, 50)
	first := createTestUser(s.T(), s.db, "First", "first@example.com", models.RoleCustomer)
	second := createTestUser(s.T(), s.db, "Second", "second@example.com", models.RoleCustomer)

	_, _, err := s.service.SubmitReview(product.ID, first.ID, &ReviewRequest{Rating: 5})
	s.Require().NoError(err)

	updated, _, err := s.service.SubmitReview(product.ID, second.ID, &ReviewRequest{Rating: 4})
	s.Require().NoError(err)

	s.EqualValues(2, updated.NumReviews)
	s.InDelta(4.5, updated.AvgRating, 0.001)
}

func (s *ProductServiceTestSuite) TestSubmitReviewRejectsOutOfRangeScore() {
	product := createTestProduct(s.T(), s.db, "Whey Protein", 2499, 50)
	reviewer := createTestUser(s.T(), s.db, "Reviewer", "reviewer@example.com", models.RoleCustomer)

	_, _, err := s.service.SubmitReview(product.ID, reviewer.ID, &ReviewRequest{Rating: 6})
	s.Require().Error(err)
	s.Contains(err.Error(), "validation failed")
}

func (s *ProductServiceTestSuite) TestAppendImages() {
	product := createTestProduct(s.T(), s.db, "Whey Protein", 2499, 50)

	updated, err := s.service.AppendImages(product.ID, []string{"https://example.com/extra.jpg"})
	s.Require().NoError(err)

	s.Equal(models.StringList{
		"https://example.com/image.jpg",
		"https://example.com/extra.jpg",
	}, updated.Images)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
