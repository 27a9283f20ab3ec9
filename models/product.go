package models

import (
	"context"
	"errors"
	"time"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductCategories and ProductUnits are the fixed pick lists offered to
// clients. Stored values are not restricted to them.
var ProductCategories = []string{
	"Food & Groceries",
	"Beverages",
	"Personal Care",
	"Household Items",
	"Electronics",
	"Clothing & Textiles",
	"Hardware & Tools",
	"Stationery",
	"Medicine & Healthcare",
	"Other",
}

var ProductUnits = []string{
	"piece", "kg", "gram", "liter", "ml",
	"meter", "packet", "box", "dozen", "bag",
}

type Product struct {
	ID                uuid.UUID       `gorm:"primary_key" json:"id"`
	BusinessId        uuid.UUID       `gorm:"index;not null" json:"business_id"`
	Name              string          `gorm:"size:200;not null" json:"name"`
	Description       string          `gorm:"size:1000" json:"description"`
	Category          string          `gorm:"size:100;not null" json:"category"`
	Subcategory       string          `gorm:"size:100" json:"subcategory"`
	StockQuantity     int             `gorm:"not null" json:"stock_quantity"`
	Unit              string          `gorm:"size:50;not null" json:"unit"`
	Price             decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	ImageUrl          string          `gorm:"size:500" json:"image_url"`
	IsPublic          *bool           `gorm:"not null;default:false" json:"is_public"`
	LowStockThreshold int             `gorm:"not null;default:10" json:"low_stock_threshold"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsLowStock reports whether current stock has fallen to the threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

type NewProduct struct {
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description"`
	Category          string          `json:"category" binding:"required"`
	Subcategory       string          `json:"subcategory"`
	StockQuantity     *int            `json:"stock_quantity" binding:"required"`
	Unit              string          `json:"unit" binding:"required"`
	Price             decimal.Decimal `json:"price"`
	ImageUrl          string          `json:"image_url"`
	IsPublic          *bool           `json:"is_public"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
}

type ProductUpdate struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Category          *string          `json:"category"`
	Subcategory       *string          `json:"subcategory"`
	StockQuantity     *int             `json:"stock_quantity"`
	Unit              *string          `json:"unit"`
	Price             *decimal.Decimal `json:"price"`
	ImageUrl          *string          `json:"image_url"`
	IsPublic          *bool            `json:"is_public"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
}

type ProductFilter struct {
	Category string
	Search   string
	IsPublic *bool
}

// CreateProduct adds an inventory item for the acting business.
func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.NewUnauthenticatedError("business id missing from token")
	}

	if input.StockQuantity == nil || *input.StockQuantity < 0 {
		return nil, utils.NewValidationError("stock quantity must be non-negative")
	}
	if input.Price.IsNegative() {
		return nil, utils.NewValidationError("price must be non-negative")
	}

	product := Product{
		ID:                uuid.New(),
		BusinessId:        uuid.MustParse(businessId),
		Name:              input.Name,
		Description:       input.Description,
		Category:          input.Category,
		Subcategory:       input.Subcategory,
		StockQuantity:     *input.StockQuantity,
		Unit:              input.Unit,
		Price:             input.Price,
		ImageUrl:          input.ImageUrl,
		IsPublic:          utils.NewFalse(),
		LowStockThreshold: 10,
	}
	if input.IsPublic != nil {
		product.IsPublic = input.IsPublic
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to create product", err)
	}

	utils.RemoveRedisList[Product](businessId)
	return &product, nil
}

// ListProducts returns the business's inventory, filtered. The unfiltered
// list is cached per business; filtered queries always hit the database.
func ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	businessId, _ := utils.GetBusinessIdFromContext(ctx)

	unfiltered := filter.Category == "" && filter.Search == "" && filter.IsPublic == nil
	if unfiltered && businessId != "" {
		if cached, err := utils.RetrieveRedisList[Product](businessId); err == nil && cached != nil {
			products := make([]Product, 0, len(cached))
			for _, p := range cached {
				products = append(products, *p)
			}
			return products, nil
		}
	}

	db := config.GetDB()
	query := db.WithContext(ctx).Order("created_at DESC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.IsPublic != nil {
		query = query.Where("is_public = ?", *filter.IsPublic)
	}

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to list products", err)
	}

	if unfiltered && businessId != "" {
		utils.StoreRedisList[Product](&products, businessId)
	}
	return products, nil
}

// GetProduct fetches by id and verifies ownership.
func GetProduct(ctx context.Context, id string) (*Product, error) {
	db := config.GetDB()

	fetchCtx := utils.SetSkipTenantScopeInContext(ctx, true)
	var product Product
	if err := db.WithContext(fetchCtx).Where("id = ?", id).Take(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("product not found")
		}
		return nil, utils.NewUpstreamError("failed to fetch product", err)
	}
	if err := assertOwns(ctx, product.BusinessId); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct applies the provided fields only.
func UpdateProduct(ctx context.Context, id string, input *ProductUpdate) (*Product, error) {
	product, err := GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Subcategory != nil {
		updates["subcategory"] = *input.Subcategory
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, utils.NewValidationError("stock quantity must be non-negative")
		}
		updates["stock_quantity"] = *input.StockQuantity
	}
	if input.Unit != nil {
		updates["unit"] = *input.Unit
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, utils.NewValidationError("price must be non-negative")
		}
		updates["price"] = *input.Price
	}
	if input.ImageUrl != nil {
		updates["image_url"] = *input.ImageUrl
	}
	if input.IsPublic != nil {
		updates["is_public"] = *input.IsPublic
	}
	if input.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *input.LowStockThreshold
	}
	if len(updates) == 0 {
		return nil, utils.NewValidationError("no valid fields to update")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&Product{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to update product", err)
	}

	utils.RemoveRedisList[Product](product.BusinessId.String())
	return GetProduct(ctx, id)
}

func DeleteProduct(ctx context.Context, id string) error {
	product, err := GetProduct(ctx, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&Product{}, "id = ?", product.ID).Error; err != nil {
		return utils.NewUpstreamError("failed to delete product", err)
	}

	utils.RemoveRedisList[Product](product.BusinessId.String())
	return nil
}
