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

// Offer is a promotional banner a business advertises to its customers.
type Offer struct {
	ID          uuid.UUID       `gorm:"primary_key" json:"id"`
	BusinessId  uuid.UUID       `gorm:"index;not null" json:"business_id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"size:1000" json:"description"`
	Discount    decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidUntil  time.Time       `json:"valid_until"`
	ImageUrl    string          `gorm:"size:500" json:"image_url"`
	IsActive    *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewOffer struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Discount    decimal.Decimal `json:"discount"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidUntil  time.Time       `json:"valid_until" binding:"required"`
	ImageUrl    string          `json:"image_url"`
}

type OfferUpdate struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Discount    *decimal.Decimal `json:"discount"`
	ValidFrom   *time.Time       `json:"valid_from"`
	ValidUntil  *time.Time       `json:"valid_until"`
	ImageUrl    *string          `json:"image_url"`
	IsActive    *bool            `json:"is_active"`
}

func CreateOffer(ctx context.Context, input *NewOffer) (*Offer, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.NewUnauthenticatedError("business id missing from token")
	}
	if input.Title == "" {
		return nil, utils.NewValidationError("title is required")
	}
	if input.ValidUntil.IsZero() {
		return nil, utils.NewValidationError("valid_until is required")
	}

	validFrom := input.ValidFrom
	if validFrom.IsZero() {
		validFrom = time.Now().UTC()
	}

	offer := Offer{
		ID:          uuid.New(),
		BusinessId:  uuid.MustParse(businessId),
		Title:       input.Title,
		Description: input.Description,
		Discount:    input.Discount,
		ValidFrom:   validFrom,
		ValidUntil:  input.ValidUntil,
		ImageUrl:    input.ImageUrl,
		IsActive:    utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&offer).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to create offer", err)
	}
	return &offer, nil
}

// ListOffers returns the business's offers newest first. When activeOnly is
// set, expired and disabled offers are filtered out.
func ListOffers(ctx context.Context, activeOnly bool) ([]Offer, error) {
	db := config.GetDB()

	query := db.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ? AND valid_until > ?", true, time.Now().UTC())
	}

	var offers []Offer
	if err := query.Find(&offers).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to list offers", err)
	}
	return offers, nil
}

func getOffer(ctx context.Context, id string) (*Offer, error) {
	db := config.GetDB()

	fetchCtx := utils.SetSkipTenantScopeInContext(ctx, true)
	var offer Offer
	if err := db.WithContext(fetchCtx).Where("id = ?", id).Take(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("offer not found")
		}
		return nil, utils.NewUpstreamError("failed to fetch offer", err)
	}
	if err := assertOwns(ctx, offer.BusinessId); err != nil {
		return nil, err
	}
	return &offer, nil
}

func UpdateOffer(ctx context.Context, id string, input *OfferUpdate) (*Offer, error) {
	offer, err := getOffer(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Discount != nil {
		updates["discount"] = *input.Discount
	}
	if input.ValidFrom != nil {
		updates["valid_from"] = *input.ValidFrom
	}
	if input.ValidUntil != nil {
		updates["valid_until"] = *input.ValidUntil
	}
	if input.ImageUrl != nil {
		updates["image_url"] = *input.ImageUrl
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, utils.NewValidationError("no valid fields to update")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&Offer{}).Where("id = ?", offer.ID).Updates(updates).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to update offer", err)
	}
	return getOffer(ctx, id)
}

func DeleteOffer(ctx context.Context, id string) error {
	offer, err := getOffer(ctx, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&Offer{}, "id = ?", offer.ID).Error; err != nil {
		return utils.NewUpstreamError("failed to delete offer", err)
	}
	return nil
}
