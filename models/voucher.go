package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Voucher is a discount code a business hands out to customers.
type Voucher struct {
	ID          uuid.UUID       `gorm:"primary_key" json:"id"`
	BusinessId  uuid.UUID       `gorm:"index;not null;uniqueIndex:idx_voucher_code" json:"business_id"`
	Code        string          `gorm:"size:50;not null;uniqueIndex:idx_voucher_code" json:"code"`
	Discount    decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount"`
	MinAmount   decimal.Decimal `gorm:"type:decimal(14,2)" json:"min_amount"`
	MaxDiscount decimal.Decimal `gorm:"type:decimal(14,2)" json:"max_discount"`
	ValidUntil  time.Time       `json:"valid_until"`
	Description string          `gorm:"size:500" json:"description"`
	IsActive    *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewVoucher struct {
	Code        string          `json:"code" binding:"required"`
	Discount    decimal.Decimal `json:"discount" binding:"required"`
	MinAmount   decimal.Decimal `json:"min_amount"`
	MaxDiscount decimal.Decimal `json:"max_discount"`
	ValidUntil  time.Time       `json:"valid_until" binding:"required"`
	Description string          `json:"description"`
}

// IsValidNow reports whether the voucher can currently be applied.
func (v *Voucher) IsValidNow(now time.Time) bool {
	if v.IsActive == nil || !*v.IsActive {
		return false
	}
	return now.Before(v.ValidUntil)
}

// CreateVoucher registers a code, uppercased, unique per business.
func CreateVoucher(ctx context.Context, input *NewVoucher) (*Voucher, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.NewUnauthenticatedError("business id missing from token")
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, utils.NewValidationError("voucher code is required")
	}
	if !input.Discount.IsPositive() || input.Discount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, utils.NewValidationError("discount must be between 0 and 100 percent")
	}
	if err := utils.ValidateUnique[Voucher](ctx, businessId, "code", code, ""); err != nil {
		if utils.KindOf(err) == utils.KindConflict {
			return nil, utils.NewConflictError("voucher code already exists")
		}
		return nil, err
	}

	voucher := Voucher{
		ID:          uuid.New(),
		BusinessId:  uuid.MustParse(businessId),
		Code:        code,
		Discount:    input.Discount,
		MinAmount:   input.MinAmount,
		MaxDiscount: input.MaxDiscount,
		ValidUntil:  input.ValidUntil,
		Description: input.Description,
		IsActive:    utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&voucher).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to create voucher", err)
	}
	return &voucher, nil
}

func ListVouchers(ctx context.Context) ([]Voucher, error) {
	db := config.GetDB()

	var vouchers []Voucher
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&vouchers).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to list vouchers", err)
	}
	return vouchers, nil
}

func getVoucher(ctx context.Context, id string) (*Voucher, error) {
	db := config.GetDB()

	fetchCtx := utils.SetSkipTenantScopeInContext(ctx, true)
	var voucher Voucher
	if err := db.WithContext(fetchCtx).Where("id = ?", id).Take(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("voucher not found")
		}
		return nil, utils.NewUpstreamError("failed to fetch voucher", err)
	}
	if err := assertOwns(ctx, voucher.BusinessId); err != nil {
		return nil, err
	}
	return &voucher, nil
}

type VoucherUpdate struct {
	Discount    *decimal.Decimal `json:"discount"`
	MinAmount   *decimal.Decimal `json:"min_amount"`
	MaxDiscount *decimal.Decimal `json:"max_discount"`
	ValidUntil  *time.Time       `json:"valid_until"`
	Description *string          `json:"description"`
	IsActive    *bool            `json:"is_active"`
}

// UpdateVoucher applies the provided fields. The code itself is immutable;
// issued codes must keep meaning the same thing.
func UpdateVoucher(ctx context.Context, id string, input *VoucherUpdate) (*Voucher, error) {
	voucher, err := getVoucher(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Discount != nil {
		if !input.Discount.IsPositive() || input.Discount.GreaterThan(decimal.NewFromInt(100)) {
			return nil, utils.NewValidationError("discount must be between 0 and 100 percent")
		}
		updates["discount"] = *input.Discount
	}
	if input.MinAmount != nil {
		updates["min_amount"] = *input.MinAmount
	}
	if input.MaxDiscount != nil {
		updates["max_discount"] = *input.MaxDiscount
	}
	if input.ValidUntil != nil {
		updates["valid_until"] = *input.ValidUntil
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, utils.NewValidationError("no valid fields to update")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&Voucher{}).Where("id = ?", voucher.ID).Updates(updates).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to update voucher", err)
	}
	return getVoucher(ctx, id)
}

func DeleteVoucher(ctx context.Context, id string) error {
	voucher, err := getVoucher(ctx, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&Voucher{}, "id = ?", voucher.ID).Error; err != nil {
		return utils.NewUpstreamError("failed to delete voucher", err)
	}
	return nil
}
