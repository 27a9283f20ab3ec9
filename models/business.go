package models

import (
	"context"
	"errors"
	"time"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Business struct {
	ID              uuid.UUID `gorm:"primary_key" json:"id"`
	UserId          uuid.UUID `gorm:"index;not null" json:"user_id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Phone           string    `gorm:"size:20;not null" json:"phone_number"`
	AccessPin       string    `gorm:"size:10;not null" json:"access_pin"`
	Description     string    `gorm:"type:text" json:"description"`
	Address         string    `gorm:"type:text" json:"address"`
	GstNumber       string    `gorm:"size:30" json:"gst_number"`
	ProfilePhotoUrl string    `gorm:"size:500" json:"profile_photo_url"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	IsActive        *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewRegistration struct {
	BusinessName string `json:"business_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

type Credentials struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginInfo is the auth payload returned by register and login.
type LoginInfo struct {
	Token        string    `json:"token"`
	UserId       uuid.UUID `json:"user_id"`
	Phone        string    `json:"phone"`
	UserType     string    `json:"user_type"`
	BusinessId   uuid.UUID `json:"business_id"`
	BusinessName string    `json:"business_name"`
	BusinessPin  string    `json:"business_pin"`
}

type ProfileUpdate struct {
	Name            *string  `json:"name"`
	Phone           *string  `json:"phone_number"`
	Description     *string  `json:"description"`
	Address         *string  `json:"address"`
	GstNumber       *string  `json:"gst_number"`
	ProfilePhotoUrl *string  `json:"profile_photo_url"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

type BusinessProfile struct {
	Business          Business `json:"business"`
	TotalCustomers    int64    `json:"total_customers"`
	TotalTransactions int64    `json:"total_transactions"`
}

/*
caches:
	Business:$id
*/

// Register creates the user and business pair in one transaction and
// returns a fresh token. Duplicate phone is a Conflict.
func Register(ctx context.Context, input *NewRegistration) (*LoginInfo, error) {
	if !utils.IsTenDigitPhone(input.Phone) {
		return nil, utils.NewValidationError("phone number must be exactly 10 digits")
	}
	if len(input.Password) < 4 {
		return nil, utils.NewValidationError("password must be at least 4 characters")
	}

	// Registration runs before any tenant exists.
	ctx = utils.SetSkipTenantScopeInContext(ctx, true)
	db := config.GetDB()

	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Where("phone = ?", input.Phone).Count(&count).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to check existing users", err)
	}
	if count > 0 {
		return nil, utils.NewConflictError("phone number already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to hash password", err)
	}

	user := User{
		ID:       uuid.New(),
		Name:     input.BusinessName,
		Phone:    input.Phone,
		Password: string(hashed),
		UserType: utils.UserTypeBusiness,
	}
	business := Business{
		ID:        uuid.New(),
		UserId:    user.ID,
		Name:      input.BusinessName,
		Phone:     input.Phone,
		AccessPin: utils.GenerateAccessPin(),
		IsActive:  utils.NewTrue(),
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&business).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, utils.NewUpstreamError("registration failed", err)
	}

	token, err := utils.JwtGenerate(user.ID.String(), user.UserType, business.ID.String())
	if err != nil {
		return nil, utils.NewUpstreamError("failed to issue token", err)
	}

	return &LoginInfo{
		Token:        token,
		UserId:       user.ID,
		Phone:        user.Phone,
		UserType:     user.UserType,
		BusinessId:   business.ID,
		BusinessName: business.Name,
		BusinessPin:  business.AccessPin,
	}, nil
}

// Login verifies credentials and returns a fresh token.
func Login(ctx context.Context, input *Credentials) (*LoginInfo, error) {
	// Credential lookup happens before the tenant is known.
	ctx = utils.SetSkipTenantScopeInContext(ctx, true)
	db := config.GetDB()

	var user User
	if err := db.WithContext(ctx).Where("phone = ? AND user_type = ?", input.Phone, utils.UserTypeBusiness).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewUnauthenticatedError("invalid phone number or password")
		}
		return nil, utils.NewUpstreamError("failed to look up user", err)
	}

	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		return nil, utils.NewUnauthenticatedError("invalid phone number or password")
	}

	var business Business
	if err := db.WithContext(ctx).Where("user_id = ?", user.ID).Take(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("business profile not found")
		}
		return nil, utils.NewUpstreamError("failed to look up business", err)
	}

	token, err := utils.JwtGenerate(user.ID.String(), user.UserType, business.ID.String())
	if err != nil {
		return nil, utils.NewUpstreamError("failed to issue token", err)
	}

	return &LoginInfo{
		Token:        token,
		UserId:       user.ID,
		Phone:        user.Phone,
		UserType:     user.UserType,
		BusinessId:   business.ID,
		BusinessName: business.Name,
		BusinessPin:  business.AccessPin,
	}, nil
}

// GetBusiness returns the acting tenant's business record, cache-first.
func GetBusiness(ctx context.Context) (*Business, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.NewUnauthenticatedError("business id missing from token")
	}

	cached, err := utils.RetrieveRedis[Business](businessId)
	if err == nil && cached != nil {
		return cached, nil
	}

	db := config.GetDB()
	var business Business
	if err := db.WithContext(ctx).Where("id = ?", businessId).Take(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("business not found")
		}
		return nil, utils.NewUpstreamError("failed to fetch business", err)
	}

	if err := utils.StoreRedis[Business](&business, businessId); err != nil {
		config.LogError(config.GetLogger(), "business.go", "GetBusiness", "StoreRedis", businessId, err)
	}
	return &business, nil
}

// GetBusinessProfile returns the business with customer/transaction counts.
func GetBusinessProfile(ctx context.Context) (*BusinessProfile, error) {
	business, err := GetBusiness(ctx)
	if err != nil {
		return nil, err
	}

	businessId := business.ID.String()
	customerCount, err := utils.ResourceCountWhere[Customer](ctx, businessId, "1 = 1")
	if err != nil {
		return nil, err
	}
	transactionCount, err := utils.ResourceCountWhere[Transaction](ctx, businessId, "1 = 1")
	if err != nil {
		return nil, err
	}

	return &BusinessProfile{
		Business:          *business,
		TotalCustomers:    customerCount,
		TotalTransactions: transactionCount,
	}, nil
}

// UpdateBusinessProfile applies a partial update. Contact numbers may be
// landlines or already country-prefixed, so they are checked against the
// libphonenumber metadata rather than the strict ten-digit rule.
func UpdateBusinessProfile(ctx context.Context, input *ProfileUpdate) (*Business, error) {
	business, err := GetBusiness(ctx)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil && *input.Name != "" {
		updates["name"] = *input.Name
	}
	if input.Phone != nil && *input.Phone != "" {
		if err := utils.ValidatePhoneNumber(*input.Phone, utils.CountryCode); err != nil {
			return nil, utils.NewValidationError("invalid phone number")
		}
		updates["phone"] = *input.Phone
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.GstNumber != nil {
		updates["gst_number"] = *input.GstNumber
	}
	if input.ProfilePhotoUrl != nil {
		updates["profile_photo_url"] = *input.ProfilePhotoUrl
	}
	if input.Latitude != nil {
		updates["latitude"] = *input.Latitude
	}
	if input.Longitude != nil {
		updates["longitude"] = *input.Longitude
	}

	if len(updates) == 0 {
		return nil, utils.NewValidationError("no data to update")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&Business{}).Where("id = ?", business.ID).Updates(updates).Error; err != nil {
		return nil, utils.NewUpstreamError("failed to update profile", err)
	}

	if err := utils.RemoveRedisItem[Business](business.ID.String()); err != nil {
		config.LogError(config.GetLogger(), "business.go", "UpdateBusinessProfile", "RemoveRedisItem", business.ID.String(), err)
	}

	ctx = utils.SetBusinessIdInContext(ctx, business.ID.String())
	return GetBusiness(ctx)
}

// RegenerateAccessPin replaces the scan-in PIN.
func RegenerateAccessPin(ctx context.Context) (string, error) {
	business, err := GetBusiness(ctx)
	if err != nil {
		return "", err
	}

	newPin := utils.GenerateAccessPin()
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&Business{}).Where("id = ?", business.ID).Update("access_pin", newPin).Error; err != nil {
		return "", utils.NewUpstreamError("failed to regenerate pin", err)
	}

	if err := utils.RemoveRedisItem[Business](business.ID.String()); err != nil {
		config.LogError(config.GetLogger(), "business.go", "RegenerateAccessPin", "RemoveRedisItem", business.ID.String(), err)
	}
	return newPin, nil
}
