package utils

import (
	"context"

	"github.com/ekthaa/khata_backend/config"
)

// check if id exists, using businessId in WHERE, return ErrorRecordNotFound
func ValidateResourceId[T any](ctx context.Context, businessId string, id interface{}) error {
	count, err := ResourceCountWhere[T](ctx, businessId, "id = ?", id)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrorRecordNotFound
	}

	return nil
}

// ValidateUnique fails with Conflict when another record in the business
// already holds value in column. exceptId exempts the record being updated.
func ValidateUnique[T any](ctx context.Context, businessId string, column string, value interface{}, exceptId string) error {
	var count int64
	var err error
	if exceptId == "" {
		count, err = ResourceCountWhere[T](ctx, businessId, column+" = ?", value)
	} else {
		count, err = ResourceCountWhere[T](ctx, businessId, column+" = ? AND NOT id = ?", value, exceptId)
	}

	if err != nil {
		return err
	}
	if count > 0 {
		return NewConflictError("duplicate " + column)
	}
	return nil
}

// count records, using WHERE business_id = ? AND $condition
// business_id can be blank for unscoped lookups (registration, tooling)
func ResourceCountWhere[T any](ctx context.Context, businessId string, condition string, value ...interface{}) (int64, error) {
	var model T

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&model)
	var count int64
	if businessId != "" {
		dbCtx.Where("business_id = ?", businessId)
	}
	dbCtx.Where(condition, value...)
	if err := dbCtx.Count(&count).Error; err != nil {
		return 0, NewUpstreamError("failed to query records", err)
	}
	return count, nil
}
