package models

import (
	"testing"
	"time"

	"github.com/ekthaa/khata_backend/utils"
)

func TestVoucherIsValidNow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		voucher Voucher
		want    bool
	}{
		{
			name:    "active and not expired",
			voucher: Voucher{IsActive: utils.NewTrue(), ValidUntil: now.Add(24 * time.Hour)},
			want:    true,
		},
		{
			name:    "inactive",
			voucher: Voucher{IsActive: utils.NewFalse(), ValidUntil: now.Add(24 * time.Hour)},
			want:    false,
		},
		{
			name:    "expired",
			voucher: Voucher{IsActive: utils.NewTrue(), ValidUntil: now.Add(-time.Minute)},
			want:    false,
		},
		{
			name:    "expires exactly now",
			voucher: Voucher{IsActive: utils.NewTrue(), ValidUntil: now},
			want:    false,
		},
		{
			name:    "active flag missing",
			voucher: Voucher{ValidUntil: now.Add(24 * time.Hour)},
			want:    false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.voucher.IsValidNow(now); got != tc.want {
				t.Errorf("IsValidNow() = %v, want %v", got, tc.want)
			}
		})
	}
}
