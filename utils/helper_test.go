package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"ten digits", "9876543210", "919876543210", false},
		{"leading zero", "09876543210", "919876543210", false},
		{"already prefixed", "919876543210", "919876543210", false},
		{"plus and spaces", "+91 98765 43210", "919876543210", false},
		{"dashes", "98765-43210", "919876543210", false},
		{"empty", "", "", true},
		{"only symbols", "+- ()", "", true},
		{"odd length passthrough", "123456", "123456", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhone(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NormalizePhone(%q) expected error, got %q", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsTenDigitPhone(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"9876543210", true},
		{"0876543210", true},
		{"987654321", false},
		{"98765432100", false},
		{"987654321a", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsTenDigitPhone(tc.in); got != tc.want {
			t.Errorf("IsTenDigitPhone(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"250.5", "250.50"},
		{"1000", "1,000.00"},
		{"1234567.891", "1,234,567.89"},
		{"-1500", "-1,500.00"},
		{"999.999", "1,000.00"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", tc.in, err)
		}
		if got := FormatAmount(d); got != tc.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGenerateAccessPin(t *testing.T) {
	for i := 0; i < 50; i++ {
		pin := GenerateAccessPin()
		if len(pin) != 6 {
			t.Fatalf("pin %q has length %d, want 6", pin, len(pin))
		}
		for _, r := range pin {
			if r < '0' || r > '9' {
				t.Fatalf("pin %q contains non-digit %q", pin, r)
			}
		}
	}
}
