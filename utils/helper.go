package utils

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

// All phone-facing features target Indian numbers today.
var (
	CountryCode        = "IN"
	CountryCallingCode = "91"
)

var nonDigits = regexp.MustCompile(`\D`)

// IsTenDigitPhone reports whether raw is exactly ten digits, the format
// accepted at registration and customer creation.
func IsTenDigitPhone(raw string) bool {
	if len(raw) != 10 {
		return false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizePhone converts a stored phone number into the digits-only,
// country-code-prefixed form used for messaging deep links.
//
// Rules: strip every non-digit; if the result does not already start with
// the country calling code, a leading zero is dropped before prefixing,
// and a bare ten-digit number is prefixed directly. Anything else is
// returned as-is. An empty result is an error.
func NormalizePhone(raw string) (string, error) {
	clean := nonDigits.ReplaceAllString(raw, "")
	if clean == "" {
		return "", NewValidationError("phone number is empty or has no digits")
	}
	if strings.HasPrefix(clean, CountryCallingCode) {
		return clean, nil
	}
	if strings.HasPrefix(clean, "0") {
		return CountryCallingCode + clean[1:], nil
	}
	if len(clean) == 10 {
		return CountryCallingCode + clean, nil
	}
	return clean, nil
}

// ValidatePhoneNumber checks a number against the libphonenumber metadata
// for the configured region. Used for profile contact numbers, where
// landlines and already-prefixed numbers are acceptable.
func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil
}

// FormatAmount renders d with two fixed decimals and thousands separators,
// e.g. 1234567.5 -> "1,234,567.50".
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// GenerateAccessPin returns a 6 digit PIN for customer scan-in.
// Not a security credential; collisions across businesses are tolerated.
func GenerateAccessPin() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func GenerateUniqueFilename() string {
	timestamp := time.Now().UnixNano()
	random := rand.Intn(1000)
	return fmt.Sprintf("%d_%d", timestamp, random)
}

func ProcessValidationErrors(err error) map[string]string {
	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)
	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}
