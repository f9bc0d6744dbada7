package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zenapticlabs/expense-management-server/internal/apperrors"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3,5}$`)

// NormalizeCurrencyCode uppercases and validates a currency code. Codes are
// 3-5 letters and case-insensitive; normalization happens before any rate
// lookup or persistence so the rest of the system only ever sees the
// canonical form.
func NormalizeCurrencyCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !currencyCodePattern.MatchString(normalized) {
		return "", fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, code)
	}
	return normalized, nil
}

// IsValidCurrencyCode reports whether code normalizes to a valid currency code.
func IsValidCurrencyCode(code string) bool {
	_, err := NormalizeCurrencyCode(code)
	return err == nil
}
