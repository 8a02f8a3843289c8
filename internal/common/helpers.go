package common

import (
	"fmt"
	"strconv"
	"strings"
)

// AmountDecimals is the number of minor-unit digits (cents)
const AmountDecimals = 2

// FormatAmount converts minor units to a decimal string without float precision loss.
// Negative values are kept: the system account runs below zero.
func FormatAmount(minor int64) string {
	if minor < 0 {
		// -minor overflows for MinInt64; format via the unsigned magnitude
		return "-" + formatWithDecimals(uint64(-(minor+1))+1, AmountDecimals)
	}
	return formatWithDecimals(uint64(minor), AmountDecimals)
}

// ParseAmount converts a non-negative decimal string to minor units without float precision loss.
// Digits beyond AmountDecimals are rejected rather than truncated.
func ParseAmount(s string) (int64, error) {
	v, err := parseWithDecimals(s, AmountDecimals)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(1250, 2) = "12.50"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("12.5", 2) = 1250
func parseWithDecimals(s string, decimals int) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("amount must be an unsigned decimal")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "" {
		whole = "0"
	}

	// Pad fractional part to exact decimals
	if len(frac) > decimals {
		return 0, fmt.Errorf("at most %d decimal places allowed", decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	// Combine and parse
	n, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return n, nil
}

// CompareAmounts compares two decimal string amounts without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails.
// A leading '-' is accepted so formatted negative balances compare correctly.
func CompareAmounts(a, b string) (int, error) {
	aVal, err := parseSigned(a)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := parseSigned(b)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	if aVal < bVal {
		return -1, nil
	}
	if aVal > bVal {
		return 1, nil
	}
	return 0, nil
}

func parseSigned(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		v, err := parseWithDecimals(rest, AmountDecimals)
		return -v, err
	}
	return parseWithDecimals(s, AmountDecimals)
}
