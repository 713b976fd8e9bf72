package utils

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatRupees formats an amount with the rupee symbol and Indian digit
// grouping. Example: 125000 -> "₹1,25,000". A fractional part is kept to
// two places, whole amounts stay whole.
func FormatRupees(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents >= 100 {
		whole++
		cents = 0
	}

	grouped := groupIndian(strconv.FormatInt(whole, 10))

	sign := ""
	if negative {
		sign = "-"
	}

	if cents > 0 {
		return fmt.Sprintf("%s₹%s.%02d", sign, grouped, cents)
	}

	return sign + "₹" + grouped
}

// groupIndian inserts separators in the Indian style: the last three digits
// form one group, every two digits after that form the next.
// Example: "1250000" -> "12,50,000"
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var result []byte
	count := 0
	for i := len(head) - 1; i >= 0; i-- {
		result = append([]byte{head[i]}, result...)
		count++
		if count%2 == 0 && i != 0 {
			result = append([]byte{','}, result...)
		}
	}

	return string(result) + "," + tail
}

// FormatFlightTime renders an RFC3339 timestamp for offer display.
// Example: "2025-06-01T09:30:00Z" -> "01 Jun 2025, 09:30".
// Returns an empty string when raw is not an RFC3339 timestamp so the
// caller can fall back to pre-formatted text.
func FormatFlightTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return ""
	}

	return t.Format("02 Jan 2006, 15:04")
}
