// Package currency holds the rupee formatting and coercion helpers shared by
// the admin aggregator and the reports repository. Amount fields in older
// documents arrive as ints, floats, or pre-formatted strings like "₹5,00,000",
// so every read path funnels through ParseAmount.
package currency

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	crore = 10000000
	lakh  = 100000
)

// FormatCurrency renders an amount in the admin panel's compact rupee format:
// 1 crore and above as ₹X.YCr, 1 lakh and above as ₹X.YL, otherwise as a
// thousands-grouped integer. ₹99,99,999 renders as ₹100.0L, not ₹1.0Cr.
func FormatCurrency(amount int64) string {
	switch {
	case amount >= crore:
		return fmt.Sprintf("₹%.1fCr", float64(amount)/crore)
	case amount >= lakh:
		return fmt.Sprintf("₹%.1fL", float64(amount)/lakh)
	default:
		return "₹" + GroupThousands(amount)
	}
}

// GroupThousands renders an integer with comma-separated 3-digit groups.
func GroupThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		s = s + "," + strings.Join(parts, ",")
	}
	if neg {
		return "-" + s
	}
	return s
}

// ParseAmount coerces a document field into an integer rupee amount. It
// tolerates numeric BSON types and formatted strings, stripping the rupee
// sign and separators. Uncoercible values default to 0 with no error, which
// matches the platform's historical behavior of silently undercounting.
func ParseAmount(v interface{}) int64 {
	switch a := v.(type) {
	case nil:
		return 0
	case int:
		return int64(a)
	case int32:
		return int64(a)
	case int64:
		return a
	case float64:
		return int64(a)
	case float32:
		return int64(a)
	case string:
		return parseAmountString(a)
	default:
		return 0
	}
}

func parseAmountString(s string) int64 {
	cleaned := strings.NewReplacer("₹", "", ",", "", "/month", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

// FormatIncome normalizes an income field into "₹N,NNN/month". Numeric values
// are formatted directly; string values are cleaned and re-formatted when they
// parse, and passed through untouched when they do not.
func FormatIncome(v interface{}) string {
	switch inc := v.(type) {
	case nil:
		return ""
	case int, int32, int64, float32, float64:
		return "₹" + GroupThousands(ParseAmount(inc)) + "/month"
	case string:
		if strings.TrimSpace(inc) == "" {
			return ""
		}
		if n := parseAmountString(inc); n > 0 {
			return "₹" + GroupThousands(n) + "/month"
		}
		return inc
	default:
		return ""
	}
}

// FormatDate renders a date field as YYYY-MM-DD. Older documents store dates
// as ISO strings, newer ones as BSON datetimes.
func FormatDate(v interface{}) string {
	switch d := v.(type) {
	case time.Time:
		return d.Format("2006-01-02")
	case primitive.DateTime:
		return d.Time().Format("2006-01-02")
	case string:
		if idx := strings.Index(d, "T"); idx >= 0 {
			return d[:idx]
		}
		return d
	default:
		return time.Now().Format("2006-01-02")
	}
}
