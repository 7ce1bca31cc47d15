package scoring

import (
	"fmt"
	"strings"
)

// FormatScore renders a score with up to two decimals, trimming
// trailing zeros, so 8.50 shows as "8.5" and 8.00 as "8".
func FormatScore(v float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
