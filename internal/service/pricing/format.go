package pricing

import "fmt"

// FormatAmount renders minor units with two decimal places for display
// ("2000" -> "20.00"). This is the only place amounts are rounded.
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
