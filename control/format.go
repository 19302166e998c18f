package control

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as M:SS; minutes are not zero padded and not capped at 59
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
