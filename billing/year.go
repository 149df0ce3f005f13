package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Indian financial year: April through March.

// FinancialYear returns "2025-2026" for any date from Apr 2025 to Mar 2026.
func FinancialYear(date time.Time) string {
	y := date.Year()
	if date.Month() >= time.April {
		return fmt.Sprintf("%d-%d", y, y+1)
	}
	return fmt.Sprintf("%d-%d", y-1, y)
}

// ShortFinancialYear compacts "2025-2026" to "25-26".
func ShortFinancialYear(fy string) string {
	parts := strings.SplitN(fy, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return fy
	}
	return parts[0][2:] + "-" + parts[1][2:]
}

// FormatBatchNo renders a batch number like "7/25-26". Sequences restart at
// 1 each financial year.
func FormatBatchNo(sequence int, fy string) string {
	return fmt.Sprintf("%d/%s", sequence, ShortFinancialYear(fy))
}

// BatchSequence parses the leading sequence out of a stored batch number.
// Malformed numbers count as zero so one bad row cannot wedge numbering.
func BatchSequence(batchNo string) int {
	head, _, ok := strings.Cut(batchNo, "/")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NextBatchNo scans the batch numbers already issued in a financial year and
// returns the next one in sequence.
func NextBatchNo(existing []string, fy string) string {
	max := 0
	for _, no := range existing {
		if n := BatchSequence(no); n > max {
			max = n
		}
	}
	return FormatBatchNo(max+1, fy)
}
