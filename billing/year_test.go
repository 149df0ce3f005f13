package billing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"april starts the year", date(2025, time.April, 1), "2025-2026"},
		{"march closes the year", date(2026, time.March, 31), "2025-2026"},
		{"next april rolls over", date(2026, time.April, 1), "2026-2027"},
		{"january belongs to prior year", date(2025, time.January, 15), "2024-2025"},
		{"december mid-year", date(2025, time.December, 10), "2025-2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinancialYear(tt.date); got != tt.want {
				t.Errorf("FinancialYear(%v) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestShortFinancialYear(t *testing.T) {
	if got := ShortFinancialYear("2025-2026"); got != "25-26" {
		t.Errorf("ShortFinancialYear = %q, want 25-26", got)
	}
	// already short, passes through
	if got := ShortFinancialYear("25-26"); got != "25-26" {
		t.Errorf("ShortFinancialYear passthrough = %q, want 25-26", got)
	}
}

func TestBatchSequence(t *testing.T) {
	tests := []struct {
		batchNo string
		want    int
	}{
		{"7/25-26", 7},
		{"12/25-26", 12},
		{"junk", 0},
		{"x/25-26", 0},
		{" 3 /25-26", 3},
		{"", 0},
	}
	for _, tt := range tests {
		if got := BatchSequence(tt.batchNo); got != tt.want {
			t.Errorf("BatchSequence(%q) = %d, want %d", tt.batchNo, got, tt.want)
		}
	}
}

func TestNextBatchNo(t *testing.T) {
	if got := NextBatchNo(nil, "2025-2026"); got != "1/25-26" {
		t.Errorf("first batch = %q, want 1/25-26", got)
	}
	if got := NextBatchNo([]string{"3/25-26", "7/25-26", "1/25-26"}, "2025-2026"); got != "8/25-26" {
		t.Errorf("next batch = %q, want 8/25-26", got)
	}
	// malformed stored numbers count as zero instead of wedging numbering
	if got := NextBatchNo([]string{"junk", "2/25-26"}, "2025-2026"); got != "3/25-26" {
		t.Errorf("next batch with junk row = %q, want 3/25-26", got)
	}
}

// Sequences restart at 1 when the financial year turns over even though the
// prior year ran higher.
func TestBatchNumberResetAcrossYears(t *testing.T) {
	marchBatches := []string{"41/25-26", "42/25-26"}
	if got := NextBatchNo(marchBatches, "2025-2026"); got != "43/25-26" {
		t.Fatalf("march batch = %q, want 43/25-26", got)
	}

	// April: the year's filter yields nothing yet
	if got := NextBatchNo(nil, "2026-2027"); got != "1/26-27" {
		t.Fatalf("april batch = %q, want 1/26-27", got)
	}
}
