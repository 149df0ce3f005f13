package billing

import "testing"

func TestFinalWeight(t *testing.T) {
	tests := []struct {
		name     string
		readings []float64
		want     float64
	}{
		{"all zero", []float64{0, 0, 0}, 0},
		{"middle zero", []float64{120, 0, 118}, 118},
		{"single positive", []float64{0, 95, 0}, 95},
		{"all positive", []float64{5000, 4980, 4950}, 4950},
		{"first pass only", []float64{5000, 0, 0}, 5000},
		{"no readings", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinalWeight(tt.readings...); got != tt.want {
				t.Errorf("FinalWeight(%v) = %v, want %v", tt.readings, got, tt.want)
			}
		})
	}
}

func TestMoistureAdjustedRate(t *testing.T) {
	tests := []struct {
		name     string
		baseRate float64
		moisture float64
		want     float64
	}{
		{"at threshold", 2000, 14, 2000},
		{"below threshold", 2000, 10, 2000},
		{"zero moisture", 2000, 0, 2000},
		{"four points over", 2000, 18, 1920},
		{"two points over", 2000, 16, 1960},
		{"fractional over", 1500, 16.5, 1462.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoistureAdjustedRate(tt.baseRate, tt.moisture); got != tt.want {
				t.Errorf("MoistureAdjustedRate(%v, %v) = %v, want %v",
					tt.baseRate, tt.moisture, got, tt.want)
			}
		})
	}
}

func TestAllocatedBags(t *testing.T) {
	tests := []struct {
		name      string
		itemBags  int
		declared  int
		want      int
	}{
		{"item bags win", 80, 100, 80},
		{"declared fallback", 0, 100, 100},
		{"degenerate form", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllocatedBags(tt.itemBags, tt.declared); got != tt.want {
				t.Errorf("AllocatedBags(%d, %d) = %d, want %d",
					tt.itemBags, tt.declared, got, tt.want)
			}
		})
	}
}

func TestDistributeWeight(t *testing.T) {
	if got := DistributeWeight(60, 100, 49.5); got != 29.7 {
		t.Errorf("DistributeWeight(60, 100, 49.5) = %v, want 29.7", got)
	}
	if got := DistributeWeight(100, 100, 49.5); got != 49.5 {
		t.Errorf("full share = %v, want 49.5", got)
	}
	if got := DistributeWeight(10, 0, 50); got != 500.0 {
		// zero denominator falls back to 1
		t.Errorf("DistributeWeight(10, 0, 50) = %v, want 500", got)
	}
}

func TestItemAmount(t *testing.T) {
	tests := []struct {
		name      string
		weightQtl float64
		rate      float64
		want      int64
	}{
		{"exact", 49.5, 1960, 97020},
		{"rounds half up", 1.2345, 1000, 1235},
		{"rounds down", 1.2344, 1000, 1234},
		{"zero weight", 0, 2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemAmount(tt.weightQtl, tt.rate); got != tt.want {
				t.Errorf("ItemAmount(%v, %v) = %d, want %d",
					tt.weightQtl, tt.rate, got, tt.want)
			}
		})
	}
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name    string
		gross   int64
		percent float64
		want    int64
	}{
		{"two percent", 97020, 2, 1940},
		{"zero percent", 97020, 0, 0},
		{"rounds half up", 101, 0.5, 1},
		{"clean fraction", 1000, 2.5, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiscountAmount(tt.gross, tt.percent); got != tt.want {
				t.Errorf("DiscountAmount(%d, %v) = %d, want %d",
					tt.gross, tt.percent, got, tt.want)
			}
		})
	}
}

func TestNetPayable(t *testing.T) {
	// gross − discount + brokerage + hamali + others
	if got := NetPayable(97020, 2, 500, 300, 0); got != 95880 {
		t.Errorf("NetPayable = %d, want 95880", got)
	}
	if got := NetPayable(1000, 0, 0, 0, 0); got != 1000 {
		t.Errorf("NetPayable with no charges = %d, want 1000", got)
	}
}

func TestAutoBrokerage(t *testing.T) {
	got := AutoBrokerage([]int{60, 40}, []float64{10, 20}, 50)
	if got != 700 {
		// shares 30 and 20 qtl at 10 and 20 per qtl
		t.Errorf("AutoBrokerage = %d, want 700", got)
	}

	if got := AutoBrokerage(nil, nil, 50); got != 0 {
		t.Errorf("AutoBrokerage with no items = %d, want 0", got)
	}
	if got := AutoBrokerage([]int{50}, []float64{10}, 0); got != 0 {
		t.Errorf("AutoBrokerage with zero weight = %d, want 0", got)
	}
}
