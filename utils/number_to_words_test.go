package utils

import "testing"

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		num  int
		want string
	}{
		{0, ""},
		{5, "Five"},
		{19, "Nineteen"},
		{45, "Forty Five"},
		{100, "One Hundred"},
		{105, "One Hundred Five"},
		{1000, "One Thousand"},
		{97020, "Ninety Seven Thousand Twenty"},
		{100000, "One Lakh"},
		{2550000, "Twenty Five Lakh Fifty Thousand"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
	}
	for _, tt := range tests {
		if got := NumberToWords(tt.num); got != tt.want {
			t.Errorf("NumberToWords(%d) = %q, want %q", tt.num, got, tt.want)
		}
	}
}

func TestRupeesInWords(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{-5, "Zero Rupees Only"},
		{1, "One Rupees Only"},
		{95880, "Ninety Five Thousand Eight Hundred Eighty Rupees Only"},
		{250000, "Two Lakh Fifty Thousand Rupees Only"},
	}
	for _, tt := range tests {
		if got := RupeesInWords(tt.amount); got != tt.want {
			t.Errorf("RupeesInWords(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
