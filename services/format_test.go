package services

import "testing"

func TestFormatINR_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"empty", "", "₹0.00"},
		{"garbage", "n/a", "₹0.00"},
		{"zero", "0", "₹0.00"},
		{"small integer", "5", "₹5.00"},
		{"with decimals", "42.5", "₹42.50"},
		{"thousands", "1234.56", "₹1,234.56"},
		{"lakhs", "123456.78", "₹1,23,456.78"},
		{"crores", "12345678.90", "₹1,23,45,678.90"},
		{"rounds half away from zero", "3745.125", "₹3,745.13"},
		{"negative lakhs", "-250000.50", "-₹2,50,000.50"},
		{"exact crore boundary", "10000000", "₹1,00,00,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatINR(tt.input)
			if got != tt.expect {
				t.Errorf("FormatINR(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestApplyIndianGrouping(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"single digit", "5", "5"},
		{"three digits", "999", "999"},
		{"four digits", "1234", "1,234"},
		{"six digits", "123456", "1,23,456"},
		{"eight digits", "12345678", "1,23,45,678"},
		{"ten digits", "1234567890", "1,23,45,67,890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyIndianGrouping(tt.input)
			if got != tt.expect {
				t.Errorf("applyIndianGrouping(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}
