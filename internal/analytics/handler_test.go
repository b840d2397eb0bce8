package analytics

import "testing"

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		expenses float64
		want     float64
	}{
		{"nothing spent", 1000, 0, 100},
		{"half spent", 1000, 500, 50},
		{"all spent", 1000, 1000, 0},
		{"overspent goes negative", 1000, 1200, -20},
		{"no income", 0, 300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := savingsRate(tt.income, tt.expenses); got != tt.want {
				t.Errorf("savingsRate(%v, %v) = %v, want %v", tt.income, tt.expenses, got, tt.want)
			}
		})
	}
}
