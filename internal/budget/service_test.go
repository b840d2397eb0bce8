package budget

import (
	"testing"

	"lifetrack-backend/internal/models"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name          string
		allocated     float64
		amounts       []float64
		wantSpent     float64
		wantRemaining float64
	}{
		{"no expenses", 500, nil, 0, 500},
		{"under allocation", 500, []float64{120, 80}, 200, 300},
		{"exactly spent", 500, []float64{250, 250}, 500, 0},
		{"overspent goes negative", 500, []float64{400, 300}, 700, -200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses := make([]models.Expense, len(tt.amounts))
			for i, a := range tt.amounts {
				expenses[i] = models.Expense{Amount: a}
			}

			spent, remaining := ComputeTotals(tt.allocated, expenses)
			if spent != tt.wantSpent {
				t.Errorf("spent = %v, want %v", spent, tt.wantSpent)
			}
			if remaining != tt.wantRemaining {
				t.Errorf("remaining = %v, want %v", remaining, tt.wantRemaining)
			}
		})
	}
}

func TestUsedPercentage(t *testing.T) {
	tests := []struct {
		name      string
		allocated float64
		spent     float64
		want      float64
	}{
		{"nothing spent", 1000, 0, 0},
		{"rounds to two decimals", 1000, 333.333, 33.33},
		{"rounds half up", 3, 1, 33.33},
		{"over allocation", 500, 600, 120},
		{"zero allocation", 0, 50, 0},
		{"negative allocation", -100, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsedPercentage(tt.allocated, tt.spent); got != tt.want {
				t.Errorf("UsedPercentage(%v, %v) = %v, want %v", tt.allocated, tt.spent, got, tt.want)
			}
		})
	}
}

func TestAdherenceStatus(t *testing.T) {
	tests := []struct {
		name      string
		allocated float64
		spent     float64
		want      string
	}{
		{"nothing spent", 1000, 0, "excellent"},
		{"three quarters", 1000, 750, "excellent"},
		{"just over three quarters", 1000, 751, "good"},
		{"ninety percent", 1000, 900, "good"},
		{"just over ninety", 1000, 901, "warning"},
		{"exactly full", 1000, 1000, "warning"},
		{"overspent", 1000, 1001, "over_budget"},
		{"zero allocation counts as unused", 0, 50, "excellent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdherenceStatus(tt.allocated, tt.spent); got != tt.want {
				t.Errorf("AdherenceStatus(%v, %v) = %q, want %q", tt.allocated, tt.spent, got, tt.want)
			}
		})
	}
}
