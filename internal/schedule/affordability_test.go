package schedule

import (
	"errors"
	"reflect"
	"testing"
)

func fixedProjector(prices map[int]int64) PriceProjector {
	return ProjectorFunc(func(playerID, round int) (int64, bool) {
		price, ok := prices[playerID]
		return price, ok
	})
}

func TestCalculatorEvaluate(t *testing.T) {
	calc := NewCalculator(fixedProjector(map[int]int64{1: 620_000, 2: 720_000, 3: 700_000}))

	tests := []struct {
		name              string
		playerID          int
		salary            int64
		expectedFeasible  bool
		expectedRemaining int64
		expectedBreakdown []string
	}{
		{
			name:              "Affordable with margin",
			playerID:          1,
			salary:            700_000,
			expectedFeasible:  true,
			expectedRemaining: 80_000,
			expectedBreakdown: []string{
				"Projected price $620,000 in round 7",
				"Salary available $700,000",
				"Margin $80,000 (11.4%)",
			},
		},
		{
			name:              "Shortfall",
			playerID:          2,
			salary:            700_000,
			expectedFeasible:  false,
			expectedRemaining: -20_000,
			expectedBreakdown: []string{
				"Projected price $720,000 in round 7",
				"Salary available $700,000",
				"Shortfall $20,000",
			},
		},
		{
			name:              "Exact fit",
			playerID:          3,
			salary:            700_000,
			expectedFeasible:  true,
			expectedRemaining: 0,
			expectedBreakdown: []string{
				"Projected price $700,000 in round 7",
				"Salary available $700,000",
				"Margin $0 (0.0%)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := calc.Evaluate(WishlistPlayer{PlayerID: tt.playerID}, 7, tt.salary)
			if err != nil {
				t.Fatalf("Evaluate() unexpected error = %v", err)
			}
			if q.Feasible() != tt.expectedFeasible {
				t.Errorf("Feasible() = %v, expected %v", q.Feasible(), tt.expectedFeasible)
			}
			if q.Remaining != tt.expectedRemaining {
				t.Errorf("Remaining = %d, expected %d", q.Remaining, tt.expectedRemaining)
			}
			if !reflect.DeepEqual(q.Breakdown, tt.expectedBreakdown) {
				t.Errorf("Breakdown = %q, expected %q", q.Breakdown, tt.expectedBreakdown)
			}
		})
	}
}

func TestCalculatorEvaluateErrors(t *testing.T) {
	calc := NewCalculator(fixedProjector(map[int]int64{1: 500_000, 2: -1}))

	tests := []struct {
		name     string
		playerID int
		salary   int64
		expected error
	}{
		{"Negative salary", 1, -1, ErrInvalidInput},
		{"No projection", 99, 100_000, ErrProjectionUnavailable},
		{"Negative projection", 2, 100_000, ErrProjectionUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Evaluate(WishlistPlayer{PlayerID: tt.playerID}, 3, tt.salary)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Evaluate() error = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestQuoteMarginRatio(t *testing.T) {
	tests := []struct {
		name     string
		quote    Quote
		expected float64
	}{
		{"Healthy", Quote{SalaryAvailable: 1000, Remaining: 250}, 0.25},
		{"Infeasible", Quote{SalaryAvailable: 1000, Remaining: -10}, 0},
		{"Zero salary", Quote{SalaryAvailable: 0, Remaining: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quote.MarginRatio(); got != tt.expected {
				t.Errorf("MarginRatio() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
