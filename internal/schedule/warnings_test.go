package schedule

import "testing"

func trade(id int, price int64, remaining int64, confidence int) ScheduledTrade {
	return ScheduledTrade{
		PlayerID:       id,
		PlayerName:     "Player",
		ProjectedPrice: price,
		Affordability: AffordabilityResult{
			Verdict:                   VerdictFeasible,
			Confidence:                confidence,
			RemainingSalaryAfterTrade: remaining,
		},
	}
}

func codes(warnings []ScheduleWarning) []WarningCode {
	out := make([]WarningCode, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.Code)
	}
	return out
}

func TestInspectorInspect(t *testing.T) {
	inspector := NewInspector(50, 1)

	tests := []struct {
		name     string
		schedule []RoundSchedule
		plan     *CashGenerationPlan
		expected []WarningCode
	}{
		{
			name: "Clean schedule",
			schedule: []RoundSchedule{
				{Round: 1, SalaryAvailable: 500, SalaryRemaining: 200, Trades: []ScheduledTrade{trade(1, 300, 200, 90)}},
			},
			expected: []WarningCode{},
		},
		{
			name: "Round overspend",
			schedule: []RoundSchedule{
				{Round: 1, SalaryAvailable: 100, Trades: []ScheduledTrade{trade(1, 60, 40, 90), trade(2, 60, 0, 90)}},
			},
			expected: []WarningCode{CodeEngineInvariantViolation},
		},
		{
			name: "Negative remaining",
			schedule: []RoundSchedule{
				{Round: 1, SalaryAvailable: 1000, Trades: []ScheduledTrade{trade(1, 60, -5, 90)}},
			},
			expected: []WarningCode{CodeEngineInvariantViolation},
		},
		{
			name: "Duplicate across rounds",
			schedule: []RoundSchedule{
				{Round: 1, SalaryAvailable: 1000, Trades: []ScheduledTrade{trade(1, 100, 900, 90)}},
				{Round: 2, SalaryAvailable: 900, Trades: []ScheduledTrade{trade(1, 100, 800, 90)}},
			},
			expected: []WarningCode{CodeDuplicateTrade},
		},
		{
			name: "Duplicate within a round",
			schedule: []RoundSchedule{
				{Round: 1, SalaryAvailable: 1000, Trades: []ScheduledTrade{trade(1, 100, 900, 90), trade(1, 100, 800, 90)}},
			},
			expected: []WarningCode{CodeDuplicateTrade},
		},
		{
			name: "Low confidence",
			schedule: []RoundSchedule{
				{Round: 1, SalaryAvailable: 1000, Trades: []ScheduledTrade{trade(1, 950, 50, 49)}},
			},
			expected: []WarningCode{CodeLowConfidence},
		},
		{
			name: "Budget contention",
			schedule: []RoundSchedule{
				{Round: 4, SalaryAvailable: 1000, Trades: []ScheduledTrade{
					func() ScheduledTrade { tr := trade(1, 100, 900, 90); tr.FirstFeasibleRound = 3; return tr }(),
				}},
			},
			expected: []WarningCode{CodeBudgetContention},
		},
		{
			name: "Sell volume",
			plan: &CashGenerationPlan{Needed: 200, Plan: []CashGenerationStep{
				{Round: 2, PlayersToSell: []SaleCandidate{{PlayerID: 7}}},
				{Round: 3, PlayersToSell: []SaleCandidate{{PlayerID: 8}, {PlayerID: 9}}},
			}},
			expected: []WarningCode{CodeSellVolume},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codes(inspector.Inspect(tt.schedule, tt.plan))
			if len(got) != len(tt.expected) {
				t.Fatalf("Inspect() = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Inspect() = %v, expected %v", got, tt.expected)
					break
				}
			}
		})
	}
}

func TestInspectorNeverReturnsNil(t *testing.T) {
	if got := NewInspector(50, 1).Inspect(nil, nil); got == nil {
		t.Error("Inspect() returned nil, expected an empty slice")
	}
}

func TestSortWarnings(t *testing.T) {
	warnings := []ScheduleWarning{
		{Round: 2, Severity: SeverityInfo, Issue: "a"},
		{Round: 1, Severity: SeverityInfo, Issue: "b"},
		{Round: 1, Severity: SeverityWarning, Issue: "c"},
		{Round: 1, Severity: SeverityError, Issue: "d"},
		{Round: 1, Severity: SeverityWarning, Issue: "e"},
	}
	SortWarnings(warnings)

	expected := []string{"d", "c", "e", "b", "a"}
	for i, w := range warnings {
		if w.Issue != expected[i] {
			t.Errorf("SortWarnings() position %d = %s, expected %s", i, w.Issue, expected[i])
		}
	}
}
