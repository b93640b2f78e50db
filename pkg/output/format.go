// Package output provides utilities for formatting and displaying schedule
// results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/iwvelando/wishlist-scheduler/internal/schedule"
	"github.com/iwvelando/wishlist-scheduler/pkg/format"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, resp schedule.WishlistScheduleResponse) error {
	var b strings.Builder

	s := resp.Summary
	fmt.Fprintf(&b, "%s %d players | %d feasible | %d infeasible | avg confidence %d\n\n",
		headingStyle.Render("Summary:"), s.TotalPlayers, s.FeasibleTrades, s.InfeasibleTrades, s.AvgConfidence)

	if len(resp.Schedule) == 0 {
		b.WriteString(mutedStyle.Render("No trades scheduled"))
		b.WriteString("\n\n")
	}
	for _, rs := range resp.Schedule {
		fmt.Fprintf(&b, "%s (salary %s -> %s)\n",
			headingStyle.Render(fmt.Sprintf("Round %d", rs.Round)),
			format.Currency(rs.SalaryAvailable), format.Currency(rs.SalaryRemaining))

		t := newTable("Player", "Pos", "Price", "Confidence", "Remaining")
		for _, trade := range rs.Trades {
			t.Row(
				trade.PlayerName,
				trade.Position,
				format.Compact(trade.ProjectedPrice),
				fmt.Sprintf("%d (%s)", trade.Affordability.Confidence, trade.Affordability.Label),
				format.Compact(trade.Affordability.RemainingSalaryAfterTrade),
			)
		}
		b.WriteString(t.String())
		b.WriteString("\n\n")
	}

	if plan := resp.CashGenerationPlan; plan != nil {
		fmt.Fprintf(&b, "%s need %s, plan raises %s\n",
			headingStyle.Render("Cash generation:"), format.Currency(plan.Needed), format.Currency(plan.Generated()))
		t := newTable("Round", "Action", "Sell", "Cash")
		for _, step := range plan.Plan {
			names := make([]string, 0, len(step.PlayersToSell))
			for _, p := range step.PlayersToSell {
				names = append(names, fmt.Sprintf("%s (%s)", p.Name, format.Compact(p.SellPrice)))
			}
			t.Row(strconv.Itoa(step.Round), step.Action, strings.Join(names, ", "), format.Compact(step.CashGenerated))
		}
		b.WriteString(t.String())
		b.WriteString("\n\n")
	}

	if len(resp.Warnings) > 0 {
		b.WriteString(headingStyle.Render("Warnings:"))
		b.WriteString("\n")
		t := newTable("Round", "Severity", "Issue", "Suggestion")
		for _, warning := range resp.Warnings {
			t.Row(strconv.Itoa(warning.Round), string(warning.Severity), warning.Issue, warning.Suggestion)
		}
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// JSONFormat writes the response as indented JSON.
func JSONFormat(w io.Writer, resp schedule.WishlistScheduleResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
