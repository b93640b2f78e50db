package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/wishlist-scheduler/internal/config"
	"github.com/iwvelando/wishlist-scheduler/internal/schedule"
	"github.com/iwvelando/wishlist-scheduler/internal/wishlist"
	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
	"github.com/iwvelando/wishlist-scheduler/pkg/output"
	"github.com/iwvelando/wishlist-scheduler/pkg/testutil"
	"go.uber.org/zap"
)

const repoRoot = "../.."

func loadExample(t *testing.T) (*config.Configuration, wishlist.Request) {
	t.Helper()

	conf, err := config.LoadConfiguration(filepath.Join(repoRoot, constants.ExampleConfigFile))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	conf.Projection.File = filepath.Join(repoRoot, conf.Projection.File)

	data, err := os.ReadFile(filepath.Join(repoRoot, "data", "request.json"))
	if err != nil {
		t.Fatalf("failed to read example request: %v", err)
	}
	var req wishlist.Request
	if err := json.Unmarshal(data, &req); err != nil {
		t.Fatalf("failed to decode example request: %v", err)
	}
	return conf, req
}

func run(t *testing.T) schedule.WishlistScheduleResponse {
	t.Helper()
	conf, req := loadExample(t)

	svc, cleanup, err := wishlist.Setup(context.Background(), zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	defer cleanup()

	resp, err := svc.Schedule(context.Background(), req)
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	return resp
}

// TestExampleSchedule runs the example configuration and request end to end,
// the same way the command line tool does.
func TestExampleSchedule(t *testing.T) {
	resp := run(t)

	if len(resp.Schedule) != 1 || resp.Schedule[0].Round != 5 {
		t.Fatalf("expected a single round 5 schedule, got %+v", resp.Schedule)
	}
	rs := resp.Schedule[0]
	if rs.SalaryAvailable != 1_000_000 || rs.SalaryRemaining != 150_000 {
		t.Errorf("round 5 ledger = %d -> %d, expected 1000000 -> 150000", rs.SalaryAvailable, rs.SalaryRemaining)
	}

	var order []int
	for _, trade := range rs.Trades {
		order = append(order, trade.PlayerID)
	}
	if len(order) != 2 || order[0] != 13 || order[1] != 12 {
		t.Fatalf("trade order = %v, expected [13 12]", order)
	}

	gawn, _ := testutil.FindTrade(resp, 12)
	if gawn.Affordability.Confidence != 90 {
		t.Errorf("Gawn confidence = %d, expected 90 after the bye penalty", gawn.Affordability.Confidence)
	}
	if gawn.Affordability.RemainingSalaryAfterTrade != 150_000 {
		t.Errorf("Gawn remaining = %d, expected 150000", gawn.Affordability.RemainingSalaryAfterTrade)
	}

	expectedSummary := schedule.Summary{TotalPlayers: 3, FeasibleTrades: 2, InfeasibleTrades: 1, AvgConfidence: 95}
	if resp.Summary != expectedSummary {
		t.Errorf("Summary = %+v, expected %+v", resp.Summary, expectedSummary)
	}

	if resp.CashGenerationPlan == nil {
		t.Fatal("expected a cash generation plan for Daicos")
	}
	if resp.CashGenerationPlan.Needed != 450_000 || resp.CashGenerationPlan.Generated() != 550_000 {
		t.Errorf("cash plan needs %d and raises %d, expected 450000 and 550000",
			resp.CashGenerationPlan.Needed, resp.CashGenerationPlan.Generated())
	}
	if len(resp.CashGenerationPlan.Plan) != 1 || resp.CashGenerationPlan.Plan[0].PlayersToSell[0].PlayerID != 901 {
		t.Errorf("expected the falling rookie to be sold first, got %+v", resp.CashGenerationPlan.Plan)
	}

	if len(testutil.FindWarnings(resp, schedule.CodeCashGenerationRequired)) != 1 {
		t.Error("expected one CASH_GENERATION_REQUIRED warning")
	}
	if len(testutil.FindWarnings(resp, schedule.CodeSellVolume)) != 1 {
		t.Error("expected one SELL_VOLUME warning")
	}
	for _, w := range resp.Warnings {
		if w.Severity == schedule.SeverityError {
			t.Errorf("unexpected error warning: %+v", w)
		}
	}
}

func TestExampleScheduleIsDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	if err := output.JSONFormat(&first, run(t)); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}
	if err := output.JSONFormat(&second, run(t)); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("repeated runs differ:\n%s\n---\n%s", first.String(), second.String())
	}
}

func TestExamplePrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := output.PrettyFormat(&buf, run(t)); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}

	for _, want := range []string{"Harley Reid", "Max Gawn", "Sam Rookie", "Round 5 sells 2 players"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("pretty output missing %q:\n%s", want, buf.String())
		}
	}
}
