package google

import (
	"context"
	"strings"
	"testing"

	"fintrack/internal/core"
)

func summaryFixture() core.PeriodSummary {
	return core.PeriodSummary{
		Period:  core.ResolvePeriod(2025, 6),
		Balance: core.Money{Cents: 100},
	}
}

func TestNewFromEnvMissingSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")

	_, err := NewFromEnv(context.Background())
	if err == nil || !strings.Contains(err.Error(), "GOOGLE_SPREADSHEET_ID") {
		t.Fatalf("expected missing spreadsheet ID error, got %v", err)
	}
}

func TestNewFromEnvMissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "sheet-123")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := NewFromEnv(context.Background())
	if err == nil || !strings.Contains(err.Error(), "service account credentials") {
		t.Fatalf("expected missing credentials error, got %v", err)
	}
}

func TestWriteMonthlySummaryRequiresService(t *testing.T) {
	c := &Client{spreadsheetID: "sheet-123", reportSheet: "Reports"}

	err := c.WriteMonthlySummary(context.Background(), 1, summaryFixture())
	if err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Fatalf("expected uninitialized service error, got %v", err)
	}
}
