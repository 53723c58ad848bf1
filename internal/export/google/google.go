// Package google writes monthly summaries to a Google Sheets spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/core"
	"fintrack/internal/export"
)

// Summary rows occupy columns A:H:
// user_id, year, month, income, expense, saving, investment, balance.
const summaryColumns = "A:H"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	reportSheet   string
}

var _ export.ReportWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_REPORT_SHEET_NAME (default "Reports").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	reportSheet := strings.TrimSpace(os.Getenv("GOOGLE_REPORT_SHEET_NAME"))
	if reportSheet == "" {
		reportSheet = "Reports"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		reportSheet:   reportSheet,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// WriteMonthlySummary upserts the row for (user, year, month). An existing row
// is overwritten in place so redelivered events converge on the same data.
func (c *Client) WriteMonthlySummary(ctx context.Context, userID int64, summary core.PeriodSummary) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	year := summary.Period.Start.Year()
	month := int(summary.Period.Start.Month())

	row, err := c.findSummaryRow(ctx, userID, year, month)
	if err != nil {
		return err
	}

	values := [][]any{{
		userID,
		year,
		month,
		summary.Income.Units(),
		summary.Expense.Units(),
		summary.Saving.Units(),
		summary.Investment.Units(),
		summary.Balance.Units(),
	}}
	rng := fmt.Sprintf("%s!A%d:H%d", c.reportSheet, row, row)
	vr := &gsheet.ValueRange{Values: values}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Wrote monthly summary row",
		"user_id", userID,
		"year", year,
		"month", month,
		"range", rng)
	return nil
}

// findSummaryRow returns the 1-based row holding (user, year, month), or the
// first empty row when none exists.
func (c *Client) findSummaryRow(ctx context.Context, userID int64, year, month int) (int, error) {
	rng := fmt.Sprintf("%s!%s", c.reportSheet, summaryColumns)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", rng, err)
	}

	for i, row := range resp.Values {
		if len(row) < 3 {
			continue
		}
		u, err1 := strconv.ParseInt(strings.TrimSpace(fmt.Sprint(row[0])), 10, 64)
		y, err2 := strconv.Atoi(strings.TrimSpace(fmt.Sprint(row[1])))
		m, err3 := strconv.Atoi(strings.TrimSpace(fmt.Sprint(row[2])))
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		if u == userID && y == year && m == month {
			return i + 1, nil
		}
	}
	return len(resp.Values) + 1, nil
}
