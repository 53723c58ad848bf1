package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
)

const dateLayout = "2006-01-02"

// Request bodies carry amounts as decimal strings ("12.34" or "12,34") and
// dates as YYYY-MM-DD.
type (
	transactionRequest struct {
		CategoryID  int64  `json:"category_id"`
		Description string `json:"description"`
		Amount      string `json:"amount"`
		Type        string `json:"type"`
		Date        string `json:"date"`
	}

	categoryRequest struct {
		Name  string `json:"name"`
		Kind  string `json:"kind"`
		Color string `json:"color"`
		Icon  string `json:"icon"`
	}

	goalRequest struct {
		Title    string `json:"title"`
		Target   string `json:"target"`
		Type     string `json:"type"`
		Deadline string `json:"deadline"`
	}
)

// requireUser reads the acting user from the X-User-ID header. Authentication
// happens upstream; this server only needs the resolved identity.
func requireUser(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if raw == "" {
		return 0, errors.New("missing X-User-ID header")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid X-User-ID header: %q", raw)
	}
	return id, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %q", raw)
	}
	return id, nil
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func parseDate(raw string) (core.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return core.Date{Time: t}, nil
}

// parseYearMonth extracts the period from query parameters, defaulting to the
// current UTC month.
func parseYearMonth(r *http.Request) (year, month int, err error) {
	now := time.Now().UTC()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year: %q", v)
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid month: %q", v)
		}
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range: %d", month)
	}
	return year, month, nil
}

func (req transactionRequest) toTransaction(userID int64) (core.Transaction, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("invalid amount %q: %w", req.Amount, err)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Description: sanitizeInput(req.Description),
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(req.Type),
		Date:        date,
	}, nil
}

func (req categoryRequest) toCategory(userID int64) core.Category {
	return core.Category{
		UserID: userID,
		Name:   sanitizeInput(req.Name),
		Kind:   core.CategoryKind(req.Kind),
		Color:  strings.TrimSpace(req.Color),
		Icon:   strings.TrimSpace(req.Icon),
	}
}

func (req goalRequest) toGoal(userID int64) (core.Goal, error) {
	cents, err := core.ParseDecimalToCents(req.Target)
	if err != nil {
		return core.Goal{}, fmt.Errorf("invalid target %q: %w", req.Target, err)
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return core.Goal{}, err
	}
	return core.Goal{
		UserID:   userID,
		Title:    sanitizeInput(req.Title),
		Target:   core.Money{Cents: cents},
		Type:     core.GoalType(req.Type),
		Deadline: deadline,
	}, nil
}

// sanitizeInput trims whitespace and strips control characters except tab,
// newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
