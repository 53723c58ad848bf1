package core

import (
	"testing"
	"time"
)

func TestResolvePeriod(t *testing.T) {
	cases := []struct {
		year, month int
		wantEndDay  int
	}{
		{2024, 2, 29}, // leap year
		{2023, 2, 28},
		{2025, 1, 31},
		{2025, 4, 30},
		{2025, 12, 31},
	}
	for _, tc := range cases {
		r := ResolvePeriod(tc.year, tc.month)
		if r.Start.Year() != tc.year || int(r.Start.Month()) != tc.month || r.Start.Day() != 1 {
			t.Fatalf("%d-%02d: start = %v", tc.year, tc.month, r.Start)
		}
		if r.End.Day() != tc.wantEndDay {
			t.Fatalf("%d-%02d: end day = %d, want %d", tc.year, tc.month, r.End.Day(), tc.wantEndDay)
		}
		if r.End.Hour() != 23 || r.End.Minute() != 59 || r.End.Second() != 59 {
			t.Fatalf("%d-%02d: end time = %v, want 23:59:59", tc.year, tc.month, r.End)
		}
	}
}

func TestResolvePeriodYearRollover(t *testing.T) {
	r := ResolvePeriod(2024, 12)
	if r.End.Year() != 2024 || r.End.Month() != time.December || r.End.Day() != 31 {
		t.Fatalf("december end = %v", r.End)
	}
	next := ResolvePeriod(2025, 1)
	if !r.End.Before(next.Start) {
		t.Fatalf("december end %v not before january start %v", r.End, next.Start)
	}
}

func TestDateRangeContains(t *testing.T) {
	r := ResolvePeriod(2024, 2)
	cases := []struct {
		d    Date
		want bool
	}{
		{NewDate(2024, 2, 1), true},
		{NewDate(2024, 2, 29), true},
		{NewDate(2024, 1, 31), false},
		{NewDate(2024, 3, 1), false},
	}
	for i, tc := range cases {
		if got := r.Contains(tc.d); got != tc.want {
			t.Fatalf("case %d: Contains(%v) = %v, want %v", i, tc.d, got, tc.want)
		}
	}
}
