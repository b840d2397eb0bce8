package period

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestMonthRange_Inclusive(t *testing.T) {
	months := MonthRange(date(2025, 1, 15), date(2025, 4, 2))

	want := []string{"2025-01", "2025-02", "2025-03", "2025-04"}
	if len(months) != len(want) {
		t.Fatalf("MonthRange returned %d months, want %d: %v", len(months), len(want), months)
	}
	for i, m := range want {
		if months[i] != m {
			t.Errorf("months[%d] = %q, want %q", i, months[i], m)
		}
	}
}

func TestMonthRange_YearBoundary(t *testing.T) {
	months := MonthRange(date(2024, 11, 30), date(2025, 2, 1))

	want := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
	if len(months) != len(want) {
		t.Fatalf("MonthRange returned %v, want %v", months, want)
	}
	for i, m := range want {
		if months[i] != m {
			t.Errorf("months[%d] = %q, want %q", i, months[i], m)
		}
	}
}

func TestMonthRange_SingleMonth(t *testing.T) {
	months := MonthRange(date(2025, 6, 1), date(2025, 6, 30))
	if len(months) != 1 || months[0] != "2025-06" {
		t.Fatalf("MonthRange = %v, want [2025-06]", months)
	}
}

func TestMonthRange_StartAfterEnd(t *testing.T) {
	if months := MonthRange(date(2025, 7, 1), date(2025, 6, 1)); months != nil {
		t.Fatalf("MonthRange = %v, want nil", months)
	}
}

func TestParsePeriod(t *testing.T) {
	ym, err := ParsePeriod("2026-01")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	if ym.Year != 2026 || ym.Month != 1 {
		t.Errorf("ParsePeriod = %+v, want 2026-01", ym)
	}

	for _, bad := range []string{"2026", "2026-13", "01-2026", "2026-1", "not-a-period"} {
		if _, err := ParsePeriod(bad); err == nil {
			t.Errorf("ParsePeriod(%q) error = nil, want error", bad)
		}
	}
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(2025, 12)
	if !start.Equal(date(2025, 12, 1)) {
		t.Errorf("start = %v, want 2025-12-01", start)
	}
	if !end.Equal(date(2026, 1, 1)) {
		t.Errorf("end = %v, want 2026-01-01", end)
	}
}

func TestMonthsBack_WrapsYear(t *testing.T) {
	months := MonthsBack(date(2026, 2, 10), 4)

	want := []string{"2026-02", "2026-01", "2025-12", "2025-11"}
	if len(months) != len(want) {
		t.Fatalf("MonthsBack returned %d entries, want %d", len(months), len(want))
	}
	for i, w := range want {
		if months[i].String() != w {
			t.Errorf("months[%d] = %s, want %s", i, months[i], w)
		}
	}
}
