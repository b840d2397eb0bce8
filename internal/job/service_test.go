package job

import (
	"testing"
	"time"

	"lifetrack-backend/internal/models"
	"lifetrack-backend/internal/period"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerationWindow(t *testing.T) {
	now := date(2026, time.March, 15)

	t.Run("open-ended job runs through now", func(t *testing.T) {
		j := &models.Job{StartDate: date(2025, time.November, 1)}
		start, end := generationWindow(j, now)
		if !start.Equal(j.StartDate) {
			t.Errorf("start = %v, want %v", start, j.StartDate)
		}
		if !end.Equal(now) {
			t.Errorf("end = %v, want %v", end, now)
		}
	})

	t.Run("ended job stops at end date", func(t *testing.T) {
		endDate := date(2026, time.January, 31)
		j := &models.Job{StartDate: date(2025, time.November, 1), EndDate: &endDate}
		_, end := generationWindow(j, now)
		if !end.Equal(endDate) {
			t.Errorf("end = %v, want %v", end, endDate)
		}
	})
}

func TestSplitMonths(t *testing.T) {
	span := []string{"2025-11", "2025-12", "2026-01", "2026-02"}

	t.Run("fresh job creates every month", func(t *testing.T) {
		create, skip := splitMonths(span, map[string]bool{})
		if len(create) != len(span) {
			t.Errorf("create = %v, want all of %v", create, span)
		}
		if len(skip) != 0 {
			t.Errorf("skip = %v, want none", skip)
		}
	})

	t.Run("partial overlap skips only existing", func(t *testing.T) {
		existing := map[string]bool{"2025-12": true, "2026-01": true}
		create, skip := splitMonths(span, existing)
		if len(create) != 2 || create[0] != "2025-11" || create[1] != "2026-02" {
			t.Errorf("create = %v, want [2025-11 2026-02]", create)
		}
		if len(skip) != 2 || skip[0] != "2025-12" || skip[1] != "2026-01" {
			t.Errorf("skip = %v, want [2025-12 2026-01]", skip)
		}
	})

	t.Run("second run creates nothing", func(t *testing.T) {
		existing := map[string]bool{}
		firstCreate, _ := splitMonths(span, existing)
		for _, m := range firstCreate {
			existing[m] = true
		}

		secondCreate, secondSkip := splitMonths(span, existing)
		if len(secondCreate) != 0 {
			t.Errorf("second run created %v, want none", secondCreate)
		}
		if len(secondSkip) != len(span) {
			t.Errorf("second run skipped %v, want all of %v", secondSkip, span)
		}
	})

	t.Run("created plus skipped covers the span", func(t *testing.T) {
		existing := map[string]bool{"2026-01": true}
		create, skip := splitMonths(span, existing)
		if len(create)+len(skip) != len(span) {
			t.Errorf("create (%d) + skip (%d) != span (%d)", len(create), len(skip), len(span))
		}
		seen := map[string]bool{}
		for _, m := range append(create, skip...) {
			seen[m] = true
		}
		for _, m := range span {
			if !seen[m] {
				t.Errorf("month %q missing from both lists", m)
			}
		}
	})
}

func TestGenerationWindowMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []string
	}{
		{
			name:  "spans year boundary",
			start: date(2025, time.November, 10),
			end:   date(2026, time.February, 3),
			want:  []string{"2025-11", "2025-12", "2026-01", "2026-02"},
		},
		{
			name:  "single month",
			start: date(2026, time.March, 1),
			end:   date(2026, time.March, 31),
			want:  []string{"2026-03"},
		},
		{
			name:  "start after end yields nothing",
			start: date(2026, time.April, 1),
			end:   date(2026, time.March, 1),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := period.MonthRange(tt.start, tt.end)
			if len(got) != len(tt.want) {
				t.Fatalf("MonthRange = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MonthRange[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
