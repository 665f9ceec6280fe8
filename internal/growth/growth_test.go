package growth

import (
	"testing"
	"time"
)

func TestForMonth(t *testing.T) {
	tests := []struct {
		month time.Month
		want  Phase
	}{
		{time.January, PhaseDormant},
		{time.February, PhaseDormant},
		{time.March, PhaseGreenUp},
		{time.April, PhaseGreenUp},
		{time.May, PhasePeakGrowth},
		{time.June, PhasePeakGrowth},
		{time.July, PhasePeakGrowth},
		{time.August, PhasePeakGrowth},
		{time.September, PhasePeakGrowth},
		{time.October, PhaseTransition},
		{time.November, PhaseTransition},
		{time.December, PhaseDormant},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			got := ForMonth(tt.month)
			if got.Phase != tt.want {
				t.Errorf("ForMonth(%s) = %s, want %s", tt.month, got.Phase, tt.want)
			}
			if got.Label == "" || got.Description == "" {
				t.Errorf("ForMonth(%s) returned phase without display text: %+v", tt.month, got)
			}
		})
	}
}

func TestPhasesPartitionYear(t *testing.T) {
	counts := make(map[Phase]int)
	for m := time.January; m <= time.December; m++ {
		counts[ForMonth(m).Phase]++
	}

	want := map[Phase]int{
		PhaseDormant:    3,
		PhaseGreenUp:    2,
		PhasePeakGrowth: 5,
		PhaseTransition: 2,
	}
	for phase, n := range want {
		if counts[phase] != n {
			t.Errorf("phase %s covers %d months, want %d", phase, counts[phase], n)
		}
	}
	if len(counts) != len(Phases()) {
		t.Errorf("expected %d distinct phases, got %d", len(Phases()), len(counts))
	}
}

func TestClassifyIgnoresYearAndDay(t *testing.T) {
	a := Classify(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	b := Classify(time.Date(2031, time.March, 31, 23, 59, 0, 0, time.UTC))
	if a != b {
		t.Errorf("expected same phase for the same month, got %v and %v", a, b)
	}

	// repeated calls are stable
	if Classify(time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)) != Classify(time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)) {
		t.Error("Classify is not idempotent")
	}
}

func TestQuickTip(t *testing.T) {
	seen := make(map[string]bool)
	for m := time.January; m <= time.December; m++ {
		tip := QuickTip(time.Date(2026, m, 15, 0, 0, 0, 0, time.UTC))
		if tip == "" {
			t.Errorf("no tip for %s", m)
		}
		seen[tip] = true
	}
	if len(seen) != 12 {
		t.Errorf("expected 12 distinct tips, got %d", len(seen))
	}
}
