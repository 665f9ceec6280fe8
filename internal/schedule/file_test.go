package schedule

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleSeason = `season: 2027
tasks:
  - key: pre-emergent-2027
    label: Pre-Emergent
    description: Apply before soil hits 55F
    start: 2027-02-01
    end: 2027-03-15
    urgency_days: 21
  - key: spring-scalp-2027
    label: Spring Scalp
    start: 2027-03-01
    end: 2027-03-20
    urgency_days: 14
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "season.yaml")
	if err := os.WriteFile(path, []byte(sampleSeason), 0o644); err != nil {
		t.Fatalf("failed to write season file: %v", err)
	}

	cal, err := LoadFile(path, time.UTC)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cal.Len() != 2 {
		t.Fatalf("LoadFile() loaded %d tasks, want 2", cal.Len())
	}

	task, ok := cal.Task("pre-emergent-2027")
	if !ok {
		t.Fatal("pre-emergent-2027 missing")
	}
	if task.UrgencyWindowDays != 21 {
		t.Errorf("urgency = %d, want 21", task.UrgencyWindowDays)
	}
	if !task.Start.Equal(time.Date(2027, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", task.Start)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), time.UTC); err == nil {
		t.Error("LoadFile() on missing file returned nil error")
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "no tasks",
			input:   "season: 2027\ntasks: []\n",
			wantMsg: "no tasks",
		},
		{
			name:    "bad date",
			input:   "tasks:\n  - key: x\n    start: 02/01/2027\n    end: 2027-03-01\n",
			wantMsg: "invalid start date",
		},
		{
			name:    "inverted window",
			input:   "tasks:\n  - key: x\n    start: 2027-03-01\n    end: 2027-02-01\n",
			wantMsg: "starts after it ends",
		},
		{
			name:    "malformed yaml",
			input:   "tasks: [",
			wantMsg: "failed to parse season",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), time.UTC)
			if err == nil {
				t.Fatal("Parse() returned nil error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Parse() error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestEncodeDefaultSeasonParses(t *testing.T) {
	data, err := Encode(2026, DefaultTasks(2026, time.UTC))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	cal, err := Parse(data, time.UTC)
	if err != nil {
		t.Fatalf("Parse(Encode()) error: %v", err)
	}
	step := cal.NextStep(date(time.January, 15))
	if step.Task == nil || step.Task.Key != "pre-emergent-2026" || step.DaysUntilStart != 17 {
		t.Errorf("NextStep() on encoded season = %+v", step)
	}
}
