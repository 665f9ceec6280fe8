package activities

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/dayindex"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	ctx := cli.NewContext(store)
	ctx.Out = &out
	ctx.Service.Now = func() time.Time { return time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC) }
	return ctx, &out
}

func TestLogAddValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     LogAddCmd
		wantErr bool
	}{
		{"valid", LogAddCmd{Type: "mow", Date: "2026-05-01"}, false},
		{"label", LogAddCmd{Type: "Pre-Emergent"}, false},
		{"unknown type", LogAddCmd{Type: "edge"}, true},
		{"bad date", LogAddCmd{Type: "water", Date: "05/01/2026"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogAddListDeleteRestore(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&LogAddCmd{Type: "mow", Notes: "  first cut  "}).Run(ctx); err != nil {
		t.Fatalf("log add failed: %v", err)
	}
	if err := (&LogAddCmd{Type: "fertilize", Date: "2026-05-10"}).Run(ctx); err != nil {
		t.Fatalf("log add failed: %v", err)
	}

	acts, err := ctx.Store.GetAllActivities(false)
	if err != nil {
		t.Fatal(err)
	}
	if len(acts) != 2 {
		t.Fatalf("got %d activities, want 2", len(acts))
	}
	mow := acts[0]
	if mow.Type != models.ActivityMow || mow.Date != "2026-05-20" || mow.Notes != "first cut" {
		t.Errorf("mow = %+v", mow)
	}

	out.Reset()
	if err := (&LogListCmd{Type: "fertilize"}).Run(ctx); err != nil {
		t.Fatalf("log list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Fertilize") || strings.Contains(out.String(), "first cut") {
		t.Errorf("filtered list output:\n%s", out.String())
	}

	if err := (&LogDeleteCmd{ID: mow.ID}).Run(ctx); err != nil {
		t.Fatalf("log delete failed: %v", err)
	}
	if err := (&LogDeleteCmd{ID: mow.ID}).Run(ctx); err == nil {
		t.Error("deleting twice should fail")
	}

	out.Reset()
	if err := (&LogListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "first cut") {
		t.Error("deleted activity listed without --include-deleted")
	}

	if err := (&LogRestoreCmd{ID: mow.ID}).Run(ctx); err != nil {
		t.Fatalf("log restore failed: %v", err)
	}
	if err := (&LogRestoreCmd{ID: mow.ID}).Run(ctx); err == nil {
		t.Error("restoring a live activity should fail")
	}
}

func TestLogListValidate(t *testing.T) {
	if err := (&LogListCmd{From: "2026-05-10", To: "2026-05-01"}).Validate(); err == nil {
		t.Error("expected inverted range to fail")
	}
	if err := (&LogListCmd{Type: "edge"}).Validate(); err == nil {
		t.Error("expected unknown type to fail")
	}
}

func TestRenderMonth(t *testing.T) {
	acts := []models.Activity{
		{ID: "1", Type: models.ActivityWater, Date: "2026-05-09"},
		{ID: "2", Type: models.ActivityMow, Date: "2026-05-09"},
		{ID: "3", Type: models.ActivityFertilize, Date: "2026-05-09"},
		{ID: "4", Type: models.ActivityAerate, Date: "2026-05-09"},
		{ID: "5", Type: models.ActivityScalp, Date: "2026-05-02"},
	}
	month := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	got := RenderMonth(month, today, dayindex.Build(acts))
	if !strings.Contains(got, "May 2026") {
		t.Error("missing month title")
	}
	if !strings.Contains(got, " 9 MFW") {
		t.Errorf("May 9 should show three badges in canonical order:\n%s", got)
	}
	if !strings.Contains(got, " 2 S") {
		t.Errorf("May 2 should show scalp:\n%s", got)
	}
}

func TestLogCalendarValidate(t *testing.T) {
	if err := (&LogCalendarCmd{Month: "2026-13"}).Validate(); err == nil {
		t.Error("expected invalid month to fail")
	}
	if err := (&LogCalendarCmd{Month: "2026-05"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
