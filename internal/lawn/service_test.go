package lawn

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/lawnlog/internal/growth"
	"github.com/julianstephens/lawnlog/internal/models"
	"github.com/julianstephens/lawnlog/internal/schedule"
	"github.com/julianstephens/lawnlog/internal/storage/sqlite"
)

type stubWeather struct {
	snap models.WeatherSnapshot
	err  error
}

func (s stubWeather) Current(ctx context.Context, lat, lon float64) (models.WeatherSnapshot, error) {
	return s.snap, s.err
}

func setupService(t *testing.T, now time.Time) *Service {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "lawnlog.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
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

	svc := New(store)
	svc.Now = func() time.Time { return now }
	svc.Weather = stubWeather{snap: models.WeatherSnapshot{TemperatureF: 75, WindSpeedMph: 5, HighTodayF: 80}}
	return svc
}

func TestDashboard(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	svc := setupService(t, now)

	if _, err := svc.LogActivity(models.ActivityMow, "2026-04-13", ""); err != nil {
		t.Fatalf("LogActivity() failed: %v", err)
	}
	if _, err := svc.LogActivity(models.ActivityMow, "2026-04-18", ""); err != nil {
		t.Fatalf("LogActivity() failed: %v", err)
	}

	d, err := svc.Dashboard(context.Background(), now)
	if err != nil {
		t.Fatalf("Dashboard() failed: %v", err)
	}
	if d.Phase.Phase != growth.PhaseGreenUp {
		t.Errorf("Phase = %s, want green-up", d.Phase.Phase)
	}
	if d.Date != "2026-04-20" {
		t.Errorf("Date = %s", d.Date)
	}
	if !d.NextStep.Found() || d.NextStep.Task.Key != "aeration-2026" || !d.NextStep.IsUrgent || d.NextStep.DaysUntilStart != 11 {
		t.Errorf("NextStep = %+v, want urgent aeration in 11 days", d.NextStep)
	}
	if d.Advice == nil || !d.Advice.Mow.Allowed {
		t.Errorf("Advice = %+v, want mowing allowed", d.Advice)
	}
	if d.LastMow.Last != "2026-04-18" || d.LastMow.DaysSinceLast != 2 {
		t.Errorf("LastMow = %+v", d.LastMow)
	}
}

func TestDashboardWithoutWeather(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	svc := setupService(t, now)
	svc.Weather = stubWeather{err: errors.New("offline")}

	d, err := svc.Dashboard(context.Background(), now)
	if err != nil {
		t.Fatalf("Dashboard() failed: %v", err)
	}
	if d.WeatherError == "" || d.Advice != nil || d.Weather != nil {
		t.Errorf("Dashboard() = %+v, want weather error and no advice", d)
	}
	if d.Phase.Phase != growth.PhaseDormant || !d.NextStep.Found() {
		t.Errorf("Dashboard() lost non-weather fields: %+v", d)
	}
}

func TestToggleTask(t *testing.T) {
	now := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	svc := setupService(t, now)

	done, err := svc.ToggleTask("aeration-2026", now)
	if err != nil || !done {
		t.Fatalf("ToggleTask() = %v, %v; want true", done, err)
	}

	entries, err := svc.Schedule(now)
	if err != nil {
		t.Fatalf("Schedule() failed: %v", err)
	}
	for _, e := range entries {
		if e.Task.Key == "aeration-2026" && (!e.Done || !e.Active) {
			t.Errorf("aeration entry = %+v, want done and active", e)
		}
	}

	done, err = svc.ToggleTask("aeration-2026", now)
	if err != nil || done {
		t.Errorf("second ToggleTask() = %v, %v; want false", done, err)
	}

	if _, err := svc.ToggleTask("aeration-2025", now); !errors.Is(err, ErrUnknownTask) {
		t.Errorf("ToggleTask(unknown) error = %v, want ErrUnknownTask", err)
	}
}

func TestCalendarFromSeasonFile(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := setupService(t, now)

	path := filepath.Join(t.TempDir(), "season.yaml")
	data, err := schedule.Encode(2026, []schedule.Task{{
		Key:               "overseed-2026",
		Label:             "Overseed",
		Start:             time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		End:               time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
		UrgencyWindowDays: 14,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	settings, _ := svc.Settings()
	settings.SeasonFile = path
	if err := svc.Store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	step, err := svc.NextStep(now)
	if err != nil {
		t.Fatalf("NextStep() failed: %v", err)
	}
	if !step.Found() || step.Task.Key != "overseed-2026" || step.DaysUntilStart != 9 || !step.IsUrgent {
		t.Errorf("NextStep() = %+v", step)
	}
}

func TestLogActivityDefaultsToToday(t *testing.T) {
	now := time.Date(2026, 7, 4, 23, 30, 0, 0, time.UTC)
	svc := setupService(t, now)

	a, err := svc.LogActivity(models.ActivityWater, "", "  deep soak ")
	if err != nil {
		t.Fatalf("LogActivity() failed: %v", err)
	}
	if a.Date != "2026-07-04" || a.Notes != "deep soak" || a.ID == "" {
		t.Errorf("LogActivity() = %+v", a)
	}

	if _, err := svc.LogActivity(models.ActivityType("rake"), "", ""); err == nil {
		t.Error("LogActivity() accepted unknown type")
	}
	if _, err := svc.LogActivity(models.ActivityMow, "07/04/2026", ""); err == nil {
		t.Error("LogActivity() accepted malformed date")
	}
}

func TestMonthIndex(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := setupService(t, now)

	for _, a := range []struct {
		typ models.ActivityType
		day string
	}{
		{models.ActivityMow, "2026-03-10"},
		{models.ActivityWater, "2026-03-10"},
		{models.ActivityMow, "2026-03-10"},
		{models.ActivityScalp, "2026-03-31"},
		{models.ActivityMow, "2026-04-01"},
	} {
		if _, err := svc.LogActivity(a.typ, a.day, ""); err != nil {
			t.Fatalf("LogActivity() failed: %v", err)
		}
	}

	idx, err := svc.MonthIndex(now)
	if err != nil {
		t.Fatalf("MonthIndex() failed: %v", err)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2 days in March", idx.Len())
	}
	got := idx.CategoriesFor("2026-03-10")
	if len(got) != 2 || got[0] != models.ActivityMow || got[1] != models.ActivityWater {
		t.Errorf("CategoriesFor(2026-03-10) = %v", got)
	}
}

func TestParseDay(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	svc := setupService(t, now)

	d, err := svc.ParseDay("2026-09-15")
	if err != nil || d.Day() != 15 || d.Month() != time.September {
		t.Errorf("ParseDay() = %v, %v", d, err)
	}
	if d, err := svc.ParseDay(""); err != nil || !d.Equal(now) {
		t.Errorf("ParseDay(\"\") = %v, %v; want now", d, err)
	}
	if _, err := svc.ParseDay("tomorrow"); err == nil {
		t.Error("ParseDay() accepted garbage")
	}
}
