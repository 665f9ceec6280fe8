package scans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/julianstephens/lawnlog/internal/cli"
	"github.com/julianstephens/lawnlog/internal/constants"
	"github.com/julianstephens/lawnlog/internal/diagnosis"
	"github.com/julianstephens/lawnlog/internal/logger"
	"github.com/julianstephens/lawnlog/internal/models"
)

type ScanDiagnoseCmd struct {
	Image     string `arg:"" type:"existingfile" help:"Photo of the lawn (jpeg, png, webp or gif)."`
	JSON      bool   `help:"Print the raw diagnosis as JSON."`
	Thumbnail string `type:"path" help:"Also write a small JPEG preview of the photo to this path."`
}

func (c *ScanDiagnoseCmd) Run(ctx *cli.Context) error {
	client, err := ctx.Diagnoser(context.Background())
	if err != nil {
		switch {
		case errors.Is(err, diagnosis.ErrNotConfigured):
			return fmt.Errorf("%w (set with 'lawnlog settings set %s <url>')", err, constants.SettingDiagnosisEndpoint)
		case errors.Is(err, diagnosis.ErrNotAuthenticated):
			return fmt.Errorf("%w (export %s or run 'lawnlog keyring set diagnosis <token>')", err, constants.EnvDiagnosisToken)
		}
		return err
	}

	today, err := ctx.Service.Today()
	if err != nil {
		return err
	}

	ctx.Println("Analyzing photo...")
	d, err := client.DiagnoseFile(context.Background(), c.Image, today)
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	path, err := filepath.Abs(c.Image)
	if err != nil {
		path = c.Image
	}
	scan := models.Scan{
		ID:        uuid.New().String(),
		ImagePath: path,
		Diagnosis: d,
		CreatedAt: today,
	}
	if err := ctx.Store.AddScan(scan); err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	ctx.PerformAutomaticBackup()
	logger.Info("Saved scan", "id", scan.ID)

	if c.Thumbnail != "" {
		if err := writeThumbnail(c.Image, c.Thumbnail); err != nil {
			return err
		}
	}

	if c.JSON {
		return printJSON(ctx, scan)
	}
	printScan(ctx, scan)
	return nil
}

type ScanListCmd struct {
	Limit int `help:"Maximum number of scans to show." default:"20"`
}

func (c *ScanListCmd) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}
	return nil
}

func (c *ScanListCmd) Run(ctx *cli.Context) error {
	scans, err := ctx.Store.GetScans(c.Limit)
	if err != nil {
		return fmt.Errorf("failed to get scans: %w", err)
	}
	if len(scans) == 0 {
		ctx.Println("No scans yet. Run 'lawnlog scan diagnose <photo>' to create one.")
		return nil
	}
	for _, s := range scans {
		ctx.Printf("%s  %s  %-10s %s\n", s.CreatedAt.Format(constants.DateFormat), s.ID, score(s.Diagnosis), s.Diagnosis.ConditionLabel)
	}
	return nil
}

type ScanShowCmd struct {
	ID   string `arg:"" help:"Scan ID."`
	JSON bool   `help:"Print the raw diagnosis as JSON."`
}

func (c *ScanShowCmd) Run(ctx *cli.Context) error {
	scan, err := ctx.Store.GetScan(c.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(ctx, scan)
	}
	printScan(ctx, scan)
	return nil
}

func writeThumbnail(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	thumb, err := diagnosis.Thumbnail(data)
	if err != nil {
		return fmt.Errorf("failed to render thumbnail: %w", err)
	}
	if err := os.WriteFile(dst, thumb, 0o644); err != nil {
		return fmt.Errorf("failed to write thumbnail: %w", err)
	}
	logger.Info("Wrote thumbnail", "path", dst)
	return nil
}

func score(d models.Diagnosis) string {
	if d.ConditionScore == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d/10", *d.ConditionScore)
}

func printScan(ctx *cli.Context, s models.Scan) {
	d := s.Diagnosis
	ctx.Printf("Condition: %s (%s)\n", d.ConditionLabel, score(d))
	if d.Summary != "" {
		ctx.Printf("\n%s\n", d.Summary)
	}
	if len(d.Observations) > 0 {
		ctx.Println("\nObservations:")
		for _, o := range d.Observations {
			ctx.Printf("  - %s\n", o)
		}
	}
	if len(d.Issues) > 0 {
		ctx.Println("\nIssues:")
		for _, i := range d.Issues {
			ctx.Printf("  - [%s] %s: %s\n", i.Severity, i.Type, i.Description)
		}
	}
	if len(d.Recommendations) > 0 {
		ctx.Println("\nRecommendations:")
		for _, r := range d.Recommendations {
			line := fmt.Sprintf("  - [%s] %s", r.Urgency, r.Action)
			if r.ProductSuggestion != nil {
				line += fmt.Sprintf(" (try: %s)", *r.ProductSuggestion)
			}
			ctx.Println(line)
		}
	}
	if _, err := os.Stat(s.ImagePath); err == nil {
		ctx.Printf("\nPhoto: %s\n", s.ImagePath)
	}
}

func printJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	ctx.Println(string(data))
	return nil
}
