package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katpally123/attendance-dashboard/pkg/engine"
	"github.com/katpally123/attendance-dashboard/pkg/pipeline"
	"github.com/katpally123/attendance-dashboard/pkg/report"
)

type runFlags struct {
	roster          string
	mytime          string
	vacation        string
	date            string
	shift           string
	excludeNewHires bool
	noDA            bool
	asJSON          bool
	exportDir       string
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile a roster against a time feed",
		Long: `Reads the roster, the time feed and optionally the leave file, then prints
the expected and present tables for the selected date and shift.

Example:
  headcount run --roster roster.csv --mytime mytime.csv --date 2024-05-06 --shift Day
  headcount run --roster roster.xlsx --mytime mytime.csv --vacation hours.csv --export out/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.roster, "roster", "", "Roster file (.csv or .xlsx)")
	cmd.Flags().StringVar(&f.mytime, "mytime", "", "Time-and-attendance file")
	cmd.Flags().StringVar(&f.vacation, "vacation", "", "Leave / hours summary file (optional)")
	cmd.Flags().StringVar(&f.date, "date", "", "Date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&f.shift, "shift", "", "Shift name (default from config)")
	cmd.Flags().BoolVar(&f.excludeNewHires, "exclude-new-hires", false, "Drop people who started fewer than new_hire_days ago")
	cmd.Flags().BoolVar(&f.noDA, "no-da", false, "Fold the DA bucket back into Inbound")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the full result as JSON")
	cmd.Flags().StringVar(&f.exportDir, "export", "", "Directory to write the audit CSV and XLSX into")
	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("mytime")

	return cmd
}

func runReconcile(cmd *cobra.Command, f runFlags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	sel, err := selection(f.date, f.shift)
	if err != nil {
		return err
	}
	sel.ExcludeNewHires = f.excludeNewHires || appConfig.Run.ExcludeNewHires
	sel.NewHireDays = appConfig.Run.NewHireDays

	inputs := pipeline.Inputs{
		Roster:     pipeline.FileSource(f.roster),
		Attendance: pipeline.FileSource(f.mytime),
	}
	if f.vacation != "" {
		inputs.Leave = pipeline.FileSource(f.vacation)
	}

	result, err := pipeline.Process(ctx, settings, inputs, sel, pipeline.Options{
		SampleLimit: appConfig.Run.SampleLimit,
		TopN:        appConfig.Run.TopN,
		DisableDA:   f.noDA || appConfig.Run.DisableDA,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, report.RenderText(result))
	}

	if f.exportDir != "" {
		return writeExports(f.exportDir, result)
	}
	return nil
}

// selection parses the date flag (today when empty) and falls back to the
// configured default shift.
func selection(date, shift string) (engine.Selection, error) {
	day := time.Now().UTC()
	if date != "" {
		var err error
		if day, err = time.Parse("2006-01-02", date); err != nil {
			return engine.Selection{}, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", date)
		}
	}
	if strings.TrimSpace(shift) == "" {
		shift = appConfig.Run.DefaultShift
	}
	return engine.Selection{Date: day, Shift: shift}, nil
}

func writeExports(dir string, result *report.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	base := filepath.Join(dir, report.ExportFilename(result.Day, result.Shift))

	csvFile, err := os.Create(base + ".csv")
	if err != nil {
		return err
	}
	if err := report.WriteCSV(csvFile, result.Export); err != nil {
		csvFile.Close()
		return err
	}
	if err := csvFile.Close(); err != nil {
		return err
	}

	xlsxFile, err := os.Create(base + ".xlsx")
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(xlsxFile, result); err != nil {
		xlsxFile.Close()
		return err
	}
	if err := xlsxFile.Close(); err != nil {
		return err
	}

	logger.Info("audit exported", zap.String("csv", base+".csv"), zap.String("xlsx", base+".xlsx"))
	return nil
}
