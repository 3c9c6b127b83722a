package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katpally123/attendance-dashboard/pkg/config"
	"github.com/katpally123/attendance-dashboard/pkg/engine"
	"github.com/katpally123/attendance-dashboard/pkg/logging"
	"github.com/katpally123/attendance-dashboard/pkg/parser"
	"github.com/katpally123/attendance-dashboard/pkg/report"
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// ErrMissingInput is returned when a required feed was not supplied.
var ErrMissingInput = errors.New("missing input file")

// Source is one input feed. Open is called once per run.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource reads a feed from disk.
func FileSource(path string) *Source {
	return &Source{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// BytesSource wraps feed contents already in memory, e.g. an upload.
func BytesSource(name string, data []byte) *Source {
	return &Source{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Inputs are the feeds of one run. Leave is optional.
type Inputs struct {
	Roster     *Source
	Attendance *Source
	Leave      *Source
}

// Loaded is the parsed form of Inputs.
type Loaded struct {
	Feeds    engine.Feeds
	Warnings []string
}

// Load reads and parses every supplied feed in parallel and returns once all
// of them are done. The first failure cancels the rest.
//   - the time feed always carries a title line above its header
//   - the leave feed's title line is detected from its second line, and
//     "Unnamed" placeholder columns are dropped
func Load(ctx context.Context, in Inputs) (*Loaded, error) {
	if in.Roster == nil {
		return nil, fmt.Errorf("%w: roster", ErrMissingInput)
	}
	if in.Attendance == nil {
		return nil, fmt.Errorf("%w: time feed", ErrMissingInput)
	}

	var roster, attendance, leave *parser.ParseResult
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		roster, err = loadSource(ctx, in.Roster, func([]byte) parser.Options { return parser.Options{} })
		return err
	})
	g.Go(func() error {
		var err error
		attendance, err = loadSource(ctx, in.Attendance, func([]byte) parser.Options { return parser.Options{SkipLines: 1} })
		return err
	})
	if in.Leave != nil {
		g.Go(func() error {
			var err error
			leave, err = loadSource(ctx, in.Leave, func(data []byte) parser.Options {
				return parser.Options{
					SkipLines:   parser.DetectTitleLine(in.Leave.Name, data),
					DropUnnamed: true,
				}
			})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Loaded{
		Feeds: engine.Feeds{Roster: roster.Table, Attendance: attendance.Table},
	}
	out.Warnings = append(out.Warnings, rowWarnings(roster)...)
	out.Warnings = append(out.Warnings, rowWarnings(attendance)...)
	if leave != nil {
		out.Feeds.Leave = leave.Table
		out.Warnings = append(out.Warnings, rowWarnings(leave)...)
	}
	return out, nil
}

func loadSource(ctx context.Context, src *Source, options func([]byte) parser.Options) (*parser.ParseResult, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return parser.Parse(src.Name, data, options(data))
}

func rowWarnings(r *parser.ParseResult) []string {
	out := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, fmt.Sprintf("%s row %d: %s", r.Table.Name, w.Row, w.Message))
	}
	return out
}

// Options configures a run beyond the selection.
type Options struct {
	// RunID tags logs and the result; a random id is assigned when empty.
	RunID       string
	SampleLimit int
	TopN        int
	// DisableDA drops the DA bucket, folding its departments back into Inbound.
	DisableDA bool
	Logger    *zap.Logger
}

// Process loads the inputs and runs the full reconciliation:
//  1. Assign a run id
//  2. Read and parse the feeds in parallel
//  3. Reconcile against the settings
//  4. Compile the report, audit panel and export rows
//
// settings is never modified; every call works on freshly parsed data.
func Process(ctx context.Context, settings config.Settings, in Inputs, sel engine.Selection, opts Options) (*report.Result, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	log := logging.OrNop(opts.Logger).With(zap.String("run_id", opts.RunID))
	opts.Logger = log

	loaded, err := Load(ctx, in)
	if err != nil {
		log.Error("failed to load inputs", zap.Error(err))
		return nil, err
	}
	log.Debug("inputs loaded",
		zap.Int("roster_rows", loaded.Feeds.Roster.Len()),
		zap.Int("time_feed_rows", loaded.Feeds.Attendance.Len()),
		zap.Int("leave_rows", loaded.Feeds.Leave.Len()),
		zap.Bool("leave_feed", loaded.Feeds.Leave != nil),
	)

	return Run(settings, loaded, sel, opts)
}

// Run reconciles feeds that are already parsed. Process is the usual entry
// point; Run serves callers that parsed the feeds themselves.
func Run(settings config.Settings, loaded *Loaded, sel engine.Selection, opts Options) (*report.Result, error) {
	start := time.Now()
	log := logging.OrNop(opts.Logger)
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.DisableDA {
		settings = settings.WithoutBucket(config.BucketDA)
	}

	outcome, err := engine.Reconcile(settings, loaded.Feeds, sel)
	if err != nil {
		log.Error("reconciliation failed", zap.Error(err))
		return nil, err
	}
	log.Debug("reconciled",
		zap.Strings("codes", outcome.Codes),
		zap.Int("after_corner", outcome.Funnel.AfterCorner),
		zap.Int("after_new_hire", outcome.Funnel.AfterNewHire),
		zap.Int("after_vacation", outcome.Funnel.AfterVacation),
		zap.Int("unbucketed", outcome.Funnel.Unbucketed),
	)

	result := report.Build(outcome, report.Options{
		RunID:       opts.RunID,
		SampleLimit: opts.SampleLimit,
		TopN:        opts.TopN,
		Warnings:    loaded.Warnings,
	})

	for _, w := range result.Warnings {
		log.Warn(w)
	}
	if n := result.Audit.Unrostered.Count; n > 0 {
		log.Warn("present ids missing from roster", zap.Int("count", n))
	}

	log.Info("run complete",
		zap.String("day", result.Day),
		zap.String("shift", result.Shift),
		zap.Int("expected_total", result.ExpectedTotal.Total),
		zap.Int("present_total", result.PresentTotal.Total),
		zap.String("percent", result.Percent),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// LoadTables is a convenience for callers holding parsed tables directly.
func LoadTables(roster, attendance, leave *schema.Table) *Loaded {
	return &Loaded{Feeds: engine.Feeds{Roster: roster, Attendance: attendance, Leave: leave}}
}
