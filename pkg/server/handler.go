package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/katpally123/attendance-dashboard/pkg/config"
	"github.com/katpally123/attendance-dashboard/pkg/engine"
	"github.com/katpally123/attendance-dashboard/pkg/logging"
	"github.com/katpally123/attendance-dashboard/pkg/pipeline"
	"github.com/katpally123/attendance-dashboard/pkg/report"
)

const dateLayout = "2006-01-02"

// SettingsFunc returns the settings document. It is called per request so a
// document that failed to load surfaces as an error on every run.
type SettingsFunc func() (config.Settings, error)

// Handler serves the upload API.
type Handler struct {
	settings SettingsFunc
	run      config.RunConfig
	log      *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(settings SettingsFunc, run config.RunConfig, log *zap.Logger) *Handler {
	return &Handler{settings: settings, run: run, log: logging.OrNop(log)}
}

// RegisterRoutes registers the API routes on router.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/process", h.Process)
	router.GET("/shift-codes", h.ShiftCodes)
}

// Process runs one reconciliation over uploaded files.
// POST /api/process
//
// Form fields: roster, mytime (files, required), vacation (file, optional),
// date (YYYY-MM-DD), shift, exclude_new_hires, format (json|csv|xlsx).
func (h *Handler) Process(c *gin.Context) {
	settings, err := h.settings()
	if err != nil {
		h.fail(c, err)
		return
	}

	dateValue := c.PostForm("date")
	if dateValue == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pick a date"})
		return
	}
	date, err := time.Parse(dateLayout, dateValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", dateValue)})
		return
	}

	format := strings.ToLower(c.DefaultPostForm("format", "json"))
	if format != "json" && format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format %q", format)})
		return
	}

	inputs := pipeline.Inputs{
		Roster:     formSource(c, "roster"),
		Attendance: formSource(c, "mytime"),
		Leave:      formSource(c, "vacation"),
	}
	if inputs.Roster == nil || inputs.Attendance == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload both the roster and the time feed"})
		return
	}

	sel := engine.Selection{
		Date:            date,
		Shift:           c.DefaultPostForm("shift", h.run.DefaultShift),
		ExcludeNewHires: formBool(c, "exclude_new_hires", h.run.ExcludeNewHires),
		NewHireDays:     h.run.NewHireDays,
	}

	result, err := pipeline.Process(c.Request.Context(), settings, inputs, sel, pipeline.Options{
		SampleLimit: h.run.SampleLimit,
		TopN:        h.run.TopN,
		DisableDA:   h.run.DisableDA,
		Logger:      h.log,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	filename := report.ExportFilename(result.Day, result.Shift)
	switch format {
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		if err := report.WriteCSV(c.Writer, result.Export); err != nil {
			h.log.Error("failed to write csv export", zap.Error(err))
		}
	case "xlsx":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := report.WriteXLSX(c.Writer, result); err != nil {
			h.log.Error("failed to write xlsx export", zap.Error(err))
		}
	default:
		c.JSON(http.StatusOK, result)
	}
}

// ShiftCodes previews the corner codes for a date and shift.
// GET /api/shift-codes?date=YYYY-MM-DD&shift=Day
func (h *Handler) ShiftCodes(c *gin.Context) {
	settings, err := h.settings()
	if err != nil {
		h.fail(c, err)
		return
	}

	date := time.Now().UTC()
	if v := c.Query("date"); v != "" {
		if date, err = time.Parse(dateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", v)})
			return
		}
	}
	sel := engine.Selection{Date: date, Shift: c.DefaultQuery("shift", h.run.DefaultShift)}

	c.JSON(http.StatusOK, gin.H{
		"date":   date.Format(dateLayout),
		"day":    sel.DayName(),
		"shift":  sel.Shift,
		"codes":  settings.CodesFor(sel.Shift, sel.DayName()),
		"shifts": settings.Shifts(),
	})
}

// fail maps pipeline errors to a status code: a settings document that could
// not be loaded is a server fault, everything else traces back to the upload
// or selection.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, config.ErrConfigUnavailable) {
		status = http.StatusInternalServerError
	}
	h.log.Warn("request failed", zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": err.Error()})
}

func formSource(c *gin.Context, field string) *pipeline.Source {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return &pipeline.Source{
		Name: fh.Filename,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

func formBool(c *gin.Context, field string, fallback bool) bool {
	v, ok := c.GetPostForm(field)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return v == "on"
	}
	return b
}
