//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/katpally123/attendance-dashboard/pkg/config"
	"github.com/katpally123/attendance-dashboard/pkg/engine"
	"github.com/katpally123/attendance-dashboard/pkg/pipeline"
	"github.com/katpally123/attendance-dashboard/pkg/report"
)

// NOTE: Each page loads its own WASM instance. The settings document is parsed
// once by headcountLoadSettings and kept for the lifetime of the instance;
// every headcountProcess call works on freshly parsed feeds.

var globalSettings *config.Settings

// processOptions is the JSON shape of the last headcountProcess argument.
type processOptions struct {
	Date            string `json:"date"`
	Shift           string `json:"shift"`
	ExcludeNewHires bool   `json:"excludeNewHires"`
	DisableDA       bool   `json:"disableDA"`
	SampleLimit     int    `json:"sampleLimit"`
}

func errorJSON(msg string) string {
	errJSON, _ := json.Marshal(map[string]string{"error": msg})
	return string(errJSON)
}

func copyBytes(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

// loadSettings handles the headcountLoadSettings JS function call.
// args[0] = string (settings.json contents)
func loadSettings(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorJSON("loadSettings requires 1 argument: settings JSON")
	}
	settings, err := config.ParseSettings([]byte(args[0].String()))
	if err != nil {
		return errorJSON(err.Error())
	}
	globalSettings = &settings
	return `{"ok": true}`
}

// shiftCodes handles the headcountShiftCodes JS function call.
// args[0] = string (YYYY-MM-DD), args[1] = string (shift name)
func shiftCodes(this js.Value, args []js.Value) interface{} {
	if globalSettings == nil {
		return errorJSON("settings not loaded yet; call headcountLoadSettings() first")
	}
	if len(args) < 2 {
		return errorJSON("shiftCodes requires 2 arguments: date and shift")
	}
	date, err := time.Parse("2006-01-02", args[0].String())
	if err != nil {
		return errorJSON("pick a date")
	}
	sel := engine.Selection{Date: date, Shift: args[1].String()}

	resultJSON, _ := json.Marshal(map[string]interface{}{
		"day":   sel.DayName(),
		"shift": sel.Shift,
		"codes": globalSettings.CodesFor(sel.Shift, sel.DayName()),
	})
	return string(resultJSON)
}

// process handles the headcountProcess JS function call.
// args[0] = Uint8Array (roster bytes),   args[1] = string (roster file name)
// args[2] = Uint8Array (time feed bytes), args[3] = string (time feed file name)
// args[4] = Uint8Array or null (leave bytes), args[5] = string (leave file name)
// args[6] = string (options JSON)
// Returns: JSON string of the full result plus "auditCsv" with the export table.
func process(this js.Value, args []js.Value) interface{} {
	if globalSettings == nil {
		return errorJSON("settings not loaded yet; call headcountLoadSettings() first")
	}
	if len(args) < 7 {
		return errorJSON("process requires 7 arguments: roster, rosterName, mytime, mytimeName, vacation, vacationName, optionsJSON")
	}

	var opts processOptions
	if err := json.Unmarshal([]byte(args[6].String()), &opts); err != nil {
		return errorJSON("invalid options: " + err.Error())
	}
	date, err := time.Parse("2006-01-02", opts.Date)
	if err != nil {
		return errorJSON("pick a date")
	}

	inputs := pipeline.Inputs{
		Roster:     pipeline.BytesSource(args[1].String(), copyBytes(args[0])),
		Attendance: pipeline.BytesSource(args[3].String(), copyBytes(args[2])),
	}
	if !args[4].IsNull() && !args[4].IsUndefined() {
		inputs.Leave = pipeline.BytesSource(args[5].String(), copyBytes(args[4]))
	}

	sel := engine.Selection{Date: date, Shift: opts.Shift, ExcludeNewHires: opts.ExcludeNewHires}
	result, err := pipeline.Process(context.Background(), *globalSettings, inputs, sel, pipeline.Options{
		SampleLimit: opts.SampleLimit,
		DisableDA:   opts.DisableDA,
	})
	if err != nil {
		return errorJSON(err.Error())
	}

	var csvBuf bytes.Buffer
	if err := report.WriteCSV(&csvBuf, result.Export); err != nil {
		return errorJSON(err.Error())
	}

	resultJSON, _ := json.Marshal(map[string]interface{}{
		"result":        result,
		"auditCsv":      csvBuf.String(),
		"auditFilename": report.ExportFilename(result.Day, result.Shift) + ".csv",
	})
	return string(resultJSON)
}

func main() {
	js.Global().Set("headcountLoadSettings", js.FuncOf(loadSettings))
	js.Global().Set("headcountShiftCodes", js.FuncOf(shiftCodes))
	js.Global().Set("headcountProcess", js.FuncOf(process))

	// Block forever so the callbacks stay registered
	select {}
}
