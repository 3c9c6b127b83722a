package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSettings = `{
  "departments": {"Inbound": {"dept_ids": ["1211010"]}},
  "shift_schedule": {"Day": {"Monday": ["AM", "BM"]}}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCodesCommand(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "settings.json", testSettings)
	cfg := filepath.Join(dir, "missing.toml")

	out, err := execute(t, "codes", "--config", cfg, "--settings", settings, "--date", "2024-01-01", "--shift", "Day")
	require.NoError(t, err)
	assert.Equal(t, "Shifts for Monday - Day: AM BM\n", out)

	out, err = execute(t, "codes", "--config", cfg, "--settings", settings, "--date", "2024-01-02", "--shift", "Day")
	require.NoError(t, err)
	assert.Equal(t, "No shift codes configured for Day on Tuesday (shifts: Day)\n", out)

	_, err = execute(t, "codes", "--config", cfg, "--settings", settings, "--date", "01/02/2024")
	assert.ErrorContains(t, err, "invalid --date")
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, dir, "settings.json", testSettings)
	roster := writeFile(t, dir, "roster.csv", "Employee ID,Department ID,Employment Type,Shift Pattern\n1,1211010,Full Time,AM1X\n2,1211010,Seasonal,BM1X\n")
	mytime := writeFile(t, dir, "mytime.csv", "Report\nPerson ID,On Premises\n1,X\n2,\n")
	exportDir := filepath.Join(dir, "out")

	out, err := execute(t, "run", "--config", filepath.Join(dir, "missing.toml"), "--settings", settings,
		"--roster", roster, "--mytime", mytime, "--date", "2024-01-01", "--shift", "Day", "--export", exportDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Inbound")
	assert.Contains(t, out, "50.0%")

	assert.FileExists(t, filepath.Join(exportDir, "audit_Monday_Day.csv"))
	assert.FileExists(t, filepath.Join(exportDir, "audit_Monday_Day.xlsx"))
}
