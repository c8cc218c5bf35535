package simconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/mock-api-kit/pkg/calllog"
	"github.com/cecil-the-coder/mock-api-kit/pkg/complexity"
	"github.com/cecil-the-coder/mock-api-kit/pkg/errormode"
)

// restoreDefaults snapshots the package singletons Apply mutates and restores
// them when the test finishes.
func restoreDefaults(t *testing.T) {
	t.Helper()

	runtimeID := calllog.RuntimeID()
	complexityPath := complexity.Default.OutputPath()

	t.Cleanup(func() {
		errormode.ResetGlobalMode()
		calllog.SetRuntimeID(runtimeID)
		calllog.SetOutputDir(calllog.DefaultOutputDir)
		calllog.Default.SetFileName(calllog.DefaultFileName)
		complexity.SetOutputPath(complexityPath)
		os.Unsetenv(errormode.EnvPrintReports)
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
error_handling:
  default_mode: error_dict
  print_reports: true
logging:
  dir: ./out
  call_log: session.log
  complexity_log: sizes.log
runtime_id: run-7
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error_dict", cfg.ErrorHandling.DefaultMode)
	require.NotNil(t, cfg.ErrorHandling.PrintReports)
	assert.True(t, *cfg.ErrorHandling.PrintReports)
	assert.Equal(t, "./out", cfg.Logging.Dir)
	assert.Equal(t, "session.log", cfg.Logging.CallLog)
	assert.Equal(t, "sizes.log", cfg.Logging.ComplexityLog)
	assert.Equal(t, "run-7", cfg.RuntimeID)
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Empty(t, cfg.ErrorHandling.DefaultMode)
	assert.Nil(t, cfg.ErrorHandling.PrintReports)
	assert.Equal(t, "simlogs", cfg.Logging.Dir)
	assert.Equal(t, calllog.DefaultFileName, cfg.Logging.CallLog)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "error_handling: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestApply(t *testing.T) {
	restoreDefaults(t)

	dir := t.TempDir()
	cfg := &Config{
		ErrorHandling: ErrorHandlingConfig{DefaultMode: "error_dict"},
		Logging: LoggingConfig{
			Dir:           dir,
			CallLog:       "calls.log",
			ComplexityLog: "complexity.log",
		},
		RuntimeID: "run-9",
	}

	require.NoError(t, cfg.Apply())

	assert.Equal(t, errormode.ModeErrorDict, errormode.GetMode())
	assert.Equal(t, "run-9", calllog.RuntimeID())
	assert.Equal(t, filepath.Join(dir, "calls.log"), calllog.Default.Path())
	assert.Equal(t, filepath.Join(dir, "complexity.log"), complexity.Default.OutputPath())
}

func TestApply_InvalidModeChangesNothing(t *testing.T) {
	restoreDefaults(t)

	require.NoError(t, errormode.SetGlobalMode("raise"))
	before := calllog.RuntimeID()

	cfg := &Config{
		ErrorHandling: ErrorHandlingConfig{DefaultMode: "bogus"},
		RuntimeID:     "should-not-apply",
	}

	err := cfg.Apply()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid error mode")
	assert.Equal(t, errormode.ModeRaise, errormode.GetMode())
	assert.Equal(t, before, calllog.RuntimeID())
}

func boolPtr(b bool) *bool { return &b }

func TestApply_PrintReportsExportsEnv(t *testing.T) {
	restoreDefaults(t)

	cfg := DefaultConfig()
	cfg.ErrorHandling.PrintReports = boolPtr(true)
	require.NoError(t, cfg.Apply())

	assert.True(t, errormode.GetPrintReports())
}

func TestApply_PrintReportsFalseTurnsReportingOff(t *testing.T) {
	restoreDefaults(t)

	on := DefaultConfig()
	on.ErrorHandling.PrintReports = boolPtr(true)
	require.NoError(t, on.Apply())
	require.True(t, errormode.GetPrintReports())

	off := DefaultConfig()
	off.ErrorHandling.PrintReports = boolPtr(false)
	require.NoError(t, off.Apply())
	assert.False(t, errormode.GetPrintReports())
}

func TestApply_PrintReportsAbsentLeavesEnvAlone(t *testing.T) {
	restoreDefaults(t)
	t.Setenv(errormode.EnvPrintReports, "true")

	require.NoError(t, DefaultConfig().Apply())
	assert.True(t, errormode.GetPrintReports())
}
