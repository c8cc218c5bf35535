// Package simconfig loads the framework's YAML configuration and applies it
// to the process-wide interception state: the global error mode, the log
// locations and the runtime id. It exists so harnesses configure a run from
// one file instead of scattering setter calls.
//
// The standard config.yaml format:
//
//	error_handling:
//	  default_mode: raise
//	  print_reports: false
//	logging:
//	  dir: ./simlogs
//	  call_log: calls.log
//	  complexity_log: complexity.log
//	runtime_id: ""
package simconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cecil-the-coder/mock-api-kit/pkg/calllog"
	"github.com/cecil-the-coder/mock-api-kit/pkg/complexity"
	"github.com/cecil-the-coder/mock-api-kit/pkg/errormode"
	"gopkg.in/yaml.v3"
)

// Config represents the complete framework configuration.
type Config struct {
	ErrorHandling ErrorHandlingConfig `yaml:"error_handling,omitempty"`
	Logging       LoggingConfig       `yaml:"logging,omitempty"`

	// RuntimeID overrides the generated session tag when non-empty.
	RuntimeID string `yaml:"runtime_id,omitempty"`
}

// ErrorHandlingConfig configures the mode resolver.
type ErrorHandlingConfig struct {
	// DefaultMode becomes the global override when non-empty. It must be
	// "raise" or "error_dict".
	DefaultMode string `yaml:"default_mode,omitempty"`

	// PrintReports mirrors the PRINT_ERROR_REPORTS environment flag. Nil
	// means the config does not mention it and Apply leaves the variable
	// alone; an explicit true or false is exported so re-applying a config
	// can turn reporting off as well as on.
	PrintReports *bool `yaml:"print_reports,omitempty"`
}

// LoggingConfig configures the call and complexity log locations.
type LoggingConfig struct {
	Dir           string `yaml:"dir,omitempty"`
	CallLog       string `yaml:"call_log,omitempty"`
	ComplexityLog string `yaml:"complexity_log,omitempty"`
}

// DefaultConfig returns the configuration Apply would use for an empty file.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Dir:           "simlogs",
			CallLog:       calllog.DefaultFileName,
			ComplexityLog: "complexity.log",
		},
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Apply wires the configuration into the package singletons. The mode string
// is validated before anything mutates, so an invalid config changes no
// state at all.
func (c *Config) Apply() error {
	if c.ErrorHandling.DefaultMode != "" {
		// SetGlobalMode validates before it mutates, so a bad mode string
		// aborts Apply with no state touched.
		if err := errormode.SetGlobalMode(c.ErrorHandling.DefaultMode); err != nil {
			return err
		}
	}
	if c.ErrorHandling.PrintReports != nil {
		if err := os.Setenv(errormode.EnvPrintReports, strconv.FormatBool(*c.ErrorHandling.PrintReports)); err != nil {
			return err
		}
	}

	if c.Logging.Dir != "" {
		calllog.SetOutputDir(c.Logging.Dir)
	}
	if c.Logging.CallLog != "" {
		calllog.Default.SetFileName(c.Logging.CallLog)
	}
	if c.Logging.ComplexityLog != "" {
		dir := c.Logging.Dir
		if dir == "" {
			dir = "simlogs"
		}
		complexity.SetOutputPath(filepath.Join(dir, c.Logging.ComplexityLog))
	}

	if c.RuntimeID != "" {
		calllog.SetRuntimeID(c.RuntimeID)
	}

	return nil
}
