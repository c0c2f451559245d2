package config

import (
	"io"
	"time"

	"github.com/go-logr/logr"
)

// Output is the way the directory listing is shown.
type Output string

const (
	// OutputYAML prints every snapshot as a YAML document.
	OutputYAML Output = "yaml"
	// OutputJSON prints every snapshot as a line of JSON.
	OutputJSON Output = "json"
	// OutputTUI shows the listing in an interactive terminal browser.
	OutputTUI Output = "tui"
)

type Config struct {
	// Logger is the Zap Logger used by all components.
	Logger logr.Logger
	// Out receives the printed snapshots of the yaml and json outputs.
	Out io.Writer
	// Version is the running version of the observer.
	Version string
	// Dir is the watched directory.
	Dir string
	// Output is the way the listing is shown.
	Output Output
	// Palette is the name of the palette the TUI starts with.
	Palette string
	// MetricsConfig specifies the metrics config.
	MetricsConfig MetricsConfig
	// Period is the time between two scans of Dir.
	Period time.Duration
	// ShowHidden includes entries whose name starts with a dot.
	ShowHidden bool
}

// MetricsConfig specifies the metrics config.
type MetricsConfig struct {
	// Port is the port the metrics should be exposed on.
	Port int
	// Enabled is the flag for toggling metrics on or off.
	Enabled bool
}
