package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/nginx/state-observer/internal/mode/watch/config"
	"github.com/nginx/state-observer/internal/style"
)

const minPeriod = 10 * time.Millisecond

var outputs = []config.Output{config.OutputYAML, config.OutputJSON, config.OutputTUI}

func validateDirectory(value string) error {
	if value == "" {
		return errors.New("must be set")
	}

	info, err := os.Stat(value)
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", value)
	}

	return nil
}

func validatePort(port int) error {
	if port < 1024 || port > 65535 {
		return fmt.Errorf("port outside of valid port range [1024 - 65535]: %v", port)
	}
	return nil
}

func validatePeriod(period time.Duration) error {
	if period < minPeriod {
		return fmt.Errorf("period must be at least %s", minPeriod)
	}
	return nil
}

func validateOutput(value string) error {
	if !slices.Contains(outputs, config.Output(value)) {
		names := make([]string, 0, len(outputs))
		for _, o := range outputs {
			names = append(names, string(o))
		}
		return fmt.Errorf("invalid output %q; must be one of: %s", value, strings.Join(names, ", "))
	}
	return nil
}

func validateLogLevel(value string) error {
	switch value {
	case zapcore.DebugLevel.String(), zapcore.InfoLevel.String(), zapcore.ErrorLevel.String():
		return nil
	default:
		return fmt.Errorf(
			"invalid log level %q; must be one of: %s, %s, %s",
			value,
			zapcore.DebugLevel,
			zapcore.InfoLevel,
			zapcore.ErrorLevel,
		)
	}
}

func validatePalette(value string) error {
	palettes := style.DefaultPalettes()
	if _, ok := palettes[value]; !ok {
		names := slices.Sorted(maps.Keys(palettes))
		return fmt.Errorf("unknown palette %q; must be one of: %s", value, strings.Join(names, ", "))
	}
	return nil
}
