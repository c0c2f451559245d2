// Package printer writes every snapshot of a directory listing to an io.Writer.
package printer

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	jsoniter "github.com/json-iterator/go"
	"sigs.k8s.io/yaml"

	"github.com/nginx/state-observer/internal/dirwatch"
	"github.com/nginx/state-observer/internal/framework/helpers"
	"github.com/nginx/state-observer/pkg/observer"
)

// Format is the output format of a Printer.
type Format string

const (
	// FormatYAML writes every snapshot as a YAML document.
	FormatYAML Format = "yaml"
	// FormatJSON writes every snapshot as one line of JSON.
	FormatJSON Format = "json"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q; must be one of: %s, %s", s, FormatYAML, FormatJSON)
	}
}

// Snapshot is the document written for every change.
type Snapshot struct {
	Files []dirwatch.FileInfo `json:"files"`
	Seq   int                 `json:"seq"`
}

// Printer observes a directory listing and writes it on every change.
type Printer struct {
	out      io.Writer
	logger   logr.Logger
	observer *observer.MapObserver[string, dirwatch.FileInfo]
	format   Format
	seq      int
}

// New creates a new Printer. It writes the current listing right away and then every change.
// New must be called from the goroutine that owns files.
func New(
	files *observer.MapSubject[string, dirwatch.FileInfo],
	out io.Writer,
	format Format,
	logger logr.Logger,
) (*Printer, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	p := &Printer{
		out:    out,
		logger: logger,
		format: format,
	}

	p.observer = observer.NewMapObserver(files, p.print, observer.Trigger)

	return p, nil
}

// Close stops printing.
func (p *Printer) Close() {
	p.observer.Close()
}

func (p *Printer) print(files map[string]dirwatch.FileInfo) {
	p.seq++

	snapshot := Snapshot{
		Files: helpers.ValuesSortedByKey(files),
		Seq:   p.seq,
	}

	data, err := p.marshal(snapshot)
	if err != nil {
		p.logger.Error(err, "Failed to marshal snapshot", "seq", p.seq)
		return
	}

	if _, err := p.out.Write(data); err != nil {
		p.logger.Error(err, "Failed to write snapshot", "seq", p.seq)
	}
}

func (p *Printer) marshal(snapshot Snapshot) ([]byte, error) {
	switch p.format {
	case FormatJSON:
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		data, err := yaml.Marshal(snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return append([]byte("---\n"), data...), nil
	}
}
