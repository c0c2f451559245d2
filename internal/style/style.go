// Package style holds the presentation settings shared by the consumers of the directory listing.
package style

import (
	"fmt"
	"slices"

	"github.com/nginx/state-observer/pkg/observer"
)

// Palette is a named set of colors, in any format lipgloss accepts ("#rrggbb" or an ANSI color number).
type Palette struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	Accent     string `json:"accent"`
	Dim        string `json:"dim"`
}

// Column is a column of the directory listing.
type Column string

const (
	// ColumnName shows the file name.
	ColumnName Column = "name"
	// ColumnSize shows the file size.
	ColumnSize Column = "size"
	// ColumnMode shows the file mode.
	ColumnMode Column = "mode"
	// ColumnModTime shows the modification time.
	ColumnModTime Column = "modTime"
)

// Style is the current presentation of the listing.
type Style struct {
	// PaletteName is the name of the active palette.
	PaletteName string
	// Columns are the visible columns, in display order.
	Columns []Column
	// Palette is the active palette.
	Palette Palette
}

// DefaultPalettes are the palettes every Model starts with.
func DefaultPalettes() map[string]Palette {
	return map[string]Palette{
		"dark": {
			Foreground: "#e0e0e0",
			Background: "#1e1e1e",
			Accent:     "#5fafff",
			Dim:        "#808080",
		},
		"light": {
			Foreground: "#202020",
			Background: "#fafafa",
			Accent:     "#005fd7",
			Dim:        "#8a8a8a",
		},
		"mono": {
			Foreground: "7",
			Background: "0",
			Accent:     "15",
			Dim:        "8",
		},
	}
}

// DefaultColumns are the columns every Model starts with.
func DefaultColumns() []Column {
	return []Column{ColumnName, ColumnSize, ColumnModTime}
}

// Model owns the palettes and the current Style.
// When the definition of the active palette changes, the current Style follows it.
// Like all observable state, a Model must only be used from one goroutine at a time.
type Model struct {
	palettes         *observer.MapSubject[string, Palette]
	current          *observer.ValueSubject[Style]
	palettesObserver *observer.MapObserver[string, Palette]
}

// NewModel creates a new Model with the DefaultPalettes. The palette named paletteName is active.
func NewModel(paletteName string, opts ...observer.Option) (*Model, error) {
	palettes := DefaultPalettes()

	p, ok := palettes[paletteName]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", paletteName)
	}

	m := &Model{
		palettes: observer.NewMapSubject(palettes, withName(opts, "palettes")...),
		current: observer.NewValueSubjectDeep(
			Style{
				PaletteName: paletteName,
				Palette:     p,
				Columns:     DefaultColumns(),
			},
			withName(opts, "style")...,
		),
	}

	m.palettesObserver = observer.NewMapObserver(m.palettes, m.palettesChanged, observer.Suppress)

	return m, nil
}

// Palettes returns the subject holding the palettes by name.
func (m *Model) Palettes() *observer.MapSubject[string, Palette] {
	return m.palettes
}

// Style returns the subject holding the current Style.
func (m *Model) Style() *observer.ValueSubject[Style] {
	return m.current
}

// SetPalette activates the palette with the given name.
func (m *Model) SetPalette(name string) error {
	p, ok := m.palettes.Item(name)
	if !ok {
		return fmt.Errorf("unknown palette %q", name)
	}

	s := m.current.Get()
	s.PaletteName = name
	s.Palette = p
	m.current.SetIfChanged(s)

	return nil
}

// NextPalette activates the palette that follows the active one in name order, wrapping around.
func (m *Model) NextPalette() {
	names := observer.SortedKeys(m.palettes)
	if len(names) == 0 {
		return
	}

	idx := slices.Index(names, m.current.Get().PaletteName)
	next := names[(idx+1)%len(names)]

	// the name comes from the palettes, so it is known
	_ = m.SetPalette(next)
}

// SetColumns sets the visible columns.
func (m *Model) SetColumns(columns []Column) {
	s := m.current.Get()
	s.Columns = slices.Clone(columns)
	m.current.SetIfChanged(s)
}

// Close releases the Model's own subscription to its palettes.
func (m *Model) Close() {
	m.palettesObserver.Close()
}

func (m *Model) palettesChanged(palettes map[string]Palette) {
	s := m.current.Get()

	p, ok := palettes[s.PaletteName]
	if !ok {
		// the active palette was removed; keep its colors until another one is chosen
		return
	}

	s.Palette = p
	m.current.SetIfChanged(s)
}

func withName(opts []observer.Option, name string) []observer.Option {
	return append(slices.Clone(opts), observer.WithName(name))
}
