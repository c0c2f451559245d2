// Package tui shows the directory listing in the terminal. The Browser is a plain consumer of the observable state:
// it learns about the directory and the style only through its observers.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nginx/state-observer/internal/dirwatch"
	"github.com/nginx/state-observer/internal/framework/helpers"
	"github.com/nginx/state-observer/internal/style"
	"github.com/nginx/state-observer/pkg/observer"
)

const (
	nameWidth    = 40
	sizeWidth    = 10
	modeWidth    = 12
	timeLayout   = "2006-01-02 15:04"
	chromeHeight = 4 // title, header, blank line, help
)

type filesMsg []dirwatch.FileInfo

type styleMsg style.Style

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Binding keeps a program up to date with the directory listing and the style.
type Binding struct {
	files *observer.MapObserver[string, dirwatch.FileInfo]
	style *observer.ValueObserver[style.Style]
}

// Bind subscribes the sender to files and styles. Both send their current state right away.
// Bind must be called from the goroutine that owns the subjects, and Close as well.
func Bind(
	sender Sender,
	files *observer.MapSubject[string, dirwatch.FileInfo],
	styles *observer.ValueSubject[style.Style],
) *Binding {
	return &Binding{
		files: observer.NewMapObserver(files, func(m map[string]dirwatch.FileInfo) {
			sender.Send(filesMsg(helpers.ValuesSortedByKey(m)))
		}, observer.Trigger),
		style: observer.NewValueObserver(styles, func(s style.Style) {
			sender.Send(styleMsg(s))
		}, observer.Trigger),
	}
}

// Close ends both subscriptions.
func (b *Binding) Close() {
	b.files.Close()
	b.style.Close()
}

// Browser is the bubbletea model of the directory listing.
type Browser struct {
	nextPalette func()
	dir         string
	files       []dirwatch.FileInfo
	style       style.Style
	cursor      int
	offset      int
	height      int
}

// NewBrowser creates a new Browser for dir. nextPalette is called, outside of the program's goroutine, when the user
// asks for the next palette.
func NewBrowser(dir string, nextPalette func()) Browser {
	return Browser{
		nextPalette: nextPalette,
		dir:         dir,
		style: style.Style{
			Palette: style.DefaultPalettes()["mono"],
			Columns: style.DefaultColumns(),
		},
	}
}

func (b Browser) Init() tea.Cmd {
	return nil
}

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case filesMsg:
		b.files = msg
		b.cursor = min(b.cursor, max(len(b.files)-1, 0))
	case styleMsg:
		b.style = style.Style(msg)
	case tea.WindowSizeMsg:
		b.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if b.cursor < len(b.files)-1 {
				b.cursor++
			}
		case "p":
			if b.nextPalette != nil {
				next := b.nextPalette
				return b, func() tea.Msg {
					next()
					return nil
				}
			}
		}
	}

	b.scroll()

	return b, nil
}

// scroll keeps the cursor inside the visible rows.
func (b *Browser) scroll() {
	rows := b.visibleRows()
	if rows <= 0 {
		b.offset = 0
		return
	}

	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+rows {
		b.offset = b.cursor - rows + 1
	}
}

func (b Browser) visibleRows() int {
	if b.height == 0 {
		return len(b.files)
	}
	return b.height - chromeHeight
}

func (b Browser) View() string {
	p := b.style.Palette

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent))
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Foreground))
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Foreground))
	dirStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Background)).
		Background(lipgloss.Color(p.Accent))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim))

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(b.dir))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %d entries  palette: %s", len(b.files), b.style.PaletteName)))
	sb.WriteString("\n")

	header := make([]string, 0, len(b.style.Columns))
	for _, c := range b.style.Columns {
		header = append(header, pad(columnTitle(c), columnWidth(c)))
	}
	sb.WriteString(headerStyle.Render(strings.Join(header, " ")))
	sb.WriteString("\n")

	end := min(b.offset+b.visibleRows(), len(b.files))
	for i := b.offset; i < end; i++ {
		f := b.files[i]

		cells := make([]string, 0, len(b.style.Columns))
		for _, c := range b.style.Columns {
			cells = append(cells, pad(cell(f, c), columnWidth(c)))
		}
		line := strings.Join(cells, " ")

		switch {
		case i == b.cursor:
			line = selectedStyle.Render(line)
		case f.Dir:
			line = dirStyle.Render(line)
		default:
			line = rowStyle.Render(line)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑/↓ move • p palette • q quit"))

	return sb.String()
}

func columnTitle(c style.Column) string {
	switch c {
	case style.ColumnName:
		return "NAME"
	case style.ColumnSize:
		return "SIZE"
	case style.ColumnMode:
		return "MODE"
	case style.ColumnModTime:
		return "MODIFIED"
	default:
		return strings.ToUpper(string(c))
	}
}

func columnWidth(c style.Column) int {
	switch c {
	case style.ColumnName:
		return nameWidth
	case style.ColumnSize:
		return sizeWidth
	case style.ColumnMode:
		return modeWidth
	default:
		return len(timeLayout)
	}
}

func cell(f dirwatch.FileInfo, c style.Column) string {
	switch c {
	case style.ColumnName:
		if f.Dir {
			return f.Name + "/"
		}
		return f.Name
	case style.ColumnSize:
		if f.Dir {
			return "-"
		}
		return humanSize(f.Size)
	case style.ColumnMode:
		return f.Mode
	case style.ColumnModTime:
		return f.ModTime.Format(timeLayout)
	default:
		return ""
	}
}

func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f%c", float64(size)/float64(div), "KMGTPE"[exp])
}
