// Package report renders run listings for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/augmentlab/ftkit/internal/runs"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorEnabled decides whether output to w is coloured. force wins over
// noColor, which wins over the TTY check done in auto mode.
func ColorEnabled(mode string, force, noColor bool, w io.Writer) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto, "":
	default:
		return false, fmt.Errorf("invalid color mode %q (want %s, %s or %s)", mode, ColorAuto, ColorAlways, ColorNever)
	}
	if force {
		return true, nil
	}
	if noColor {
		return false, nil
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())), nil
}

var styleAttrs = map[runs.Style][]color.Attribute{
	runs.StyleGreen:   {color.FgGreen},
	runs.StyleMagenta: {color.FgMagenta},
	runs.StyleBlue:    {color.FgBlue},
	runs.StyleYellow:  {color.FgYellow},
	runs.StyleRed:     {color.FgRed},
}

// Painter colours strings by style.
type Painter struct {
	enabled bool
	colors  map[runs.Style]*color.Color
}

// NewPainter creates a Painter. A disabled painter returns its input.
func NewPainter(enabled bool) *Painter {
	p := &Painter{enabled: enabled, colors: map[runs.Style]*color.Color{}}
	for style, attrs := range styleAttrs {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		p.colors[style] = c
	}
	return p
}

// Paint wraps s in the escape codes of style.
func (p *Painter) Paint(style runs.Style, s string) string {
	c, ok := p.colors[style]
	if !ok {
		return s
	}
	return c.Sprint(s)
}

var headers = []string{"Model", "Cost", "Created At", "Status"}

// Table writes rows as a bordered, left-aligned table.
func Table(w io.Writer, rows []runs.Row, p *Painter) error {
	cells := make([][]string, len(rows))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for i, r := range rows {
		cells[i] = []string{r.DisplayName, r.Cost, r.Created, string(r.Job.Status)}
		for j, c := range cells[i] {
			if cw := runewidth.StringWidth(c); cw > widths[j] {
				widths[j] = cw
			}
		}
	}

	var sb strings.Builder
	border := borderLine(widths)
	sb.WriteString(border)
	writeRow(&sb, headers, widths, func(s string) string { return s })
	sb.WriteString(border)
	for i, r := range rows {
		style := r.Style
		writeRow(&sb, cells[i], widths, func(s string) string { return p.Paint(style, s) })
	}
	if len(rows) > 0 {
		sb.WriteString(border)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func borderLine(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
	return sb.String()
}

func writeRow(sb *strings.Builder, cells []string, widths []int, paint func(string) string) {
	sb.WriteString("|")
	for i, c := range cells {
		sb.WriteString(" ")
		sb.WriteString(paint(padRight(c, widths[i])))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// Summary writes a one-line total of jobs and estimated training tokens.
func Summary(w io.Writer, rows []runs.Row) error {
	var tokens, cost float64
	for _, r := range rows {
		tokens += r.EstimatedTokens
		cost += r.EstimatedCost
	}
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w, "%d jobs, %d estimated training tokens, %s total\n", len(rows), int64(tokens), runs.FormatCost(cost))
	return err
}

// SyncSuggestions writes the suggestions as one ;-separated command line.
func SyncSuggestions(w io.Writer, suggestions []string) error {
	_, err := fmt.Fprintln(w, strings.Join(suggestions, ";"))
	return err
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, r *runs.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
