package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/boga881/drupalextension/src/assembly"
	"github.com/boga881/drupalextension/src/container"
)

// Colors for terminal output.
const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// Printer formats and writes assembly results.
type Printer struct {
	Writer io.Writer
	Color  bool
}

// NewPrinter creates a printer writing to w with color auto-detection.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		Writer: w,
		Color:  UseColor(),
	}
}

// Result renders a completed assembly as framed sections: drivers and
// warnings, then every component with its tags and calls, then parameters.
func (p *Printer) Result(res *assembly.Result, elapsed time.Duration) {
	ContextBlock(p.Writer, []KV{
		{Key: "run", Value: res.RunID},
		{Key: "default", Value: res.Record.DefaultDriver},
		{Key: "api", Value: res.Record.APIDriver},
		{Key: "drush", Value: res.Record.DrushDriver},
	})

	sec := NewSection(p.Writer, "Drivers", elapsed, p.Color)
	if len(res.Drivers) == 0 {
		sec.Row("%s", Dimmed("no driver sections", p.Color))
	}
	for _, name := range res.Drivers {
		RowStatus(sec, name, "", "success", p.Color)
	}
	for _, w := range res.Warnings {
		RowStatus(sec, "warning", p.colorize(w, colorYellow), "warning", p.Color)
	}
	sec.Close()

	sec = NewSection(p.Writer, "Components", 0, p.Color)
	for i, def := range res.Registry.Definitions() {
		if i > 0 {
			sec.Separator()
		}
		p.definition(sec, def)
	}
	sec.Close()

	sec = NewSection(p.Writer, "Parameters", 0, p.Color)
	params := res.Registry.Parameters()
	for _, name := range res.Registry.ParameterNames() {
		sec.Row("%-40s %s", name, FormatValue(params[name]))
	}
	sec.Close()
}

func (p *Printer) definition(sec *Section, def container.Definition) {
	sec.Row("%s", p.colorize(def.ID, colorBold))
	if def.Class != "" {
		sec.Row("  %s", Dimmed(def.Class, p.Color))
	}
	for _, name := range def.ParameterNames() {
		sec.Row("  %-14s %s", name, FormatValue(def.Parameters[name]))
	}
	for _, t := range def.Tags {
		sec.Row("  %s %s", p.colorize("#"+t.Name, colorCyan), tagDetail(t))
	}
	for _, c := range def.Calls {
		sec.Row("  → %s(%s)", c.Operation, FormatValue(c.Argument))
	}
}

func tagDetail(t container.Tag) string {
	var parts []string
	if t.Priority != 0 {
		parts = append(parts, fmt.Sprintf("priority=%d", t.Priority))
	}
	for _, k := range sortedAttrKeys(t.Attributes) {
		parts = append(parts, k+"="+t.Attributes[k])
	}
	return strings.Join(parts, " ")
}

func sortedAttrKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatValue renders a parameter value on one line.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "~"
	case fmt.Stringer:
		return t.String()
	case string:
		return fmt.Sprintf("%q", t)
	case bool, int, int64, float64:
		return fmt.Sprint(t)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func (p *Printer) colorize(text, color string) string {
	if !p.Color {
		return text
	}
	return color + text + colorReset
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}

// RowStatus writes a row with label, detail, and a status icon.
func RowStatus(sec *Section, label, detail, status string, color bool) {
	icon := StatusIcon(status, color)
	if detail != "" {
		sec.Row("%s: %s %s", label, detail, icon)
	} else {
		sec.Row("%s %s", label, icon)
	}
}
