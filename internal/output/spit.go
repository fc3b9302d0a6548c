// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/clstrctl/internal/config"
	"github.com/tfctl/clstrctl/internal/filters"
	"github.com/tfctl/clstrctl/internal/log"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml"}

// Options controls how Spit renders a dataset.
type Options struct {
	Format  string
	Filter  string
	Sort    string
	Titles  bool
	Color   bool
	Padding int
	Header  string
}

// OptionsFromCommand reads the output flags shared by the listing commands.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Format:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: cmd.Int("padding"),
	}
}

// InterfaceToString converts a decoded JSON value to display text. nil and
// "" become emptyValue (default ""). Numbers print without a fraction.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch v := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if v == "" {
			return emptyValue[0]
		}
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// Spit decodes raw, a JSON array of objects, filters and sorts it and writes it to w in
// opts.Format. columns selects and orders the text table columns. Any
// postProcess funcs run on the sorted rows before text rendering only, so
// json and yaml keep raw values.
func Spit(raw []byte, columns []string, opts Options, w io.Writer, postProcess ...func([]map[string]interface{})) error {
	if w == nil {
		w = os.Stdout
	}

	var rows []map[string]interface{}
	gjson.ParseBytes(raw).ForEach(func(_, row gjson.Result) bool {
		if m, ok := row.Value().(map[string]interface{}); ok {
			rows = append(rows, m)
		}
		return true
	})
	log.Debugf("spit: rows=%d format=%s filter=%q sort=%q", len(rows), opts.Format, opts.Filter, opts.Sort)

	rows = filters.FilterRows(rows, opts.Filter)
	SortDataset(rows, opts.Sort)

	switch opts.Format {
	case "json":
		if rows == nil {
			rows = []map[string]interface{}{}
		}
		b, err := json.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal json output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(rows)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml output: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		for _, pp := range postProcess {
			pp(rows)
		}
		return TableWriter(rows, columns, opts, w)
	}
}

// TableWriter renders rows as an unbordered table, honoring titles, color
// and padding.
func TableWriter(rows []map[string]interface{}, columns []string, opts Options, w io.Writer) error {
	if len(rows) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")
		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(columns))
		for _, col := range columns {
			line = append(line, InterfaceToString(row[col], "-"))
		}
		cells = append(cells, line)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(opts.Padding)
			}
			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(columns...).BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, t)
	return err
}

// getColors resolves the title, even-row and odd-row colors from config,
// falling back to defaults picked for the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	// Only a terminal can answer the background query.
	isDark := true
	if term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd())) {
		isDark = lipgloss.HasDarkBackground(os.Stdin, os.Stdout)
	}

	resolve := func(key, light, dark string) color.Color {
		if c, err := config.GetString(key); err == nil {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolve(key+".title", "#b08800", "#f6be00")
	even = resolve(key+".even", "#333333", "#ffffff")
	odd = resolve(key+".odd", "#0088a0", "#00c8f0")
	return
}
