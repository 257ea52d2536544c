// Copyright © 2026 The resctl authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/resctl/resctlgo/internal/config"
)

// Spit sorts and renders a result set according to the common flags.
// headers fixes the column order, since the row maps are unordered.
func Spit(resultSet []map[string]interface{},
	headers []string,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	SortDataset(resultSet, cmd.String("sort"))

	switch cmd.String("output") {
	case "json":
		jsonOutput, err := json.Marshal(resultSet)
		if err != nil {
			slog.Error("Spit()", "err", err)
		}
		_, _ = w.Write(jsonOutput)
		fmt.Fprintln(w)
	case "yaml":
		yamlOutput, err := yaml.Marshal(resultSet)
		if err != nil {
			slog.Error("Spit()", "err", err)
		}
		_, _ = w.Write(yamlOutput)
	case "raw":
		// Just the key column, one value per line. For scripting.
		for _, result := range resultSet {
			fmt.Fprintln(w, InterfaceToString(result[headers[0]]))
		}
	default:
		TableWriter(resultSet, headers, cmd, w)
	}
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	headers []string,
	cmd *cli.Command,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if colorEnabled(cmd) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(headers))
		for _, h := range headers {
			row = append(row, InterfaceToString(result[h], "-"))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {

			pad, _ := config.GetInt("padding", 0)

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
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// colorEnabled honors --color but never colors a non-terminal stdout.
func colorEnabled(cmd *cli.Command) bool {
	if !cmd.Bool("color") {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// SortDataset orders the result set in place by a comma-separated attribute
// spec. A leading '-' on an attribute sorts it descending.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}

	type sortKey struct {
		attr       string
		descending bool
	}

	var keys []sortKey
	for _, s := range strings.Split(spec, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := sortKey{attr: s}
		if strings.HasPrefix(s, "-") {
			k.attr = s[1:]
			k.descending = true
		}
		keys = append(keys, k)
	}

	log.Debugf("sort keys: %v", keys)

	sort.SliceStable(resultSet, func(i, j int) bool {
		for _, k := range keys {
			a := InterfaceToString(resultSet[i][k.attr])
			b := InterfaceToString(resultSet[j][k.attr])

			// Compare numerically when both sides parse; specs like
			// "-size" would otherwise sort "9" after "10".
			if af, aErr := strconv.ParseFloat(a, 64); aErr == nil {
				if bf, bErr := strconv.ParseFloat(b, 64); bErr == nil {
					if af == bf {
						continue
					}
					return (af < bf) != k.descending
				}
			}

			if a == b {
				continue
			}
			return (a < b) != k.descending
		}
		return false
	})
}

// InterfaceToString renders a result value for display.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		// Sizes and counts are the only numerics here; render as integer.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
