// Package report prints a cohort summary as a table, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/cohortviz/internal/domain/model"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format selects the summary encoding.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned for formats other than table, json and yaml.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat validates a format name; empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write encodes s to w.
func Write(w io.Writer, s model.Summary, f Format) error {
	switch f {
	case FormatTable, "":
		return writeTable(w, s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func writeTable(w io.Writer, s model.Summary) error {
	if _, err := fmt.Fprintln(w, strings.ReplaceAll(s.Title(), "\n", " ")); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"cohort", "men", "women", "men %", "women %"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	men, women := 0, 0
	for _, c := range s.Cohorts {
		men += c.Men
		women += c.Women
		table.Append([]string{
			strconv.Itoa(c.Cohort),
			strconv.Itoa(c.Men),
			strconv.Itoa(c.Women),
			strconv.Itoa(c.MenPercent) + "%",
			strconv.Itoa(c.WomenPercent) + "%",
		})
	}
	table.SetFooter([]string{"total", strconv.Itoa(men), strconv.Itoa(women), "", "n=" + strconv.Itoa(s.Total())})
	table.Render()
	return nil
}
