// Package reporter renders a scan result as a summary, table, JSON or
// YAML document.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/smartcare/internal/scan"
	"github.com/fenilsonani/smartcare/pkg/utils"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatSummary OutputFormat = "summary"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
)

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{writer: writer, format: format}
}

// Report renders the scan result in the configured format
func (r *Reporter) Report(result *scan.Result) error {
	switch r.format {
	case FormatSummary:
		return r.reportSummary(result)
	case FormatTable:
		return r.reportTable(result)
	case FormatJSON:
		return r.reportJSON(result)
	case FormatYAML:
		return r.reportYAML(result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) reportSummary(result *scan.Result) error {
	fmt.Fprintf(r.writer, "=== Smart Care Scan ===\n")
	fmt.Fprintf(r.writer, "Completed in %s\n", utils.FormatDuration(result.Duration))
	fmt.Fprintf(r.writer, "Found: %s across %d items\n",
		humanize.Bytes(uint64(result.TotalSize())), result.ItemCount())
	fmt.Fprintf(r.writer, "Recommended cleanup: %s\n\n",
		humanize.Bytes(uint64(result.RecommendedSize())))

	for _, domain := range scan.Domains() {
		groups := result.Domains[domain]
		if len(groups) == 0 {
			continue
		}
		fmt.Fprintf(r.writer, "%s:\n", domain.Title())
		for _, group := range groups {
			fmt.Fprintf(r.writer, "  %s: %s (%d items)\n",
				group.Title, humanize.Bytes(uint64(group.TotalSize())), len(group.Items))
		}
		fmt.Fprintln(r.writer)
	}

	return nil
}

func (r *Reporter) reportTable(result *scan.Result) error {
	header := fmt.Sprintf("%-16s %-28s %-10s %6s %6s  %s",
		"DOMAIN", "ITEM", "SIZE", "COUNT", "SCORE", "FLAGS")
	fmt.Fprintln(r.writer, header)
	fmt.Fprintln(r.writer, strings.Repeat("-", len(header)))

	for _, domain := range scan.Domains() {
		for _, group := range result.Domains[domain] {
			for _, item := range group.Items {
				flags := make([]string, 0, 2)
				if item.SafeToRun {
					flags = append(flags, "safe")
				}
				if item.IsRecommended {
					flags = append(flags, "recommended")
				}
				fmt.Fprintf(r.writer, "%-16s %-28s %-10s %6d %6d  %s\n",
					domain.Title(),
					truncate(item.Title, 28),
					humanize.Bytes(uint64(item.Size)),
					item.Count,
					item.ScoreImpact,
					strings.Join(flags, ","))
			}
		}
	}

	fmt.Fprintf(r.writer, "\nTotal: %s\n", humanize.Bytes(uint64(result.TotalSize())))
	return nil
}

func (r *Reporter) reportJSON(result *scan.Result) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func (r *Reporter) reportYAML(result *scan.Result) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	_, err = r.writer.Write(data)
	return err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
