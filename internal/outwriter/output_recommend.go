package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/schema"
)

// PrintRecommendations outputs per-metric guidance, dispatching based on the output format configured.
func PrintRecommendations(items []schema.RecommendationItem, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, items)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendationsCSV(w, items, cfg)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendationsText(w, items, cfg)
		}, "Wrote text")
	}
}

// writeRecommendationsText displays recommendations in human-readable text format.
func writeRecommendationsText(w io.Writer, items []schema.RecommendationItem, cfg *contract.Config) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No recommendations: no samples in the window.")
		return err
	}

	// Wrap guidance to the terminal, leaving room for the indent.
	wrapWidth := getTerminalWidth(cfg) - 4
	if wrapWidth < 40 {
		wrapWidth = 40
	}

	for _, item := range items {
		label := contract.GetPlainLabel(item.DailyMinutes)
		if cfg.UseColors {
			label = contract.GetColorLabel(item.DailyMinutes)
		}
		if _, err := fmt.Fprintf(w, "%s [%s, %s min/day]\n", schema.DisplayName(item.Metric), label, schema.FormatSignedMinutes(item.DailyMinutes, cfg.Precision)); err != nil {
			return err
		}
		for _, line := range wrapText(item.Text, wrapWidth) {
			if _, err := fmt.Fprintf(w, "   %s\n", line); err != nil {
				return err
			}
		}
		for _, citation := range item.Citations {
			if _, err := fmt.Fprintf(w, "   - %s\n", citation); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// wrapText splits text into lines of at most width characters, breaking on
// spaces. Words longer than width are kept whole.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}

// writeRecommendationsCSV writes recommendations in CSV format.
func writeRecommendationsCSV(w io.Writer, items []schema.RecommendationItem, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	header := []string{"metric", "daily_minutes", "sample_count", "label", "recommendation", "citations"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, item := range items {
			citations := make([]string, len(item.Citations))
			for i, c := range item.Citations {
				citations[i] = string(c)
			}
			record := []string{
				string(item.Metric),
				fmtFloat(item.DailyMinutes),
				fmt.Sprintf("%d", item.SampleCount),
				contract.GetPlainLabel(item.DailyMinutes),
				item.Text,
				strings.Join(citations, "|"),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
