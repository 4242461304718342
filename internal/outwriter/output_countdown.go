package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/schema"
)

// FormatCountdownLine renders one countdown tick as a single line. The live
// ticker rewrites this line in place, so it must stay width-stable.
func FormatCountdownLine(data schema.LifespanData) string {
	return fmt.Sprintf("⏳ %3dy %3dd %02d:%02d:%02d remaining  [%s] %5.1f%%",
		data.Years, data.Days, data.Hours, data.Minutes, data.Seconds,
		progressBar(data.Progress, 20), data.Progress*100)
}

// progressBar renders a fixed-width ASCII progress bar.
func progressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	return strings.Repeat("=", filled) + strings.Repeat("-", width-filled)
}

// PrintCountdown outputs a single countdown render, dispatching based on the output format configured.
func PrintCountdown(data schema.LifespanData, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, data)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCountdownCSV(w, data)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCountdownText(w, data)
		}, "Wrote text")
	}
}

// writeCountdownText displays the countdown in human-readable text format.
func writeCountdownText(w io.Writer, data schema.LifespanData) error {
	if _, err := fmt.Fprintln(w, FormatCountdownLine(data)); err != nil {
		return err
	}
	if data.BirthYear != 0 || data.EndYear != 0 {
		if _, err := fmt.Fprintf(w, "Lifespan: %d - %d\n", data.BirthYear, data.EndYear); err != nil {
			return err
		}
	}
	if data.ExtraYears != nil {
		if _, err := fmt.Fprintf(w, "Optimal habits would add %.0f whole year(s)\n", *data.ExtraYears); err != nil {
			return err
		}
	}
	return nil
}

// writeCountdownCSV writes one countdown tick in CSV format.
func writeCountdownCSV(w io.Writer, data schema.LifespanData) error {
	header := []string{"years", "days", "hours", "minutes", "seconds", "progress", "birth_year", "end_year"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		record := []string{
			strconv.Itoa(data.Years),
			strconv.Itoa(data.Days),
			strconv.Itoa(data.Hours),
			strconv.Itoa(data.Minutes),
			strconv.Itoa(data.Seconds),
			fmt.Sprintf("%.6f", data.Progress),
			strconv.Itoa(data.BirthYear),
			strconv.Itoa(data.EndYear),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
		return nil
	})
}
