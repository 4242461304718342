package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// impactRenderModel is the serialization-facing view of a period breakdown.
type impactRenderModel struct {
	Period   schema.PeriodType         `json:"period"`
	ByMetric []schema.AggregatedImpact `json:"byMetric"`
	Combined schema.AggregatedImpact   `json:"combined"`
}

func buildImpactRenderModel(byMetric map[schema.MetricType]schema.AggregatedImpact, combined schema.AggregatedImpact) *impactRenderModel {
	model := &impactRenderModel{
		Period:   combined.Period,
		Combined: combined,
	}
	for _, t := range schema.AllMetricTypes {
		if agg, ok := byMetric[t]; ok {
			model.ByMetric = append(model.ByMetric, agg)
		}
	}
	return model
}

// PrintImpact outputs the aggregated impacts, dispatching based on the output format configured.
func PrintImpact(byMetric map[schema.MetricType]schema.AggregatedImpact, combined schema.AggregatedImpact, cfg *contract.Config) error {
	model := buildImpactRenderModel(byMetric, combined)
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImpactCSV(w, model, cfg, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImpactTable(w, model, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeImpactTable generates and writes the human-readable table.
func writeImpactTable(w io.Writer, model *impactRenderModel, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Daily", "Total", "Samples", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	label := func(minutes float64) string {
		if cfg.UseColors {
			return contract.GetColorLabel(minutes)
		}
		return contract.GetPlainLabel(minutes)
	}

	var rows [][]string
	for _, agg := range model.ByMetric {
		rows = append(rows, []string{
			schema.DisplayName(agg.Metric),
			schema.FormatSignedMinutes(agg.DailyMinutes, cfg.Precision),
			schema.FormatSignedMinutes(agg.TotalMinutes, cfg.Precision),
			strconv.Itoa(agg.SampleCount),
			label(agg.DailyMinutes),
		})
	}
	rows = append(rows, []string{
		"Combined",
		schema.FormatSignedMinutes(model.Combined.DailyMinutes, cfg.Precision),
		schema.FormatSignedMinutes(model.Combined.TotalMinutes, cfg.Precision),
		strconv.Itoa(model.Combined.SampleCount),
		label(model.Combined.DailyMinutes),
	})

	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Window: %s [%s, %s), minutes are per-day equivalents (total %s min over the elapsed window)\n",
		model.Period,
		model.Combined.WindowStart.Format("2006-01-02 15:04"),
		model.Combined.WindowEnd.Format("2006-01-02 15:04"),
		fmtFloat(model.Combined.TotalMinutes))
	return err
}

// writeImpactCSV writes the aggregated impacts in CSV format.
func writeImpactCSV(w io.Writer, model *impactRenderModel, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := []string{"period", "metric", "daily_minutes", "total_minutes", "sample_count", "label", "window_start", "window_end"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		writeRow := func(name string, agg schema.AggregatedImpact) error {
			record := []string{
				string(agg.Period),
				name,
				fmtFloat(agg.DailyMinutes),
				fmtFloat(agg.TotalMinutes),
				strconv.Itoa(agg.SampleCount),
				contract.GetPlainLabel(agg.DailyMinutes),
				agg.WindowStart.Format(contract.DateTimeFormat),
				agg.WindowEnd.Format(contract.DateTimeFormat),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
			return nil
		}

		for _, agg := range model.ByMetric {
			if err := writeRow(string(agg.Metric), agg); err != nil {
				return err
			}
		}
		return writeRow("combined", model.Combined)
	})
}
