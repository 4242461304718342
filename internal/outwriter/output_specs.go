package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// specsRenderModel is the serialization-facing view of the curve definitions,
// ordered for display.
type specsRenderModel struct {
	Metrics []schema.MetricSpec `json:"metrics"`
}

func buildSpecsRenderModel(specs schema.MetricSpecs) *specsRenderModel {
	model := &specsRenderModel{}
	for _, t := range schema.AllMetricTypes {
		if spec, ok := specs[t]; ok {
			model.Metrics = append(model.Metrics, spec)
		}
	}
	return model
}

// PrintMetricSpecs displays the curve definitions of all metric types.
// This is a static display that does not require any stored samples.
func PrintMetricSpecs(specs schema.MetricSpecs, cfg *contract.Config) error {
	model := buildSpecsRenderModel(specs)
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSpecsCSV(w, model, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSpecsTable(w, model, fmtFloat)
		}, "Wrote table")
	}
}

// writeSpecsTable generates and writes the human-readable table.
func writeSpecsTable(w io.Writer, model *specsRenderModel, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Curve", "Unit", "Target", "Valid Range", "Cap (min/day)"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var rows [][]string
	for _, spec := range model.Metrics {
		target := fmtFloat(spec.Target)
		if spec.Curve == schema.BoundedCurve {
			target = fmt.Sprintf("%s (band %s-%s)", target, fmtFloat(spec.RangeLow), fmtFloat(spec.RangeHigh))
		}
		rows = append(rows, []string{
			schema.DisplayName(spec.Type),
			string(spec.Curve),
			spec.Unit,
			target,
			fmt.Sprintf("%s - %s", fmtFloat(spec.MinValid), fmtFloat(spec.MaxValid)),
			fmtFloat(spec.MaxDailyMinutes),
		})
	}

	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// writeSpecsCSV writes the curve definitions in CSV format.
func writeSpecsCSV(w io.Writer, model *specsRenderModel, fmtFloat func(float64) string) error {
	header := []string{"metric", "curve", "unit", "target", "range_low", "range_high", "min_valid", "max_valid", "max_daily_minutes"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, spec := range model.Metrics {
			record := []string{
				string(spec.Type),
				string(spec.Curve),
				spec.Unit,
				fmtFloat(spec.Target),
				fmtFloat(spec.RangeLow),
				fmtFloat(spec.RangeHigh),
				fmtFloat(spec.MinValid),
				fmtFloat(spec.MaxValid),
				fmtFloat(spec.MaxDailyMinutes),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
