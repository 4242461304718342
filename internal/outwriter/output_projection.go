package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/internal/parquet"
	"github.com/lifetick/lifetick/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// projectionRenderModel is the serialization-facing view of a projection
// pair: the heavyweight scored-sample slice stays out of display output.
type projectionRenderModel struct {
	Current     schema.LifeProjection     `json:"current"`
	Optimal     schema.LifeProjection     `json:"optimal"`
	ExtraYears  float64                   `json:"extraYears"`
	ByMetric    []schema.AggregatedImpact `json:"byMetric,omitempty"`
	Dropped     int                       `json:"dropped"`
	RefreshedAt time.Time                 `json:"refreshedAt"`
}

func buildProjectionRenderModel(pair *schema.ProjectionPair) *projectionRenderModel {
	model := &projectionRenderModel{
		Current:     pair.Current,
		Optimal:     pair.Optimal,
		ExtraYears:  pair.ExtraYears,
		Dropped:     pair.Dropped,
		RefreshedAt: pair.RefreshedAt,
	}
	for _, t := range schema.AllMetricTypes {
		if agg, ok := pair.ByMetric[t]; ok {
			model.ByMetric = append(model.ByMetric, agg)
		}
	}
	return model
}

// PrintProjection outputs the projection pair, dispatching based on the output format configured.
func PrintProjection(pair *schema.ProjectionPair, cfg *contract.Config) error {
	model := buildProjectionRenderModel(pair)
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectionCSV(w, model, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteProjections(w, parquet.FromProjectionPair(pair))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectionTable(w, model, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeProjectionTable generates and writes the human-readable table.
func writeProjectionTable(w io.Writer, model *projectionRenderModel, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Scenario", "Base", "Adjusted", "Remaining", "End Year"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	rows := [][]string{
		{
			"Current",
			fmtFloat(model.Current.BaseLifeExpectancyYears),
			fmtFloat(model.Current.AdjustedLifeExpectancyYears),
			fmtFloat(model.Current.YearsRemaining),
			strconv.Itoa(model.Current.EndYear),
		},
		{
			"Optimal",
			fmtFloat(model.Optimal.BaseLifeExpectancyYears),
			fmtFloat(model.Optimal.AdjustedLifeExpectancyYears),
			fmtFloat(model.Optimal.YearsRemaining),
			strconv.Itoa(model.Optimal.EndYear),
		},
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	netDaily := model.Current.AdjustedLifeExpectancyYears - model.Current.BaseLifeExpectancyYears
	label := contract.GetPlainLabel(netDaily)
	if cfg.UseColors {
		label = contract.GetColorLabel(netDaily)
	}
	if _, err := fmt.Fprintf(w, "Habit impact: %s years (%s)\n", schema.FormatSignedMinutes(netDaily, cfg.Precision), label); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Optimal habits add %.0f whole year(s) to the countdown\n", model.ExtraYears); err != nil {
		return err
	}
	if model.Dropped > 0 {
		if _, err := fmt.Fprintf(w, "Dropped %d invalid sample(s) during scoring\n", model.Dropped); err != nil {
			return err
		}
	}
	return nil
}

// writeProjectionCSV writes the projection pair in CSV format.
func writeProjectionCSV(w io.Writer, model *projectionRenderModel, fmtFloat func(float64) string) error {
	header := []string{"scenario", "base_years", "adjusted_years", "years_remaining", "current_age", "birth_year", "end_year", "extra_years"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, row := range []struct {
			name string
			p    schema.LifeProjection
		}{
			{"current", model.Current},
			{"optimal", model.Optimal},
		} {
			record := []string{
				row.name,
				fmtFloat(row.p.BaseLifeExpectancyYears),
				fmtFloat(row.p.AdjustedLifeExpectancyYears),
				fmtFloat(row.p.YearsRemaining),
				fmtFloat(row.p.CurrentAgeYears),
				strconv.Itoa(row.p.BirthYear),
				strconv.Itoa(row.p.EndYear),
				fmt.Sprintf("%.0f", model.ExtraYears),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
