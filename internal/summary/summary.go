package summary

import (
	"fmt"
	"io"

	"swingstats/domain/report"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// MetricSummary holds the in-process statistics for one metric column over
// the included rows. These are the values the workbook's formulas will
// evaluate to before anyone edits the Include column.
type MetricSummary struct {
	Metric   string
	Count    int
	Mean     float64
	Stdev    float64
	Min      float64
	Max      float64
	HasMean  bool
	HasStdev bool
}

// RunSummary describes one completed report generation.
type RunSummary struct {
	OutputPath string
	Processed  int
	Included   int
	Excluded   int
	Metrics    []MetricSummary
}

// Compute builds a RunSummary for an annotated table.
func Compute(table *report.Table, outputPath string) RunSummary {
	s := RunSummary{
		OutputPath: outputPath,
		Processed:  len(table.Rows),
		Included:   table.IncludedCount(),
	}
	s.Excluded = s.Processed - s.Included

	for _, metric := range table.Metrics {
		s.Metrics = append(s.Metrics, computeMetric(metric, table.IncludedValues(metric)))
	}
	return s
}

func computeMetric(name string, values []float64) MetricSummary {
	m := MetricSummary{Metric: name, Count: len(values)}
	if len(values) == 0 {
		return m
	}

	mean, _ := stats.Mean(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	m.Mean = mean
	m.Min = min
	m.Max = max
	m.HasMean = true

	if len(values) >= 2 {
		// Sample standard deviation, matching the STDEV formula's
		// count-1 denominator.
		m.Stdev = stat.StdDev(values, nil)
		m.HasStdev = true
	}
	return m
}

// Print writes the human-readable summary the CLI shows after a run.
func (s RunSummary) Print(w io.Writer) {
	fmt.Fprintf(w, "Generated %s\n", s.OutputPath)
	fmt.Fprintf(w, "Processed %d rows (%d included, %d excluded)\n", s.Processed, s.Included, s.Excluded)

	for _, m := range s.Metrics {
		switch {
		case !m.HasMean:
			fmt.Fprintf(w, "  %-14s no included rows\n", m.Metric)
		case !m.HasStdev:
			fmt.Fprintf(w, "  %-14s mean=%.2f min=%.2f max=%.2f (stdev needs 2+ rows)\n",
				m.Metric, m.Mean, m.Min, m.Max)
		default:
			fmt.Fprintf(w, "  %-14s mean=%.2f stdev=%.2f min=%.2f max=%.2f\n",
				m.Metric, m.Mean, m.Stdev, m.Min, m.Max)
		}
	}
}
