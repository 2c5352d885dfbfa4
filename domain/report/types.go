package report

// Identity columns every input must carry. Everything else in the header
// row is treated as a numeric metric column.
const (
	ColumnNo   = "No."
	ColumnDate = "Date"
	ColumnEQ   = "EQ"

	// ColumnInclude is the inclusion-flag column the renderer emits. A
	// previously generated report fed back in as CSV carries it, so the
	// reader treats it as reserved rather than as a metric.
	ColumnInclude = "Include"
)

// Marker values in the No. column of a previously generated report.
// Rows carrying them are stripped on load so re-running on a prior
// output never duplicates the aggregate rows.
const (
	MarkerAvg   = "AVG"
	MarkerStdev = "STDEV"
)

// Inclusion flag rendering. The output carries the flag as editable text
// and every aggregate formula tests that text, so flipping a cell in the
// saved workbook re-drives the statistics.
const (
	FlagIncluded = "Yes"
	FlagExcluded = "No"
)

// Row is one swing measurement: the three identity fields plus one value
// per metric column.
type Row struct {
	Shot     int
	Date     string
	EQ       string
	Included bool
	Metrics  map[string]float64
}

// Flag returns the rendered inclusion flag for the row.
func (r Row) Flag() string {
	if r.Included {
		return FlagIncluded
	}
	return FlagExcluded
}

// Table is an ordered set of rows plus the metric column names in the
// order they were discovered in the input header.
type Table struct {
	Rows    []Row
	Metrics []string
}

// ExclusionSet holds the shot numbers to flag "No", keyed by the value of
// the No. column (not the row's position).
type ExclusionSet map[int]bool

// NewExclusionSet builds an ExclusionSet from a list of shot numbers.
func NewExclusionSet(shots []int) ExclusionSet {
	set := make(ExclusionSet, len(shots))
	for _, s := range shots {
		set[s] = true
	}
	return set
}

// Annotate sets each row's inclusion flag: excluded if the shot number is
// in the set, included otherwise. It returns the shot numbers from the set
// that matched no row, for the caller to warn about or reject.
func (t *Table) Annotate(excluded ExclusionSet) []int {
	seen := make(map[int]bool, len(t.Rows))
	for i := range t.Rows {
		t.Rows[i].Included = !excluded[t.Rows[i].Shot]
		seen[t.Rows[i].Shot] = true
	}

	var unknown []int
	for shot := range excluded {
		if !seen[shot] {
			unknown = append(unknown, shot)
		}
	}
	return unknown
}

// IncludedValues returns the values of one metric across all included rows,
// in row order.
func (t *Table) IncludedValues(metric string) []float64 {
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if row.Included {
			values = append(values, row.Metrics[metric])
		}
	}
	return values
}

// IncludedCount returns how many rows are currently flagged included.
func (t *Table) IncludedCount() int {
	n := 0
	for _, row := range t.Rows {
		if row.Included {
			n++
		}
	}
	return n
}

// Headers returns the full output header row: identity columns, the
// inclusion column, then the metric columns in discovery order.
func (t *Table) Headers() []string {
	headers := []string{ColumnNo, ColumnDate, ColumnEQ, ColumnInclude}
	return append(headers, t.Metrics...)
}
