package excel

import (
	"fmt"

	"swingstats/domain/report"

	"github.com/xuri/excelize/v2"
)

// Sheet layout. Identity columns occupy A-C, the inclusion flag column D,
// and metric columns start at E. Data rows start at 2 (row 1 is the header);
// the AVG and STDEV rows follow the last data row.
const (
	includeColumn      = "D"
	firstDataRow       = 2
	firstMetricColumn  = 5
	identityColumnSpan = 4 // No., Date, EQ, Include
)

// lastDataRow returns the sheet row of the final data row for n data rows.
func lastDataRow(n int) int { return firstDataRow + n - 1 }

// avgRow returns the sheet row carrying the AVG formulas for n data rows.
func avgRow(n int) int { return lastDataRow(n) + 1 }

// stdevRow returns the sheet row carrying the STDEV formulas for n data rows.
func stdevRow(n int) int { return avgRow(n) + 1 }

// includeRange returns the absolute reference to the Include flag cells,
// e.g. $D$2:$D$11 for 10 data rows.
func includeRange(n int) string {
	return fmt.Sprintf("$%s$%d:$%s$%d", includeColumn, firstDataRow, includeColumn, lastDataRow(n))
}

// metricColumnName returns the sheet column name for the i-th metric
// (0-based) in discovery order.
func metricColumnName(i int) (string, error) {
	return excelize.ColumnNumberToName(firstMetricColumn + i)
}

// metricRange returns the data range of one metric column, e.g. E2:E11.
func metricRange(col string, n int) string {
	return fmt.Sprintf("%s%d:%s%d", col, firstDataRow, col, lastDataRow(n))
}

// totalColumns returns the width of the sheet in columns.
func totalColumns(t *report.Table) int {
	return identityColumnSpan + len(t.Metrics)
}
