package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"swingstats/domain/core"
	"swingstats/domain/report"
)

func annotatedTable(excluded ...int) *report.Table {
	table := &report.Table{
		Metrics: []string{"Carry", "Ball Speed"},
		Rows: []report.Row{
			{Shot: 1, Date: "2025-03-01", EQ: "Driver", Metrics: map[string]float64{"Carry": 150, "Ball Speed": 58.1}},
			{Shot: 2, Date: "2025-03-01", EQ: "Driver", Metrics: map[string]float64{"Carry": 160, "Ball Speed": 59.4}},
			{Shot: 3, Date: "2025-03-01", EQ: "Driver", Metrics: map[string]float64{"Carry": 170, "Ball Speed": 61.0}},
			{Shot: 4, Date: "2025-03-01", EQ: "Driver", Metrics: map[string]float64{"Carry": 180, "Ball Speed": 62.2}},
			{Shot: 5, Date: "2025-03-01", EQ: "Driver", Metrics: map[string]float64{"Carry": 190, "Ball Speed": 63.9}},
		},
	}
	table.Annotate(report.NewExclusionSet(excluded))
	return table
}

func writeWorkbook(t *testing.T, table *report.Table) (string, *excelize.File) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := NewWriter(DefaultWriterConfig())
	require.NoError(t, w.Write(table, path, core.NewReportID()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return path, f
}

func TestWriterSheetLayout(t *testing.T) {
	_, f := writeWorkbook(t, annotatedTable(3))
	sheet := "Golf Stats"

	assert.Equal(t, []string{sheet}, f.GetSheetList())

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 8, "header + 5 data rows + AVG + STDEV")

	assert.Equal(t, []string{"No.", "Date", "EQ", "Include", "Carry", "Ball Speed"}, rows[0])

	// Inclusion flags are literal editable text in column D
	flag, err := f.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Yes", flag)
	flag, err = f.GetCellValue(sheet, "D4")
	require.NoError(t, err)
	assert.Equal(t, "No", flag)

	// Marker cells for the aggregate rows
	marker, err := f.GetCellValue(sheet, "A7")
	require.NoError(t, err)
	assert.Equal(t, "AVG", marker)
	marker, err = f.GetCellValue(sheet, "A8")
	require.NoError(t, err)
	assert.Equal(t, "STDEV", marker)
}

func TestWriterEmitsFormulasNotConstants(t *testing.T) {
	_, f := writeWorkbook(t, annotatedTable(3))
	sheet := "Golf Stats"

	avgFormula, err := f.GetCellFormula(sheet, "E7")
	require.NoError(t, err)
	assert.Contains(t, avgFormula, `AVERAGEIF($D$2:$D$6,"Yes",E2:E6)`)
	assert.Contains(t, avgFormula, `"NO DATA"`, "zero-included guard")

	stdevFormula, err := f.GetCellFormula(sheet, "E8")
	require.NoError(t, err)
	assert.Contains(t, stdevFormula, "E7", "stdev must reference the AVG row's cell")
	assert.Contains(t, stdevFormula, `"N<2"`, "insufficient-sample guard")
	assert.Contains(t, stdevFormula, `COUNTIF($D$2:$D$6,"Yes")-1`, "sample denominator")

	// Second metric column gets its own range
	avgFormula, err = f.GetCellFormula(sheet, "F7")
	require.NoError(t, err)
	assert.Contains(t, avgFormula, "F2:F6")
}

func TestWriterDataVerbatim(t *testing.T) {
	_, f := writeWorkbook(t, annotatedTable())
	sheet := "Golf Stats"

	carry, err := f.GetCellValue(sheet, "E3")
	require.NoError(t, err)
	assert.Equal(t, "160", carry)

	speed, err := f.GetCellValue(sheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "58.1", speed)
}

func TestWriterColumnWidths(t *testing.T) {
	table := annotatedTable()
	table.Rows[0].EQ = "An Extremely Long Equipment Label That Exceeds The Cap"
	_, f := writeWorkbook(t, table)
	sheet := "Golf Stats"

	width, err := f.GetColWidth(sheet, "C")
	require.NoError(t, err)
	assert.InDelta(t, 20, width, 0.01, "width is capped")

	width, err = f.GetColWidth(sheet, "D")
	require.NoError(t, err)
	assert.InDelta(t, len("Include")+2, width, 0.01)
}

func TestWriterNoPartialOutput(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing-dir", "out.xlsx")
	w := NewWriter(DefaultWriterConfig())

	err := w.Write(annotatedTable(), dest, core.NewReportID())
	require.Error(t, err)
	assert.True(t, core.IsOutputWrite(err))

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no output file may exist after a failed write")
}

func TestWriterLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")
	w := NewWriter(DefaultWriterConfig())
	require.NoError(t, w.Write(annotatedTable(), path, core.NewReportID()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.xlsx", entries[0].Name())
}

func TestAvgFormula(t *testing.T) {
	got := AvgFormula("E", 5)
	want := `IF(COUNTIF($D$2:$D$6,"Yes")=0,"NO DATA",AVERAGEIF($D$2:$D$6,"Yes",E2:E6))`
	assert.Equal(t, want, got)
}

func TestStdevFormula(t *testing.T) {
	got := StdevFormula("E", 5)
	want := `IF(COUNTIF($D$2:$D$6,"Yes")<2,"N<2",SQRT(SUMPRODUCT(($D$2:$D$6="Yes")*(E2:E6-E7)^2)/(COUNTIF($D$2:$D$6,"Yes")-1)))`
	assert.Equal(t, want, got)
}
