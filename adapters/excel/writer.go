package excel

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"swingstats/domain/core"
	"swingstats/domain/report"

	"github.com/xuri/excelize/v2"
)

// Guard indicators rendered by the aggregate formulas instead of a
// division-by-zero artifact.
const (
	// NoDataIndicator appears in an AVG cell when zero rows are included.
	NoDataIndicator = "NO DATA"
	// InsufficientSampleIndicator appears in a STDEV cell when fewer than
	// two rows are included (sample stdev divides by count-1).
	InsufficientSampleIndicator = "N<2"
)

// Writer renders an annotated table into an xlsx workbook.
type Writer struct {
	cfg WriterConfig
}

// NewWriter creates a writer with the given rendering settings
func NewWriter(cfg WriterConfig) *Writer {
	return &Writer{cfg: cfg}
}

// Write renders the table and saves it to path atomically: the workbook is
// written to a temp file in the destination directory and renamed into
// place only on success, so a failure never leaves a truncated output.
func (w *Writer) Write(table *report.Table, path string, runID core.ReportID) error {
	f, err := w.render(table, runID)
	if err != nil {
		return err
	}
	defer f.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".swingstats-*.xlsx")
	if err != nil {
		return core.NewOutputWriteError(path, err)
	}
	tmpPath := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return core.NewOutputWriteError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return core.NewOutputWriteError(path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return core.NewOutputWriteError(path, err)
	}

	log.Printf("[Writer] %s written (%d rows, %d metrics)", path, len(table.Rows), len(table.Metrics))
	return nil
}

// render builds the in-memory workbook: header row, data rows, then the
// AVG and STDEV formula rows.
func (w *Writer) render(table *report.Table, runID core.ReportID) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := w.cfg.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, core.NewOutputWriteError(sheet, err)
	}
	_ = f.SetDocProps(&excelize.DocProperties{
		Creator:     "swingstats",
		Description: fmt.Sprintf("report run %s", runID),
	})

	styles, err := newRowStyles(f)
	if err != nil {
		f.Close()
		return nil, core.NewOutputWriteError(sheet, err)
	}

	if err := w.writeHeader(f, sheet, table, styles.header); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeDataRows(f, sheet, table); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.writeAggregateRows(f, sheet, table, styles); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.sizeColumns(f, sheet, table); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (w *Writer) writeHeader(f *excelize.File, sheet string, table *report.Table, style int) error {
	for i, h := range table.Headers() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return core.NewOutputWriteError(sheet, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return core.NewOutputWriteError(sheet, err)
		}
	}
	return nil
}

func (w *Writer) writeDataRows(f *excelize.File, sheet string, table *report.Table) error {
	for r, row := range table.Rows {
		sheetRow := firstDataRow + r
		values := []interface{}{row.Shot, row.Date, row.EQ, row.Flag()}
		for _, metric := range table.Metrics {
			values = append(values, row.Metrics[metric])
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, sheetRow)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return core.NewOutputWriteError(sheet, err)
			}
		}
	}
	return nil
}

// writeAggregateRows emits the AVG and STDEV rows as live formulas over the
// Include column, never as precomputed constants, so edits to the saved
// workbook's flags re-drive the statistics.
func (w *Writer) writeAggregateRows(f *excelize.File, sheet string, table *report.Table, styles rowStyles) error {
	n := len(table.Rows)
	avg := avgRow(n)
	stdev := stdevRow(n)

	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", avg), report.MarkerAvg); err != nil {
		return core.NewOutputWriteError(sheet, err)
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", stdev), report.MarkerStdev); err != nil {
		return core.NewOutputWriteError(sheet, err)
	}

	for i := range table.Metrics {
		col, err := metricColumnName(i)
		if err != nil {
			return core.NewOutputWriteError(sheet, err)
		}
		avgCell := fmt.Sprintf("%s%d", col, avg)
		stdevCell := fmt.Sprintf("%s%d", col, stdev)

		if err := f.SetCellFormula(sheet, avgCell, AvgFormula(col, n)); err != nil {
			return core.NewOutputWriteError(sheet, err)
		}
		if err := f.SetCellFormula(sheet, stdevCell, StdevFormula(col, n)); err != nil {
			return core.NewOutputWriteError(sheet, err)
		}
	}

	cols := totalColumns(table)
	lastCol, _ := excelize.ColumnNumberToName(cols)
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", avg), fmt.Sprintf("%s%d", lastCol, avg), styles.avg); err != nil {
		return core.NewOutputWriteError(sheet, err)
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", stdev), fmt.Sprintf("%s%d", lastCol, stdev), styles.stdev); err != nil {
		return core.NewOutputWriteError(sheet, err)
	}
	return nil
}

// AvgFormula returns the conditional-average formula for one metric column
// over n data rows. Guarded: with zero included rows it renders the no-data
// indicator instead of a #DIV/0! artifact.
func AvgFormula(col string, n int) string {
	inc := includeRange(n)
	return fmt.Sprintf(`IF(COUNTIF(%s,"%s")=0,"%s",AVERAGEIF(%s,"%s",%s))`,
		inc, report.FlagIncluded, NoDataIndicator,
		inc, report.FlagIncluded, metricRange(col, n))
}

// StdevFormula returns the conditional sample-standard-deviation formula
// for one metric column over n data rows. It references the AVG row's cell
// so the two formulas stay consistent if a user edits the sheet, and guards
// the count-1 denominator behind the insufficient-sample indicator.
func StdevFormula(col string, n int) string {
	inc := includeRange(n)
	rng := metricRange(col, n)
	avgCell := fmt.Sprintf("%s%d", col, avgRow(n))
	return fmt.Sprintf(`IF(COUNTIF(%s,"%s")<2,"%s",SQRT(SUMPRODUCT((%s="%s")*(%s-%s)^2)/(COUNTIF(%s,"%s")-1)))`,
		inc, report.FlagIncluded, InsufficientSampleIndicator,
		inc, report.FlagIncluded, rng, avgCell,
		inc, report.FlagIncluded)
}

// sizeColumns widens each column to its longest literal or header, plus
// padding, capped at the configured maximum.
func (w *Writer) sizeColumns(f *excelize.File, sheet string, table *report.Table) error {
	cols := totalColumns(table)
	widths := make([]int, cols)
	for i, h := range table.Headers() {
		widths[i] = len(h)
	}

	update := func(col int, s string) {
		if len(s) > widths[col] {
			widths[col] = len(s)
		}
	}
	for _, row := range table.Rows {
		update(0, strconv.Itoa(row.Shot))
		update(1, row.Date)
		update(2, row.EQ)
		update(3, row.Flag())
		for i, metric := range table.Metrics {
			update(identityColumnSpan+i, strconv.FormatFloat(row.Metrics[metric], 'f', -1, 64))
		}
	}

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return core.NewOutputWriteError(sheet, err)
		}
		adjusted := width + 2
		if adjusted > w.cfg.MaxColumnWidth {
			adjusted = w.cfg.MaxColumnWidth
		}
		if err := f.SetColWidth(sheet, name, name, float64(adjusted)); err != nil {
			return core.NewOutputWriteError(sheet, err)
		}
	}
	return nil
}

// rowStyles holds the three mutually exclusive style classes: header, AVG
// row, STDEV row.
type rowStyles struct {
	header int
	avg    int
	stdev  int
}

func newRowStyles(f *excelize.File) (rowStyles, error) {
	var styles rowStyles
	var err error

	styles.header, err = newFillStyle(f, "CCE5FF")
	if err != nil {
		return styles, err
	}
	styles.avg, err = newFillStyle(f, "FFEB9C")
	if err != nil {
		return styles, err
	}
	styles.stdev, err = newFillStyle(f, "FFC7CE")
	return styles, err
}

func newFillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
}
