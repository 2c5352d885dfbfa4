package excel

import (
	"bytes"
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"swingstats/domain/core"
	"swingstats/domain/report"
)

// Reader loads a swing-measurement CSV into a report.Table.
type Reader struct {
	filePath string
}

// NewReader creates a reader for the given CSV file
func NewReader(filePath string) *Reader {
	return &Reader{filePath: filePath}
}

// Load reads the input fully into memory, validates the identity columns,
// strips aggregate rows left over from a previous report, and parses every
// metric cell strictly. It returns the table along with a digest of the
// input bytes for provenance logging.
func (r *Reader) Load() (*report.Table, core.InputDigest, error) {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, "", core.NewInputNotFoundError(r.filePath)
	}
	digest := core.NewInputDigest(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // row length is validated per cell below
	records, err := reader.ReadAll()
	if err != nil {
		return nil, "", core.NewMalformedCSVError(r.filePath, err)
	}
	if len(records) == 0 {
		return nil, "", core.NewNoDataRowsError(r.filePath)
	}

	table, err := r.processRecords(records)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[Reader] %s loaded (%d metric columns, %d rows, sha256=%s)",
		r.filePath, len(table.Metrics), len(table.Rows), digest.Short())
	return table, digest, nil
}

// processRecords converts raw CSV records into a Table
func (r *Reader) processRecords(records [][]string) (*report.Table, error) {
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	shotIdx, dateIdx, eqIdx := -1, -1, -1
	seen := make(map[string]bool, len(header))
	var metrics []string
	metricIdx := make(map[string]int, len(header))

	for i, name := range header {
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, core.NewDuplicateColumnError(r.filePath, name)
		}
		seen[name] = true

		switch name {
		case report.ColumnNo:
			shotIdx = i
		case report.ColumnDate:
			dateIdx = i
		case report.ColumnEQ:
			eqIdx = i
		case report.ColumnInclude:
			// Reserved: a previously generated report carries this column.
			// It is re-derived by annotation, never read back as a metric.
		default:
			metrics = append(metrics, name)
			metricIdx[name] = i
		}
	}

	for _, required := range []struct {
		name string
		idx  int
	}{
		{report.ColumnNo, shotIdx},
		{report.ColumnDate, dateIdx},
		{report.ColumnEQ, eqIdx},
	} {
		if required.idx == -1 {
			return nil, core.NewMissingColumnError(r.filePath, required.name)
		}
	}

	table := &report.Table{Metrics: metrics}
	dropped := 0

	for recIdx := 1; recIdx < len(records); recIdx++ {
		record := records[recIdx]
		csvRow := recIdx + 1 // 1-based, counting the header as row 1

		shotCell := strings.TrimSpace(cellAt(record, shotIdx))
		marker := strings.ToUpper(shotCell)
		if marker == report.MarkerAvg || marker == report.MarkerStdev {
			dropped++
			continue
		}
		shot, err := strconv.Atoi(shotCell)
		if err != nil {
			// Non-numeric shot number: a stray label or blank line, not a
			// data row. Dropping it keeps re-runs on prior output stable.
			dropped++
			continue
		}

		row := report.Row{
			Shot:    shot,
			Date:    strings.TrimSpace(cellAt(record, dateIdx)),
			EQ:      strings.TrimSpace(cellAt(record, eqIdx)),
			Metrics: make(map[string]float64, len(metrics)),
		}

		for _, metric := range metrics {
			cell := strings.TrimSpace(cellAt(record, metricIdx[metric]))
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, core.NewNonNumericCellError(r.filePath, metric, csvRow, cell)
			}
			row.Metrics[metric] = value
		}

		table.Rows = append(table.Rows, row)
	}

	if dropped > 0 {
		log.Printf("[Reader] dropped %d non-data row(s) from %s", dropped, r.filePath)
	}
	if len(table.Rows) == 0 {
		return nil, core.NewNoDataRowsError(r.filePath)
	}
	return table, nil
}

// cellAt returns the cell at idx or "" when the record is short.
func cellAt(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}
