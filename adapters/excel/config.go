package excel

// WriterConfig holds workbook rendering settings
type WriterConfig struct {
	SheetName      string `json:"sheet_name"`
	MaxColumnWidth int    `json:"max_column_width"`
}

// DefaultWriterConfig returns sensible defaults for workbook output
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		SheetName:      "Golf Stats",
		MaxColumnWidth: 20,
	}
}
