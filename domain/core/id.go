package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// ReportID identifies a single report generation run. It appears in log
// lines and in the workbook's application properties so a generated file
// can be traced back to the run that produced it.
type ReportID ID

// NewReportID creates a new report run identifier
func NewReportID() ReportID {
	return ReportID(NewID())
}

func (id ReportID) String() string { return ID(id).String() }
