package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportType is the kind of generated report.
type ReportType string

const (
	ReportTypeContracts ReportType = "contracts"
	ReportTypeFinancial ReportType = "financial"
)

func (t ReportType) Valid() bool {
	return t == ReportTypeContracts || t == ReportTypeFinancial
}

// Report records a generated report together with the query parameters
// it was generated from.
type Report struct {
	DefaultModel
	Type          ReportType
	Parameters    string // The query parameters of the generation request, as JSON
	GeneratedByID *uuid.UUID
}

func (r *Report) BeforeSave(_ *gorm.DB) error {
	if !r.Type.Valid() {
		return ErrReportTypeInvalid
	}

	return nil
}

// RecordReport persists the provenance of a report generation request.
func RecordReport(db *gorm.DB, reportType ReportType, parameters interface{}, actorID uuid.UUID) (Report, error) {
	encoded, err := json.Marshal(parameters)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Type:       reportType,
		Parameters: string(encoded),
	}
	if actorID != uuid.Nil {
		report.GeneratedByID = &actorID
	}

	err = db.Create(&report).Error
	return report, err
}
