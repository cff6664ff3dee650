package v1

import (
	"github.com/culturabase/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Report records who generated which report with which parameters.
type Report struct {
	models.DefaultModel
	Type          models.ReportType `json:"type" example:"contracts"`                           // Type of the generated report
	Parameters    string            `json:"parameters" example:"{\"status\":\"in_execution\"}"` // Query parameters of the generation request, as JSON
	GeneratedByID *uuid.UUID        `json:"generatedById"`                                      // ID of the user who generated the report
}

func newReport(model models.Report) Report {
	return Report{
		DefaultModel:  model.DefaultModel,
		Type:          model.Type,
		Parameters:    model.Parameters,
		GeneratedByID: model.GeneratedByID,
	}
}

type ReportListResponse struct {
	Data       []Report    `json:"data"`                                                          // List of recorded report generations
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

// ContractReportQuery are the filters of a contract report.
type ContractReportQuery struct {
	Sector string `form:"sector" json:"sector"` // By the ID of the sector
	Status string `form:"status" json:"status"` // By the status
	Type   string `form:"type" json:"type"`     // By the type
	From   string `form:"from" json:"from"`     // Contracts whose period ends on or after this date
	Until  string `form:"until" json:"until"`   // Contracts whose period starts on or before this date
}

// ContractReportGroup aggregates the contracts sharing a status.
type ContractReportGroup struct {
	Status     models.ContractStatus `json:"status" example:"in_execution"` // The status of the group
	Count      int64                 `json:"count" example:"12"`            // Number of contracts in the group
	TotalValue decimal.Decimal       `json:"totalValue" example:"180000"`   // Sum of the committed values in the group
	TotalPaid  decimal.Decimal       `json:"totalPaid" example:"95000"`     // Sum of the paid values in the group
}

// ContractReport is the aggregated view over the filtered contracts.
type ContractReport struct {
	Count      int64                 `json:"count" example:"30"`          // Number of contracts matching the filters
	TotalValue decimal.Decimal       `json:"totalValue" example:"420000"` // Sum of all committed values
	TotalPaid  decimal.Decimal       `json:"totalPaid" example:"210000"`  // Sum of all paid values
	ByStatus   []ContractReportGroup `json:"byStatus"`                    // The contracts grouped by status
	Contracts  []Contract            `json:"contracts"`                   // The contracts matching the filters
}

type ContractReportResponse struct {
	Data  *ContractReport `json:"data"`                                                          // Data for the contract report
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// FinancialReportQuery are the filters of a financial report.
type FinancialReportQuery struct {
	Sector        string `form:"sector" json:"sector"`               // By the ID of the sector
	FundingSource string `form:"fundingSource" json:"fundingSource"` // By the ID of the funding source
	From          string `form:"from" json:"from"`                   // Movements on or after this date
	Until         string `form:"until" json:"until"`                 // Movements on or before this date
}

// FinancialReportMonth aggregates the movements of one calendar month.
type FinancialReportMonth struct {
	Month    string          `json:"month" example:"2024-05"`   // The month in YYYY-MM format
	Inflow   decimal.Decimal `json:"inflow" example:"0"`        // Sum of inflow movements
	Outflow  decimal.Decimal `json:"outflow" example:"12500"`   // Sum of outflow movements
	Transfer decimal.Decimal `json:"transfer" example:"2500"`   // Sum of transfer movements
}

// FinancialReport is the aggregated view over the filtered movements.
type FinancialReport struct {
	Inflow   decimal.Decimal        `json:"inflow" example:"0"`      // Sum of all inflow movements
	Outflow  decimal.Decimal        `json:"outflow" example:"95000"` // Sum of all outflow movements
	Transfer decimal.Decimal        `json:"transfer" example:"8000"` // Sum of all transfer movements
	ByMonth  []FinancialReportMonth `json:"byMonth"`                 // The movements grouped by calendar month
}

type FinancialReportResponse struct {
	Data  *FinancialReport `json:"data"`                                                          // Data for the financial report
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ReportQueryFilter struct {
	Type   string `form:"type"`                       // By the type
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first report returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of reports to return. Defaults to 50.
}

func (f ReportQueryFilter) model() (models.Report, error) {
	return models.Report{
		Type: models.ReportType(f.Type),
	}, nil
}
