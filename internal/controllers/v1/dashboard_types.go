package v1

import (
	"github.com/culturabase/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardSummary is the overview shown on the landing page.
type DashboardSummary struct {
	Contracts           int64           `json:"contracts" example:"30"`           // Number of contracts
	ActiveContracts     int64           `json:"activeContracts" example:"12"`     // Number of contracts in execution
	OverdueInstallments int64           `json:"overdueInstallments" example:"2"`  // Number of unpaid installments past their due date
	PendingTransfers    int64           `json:"pendingTransfers" example:"1"`     // Number of transfer requests awaiting processing
	UnreadNotifications int64           `json:"unreadNotifications" example:"4"`  // Number of unread notifications of the requesting user
	TotalAllocated      decimal.Decimal `json:"totalAllocated" example:"500000"`  // Sum of all allocations
	TotalCommitted      decimal.Decimal `json:"totalCommitted" example:"420000"`  // Sum of all non-cancelled contract values
	TotalPaid           decimal.Decimal `json:"totalPaid" example:"210000"`       // Sum of all paid installments
}

type DashboardSummaryResponse struct {
	Data  *DashboardSummary `json:"data"`                 // Data for the summary
	Error *string           `json:"error" example:"the database cannot be accessed"` // The error, if any occurred
}

// DashboardStatusCount is the number of contracts in one status.
type DashboardStatusCount struct {
	Status models.ContractStatus `json:"status" example:"in_execution"` // The status
	Count  int64                 `json:"count" example:"12"`            // Number of contracts in the status
}

// DashboardTypeCount is the number of contracts of one type.
type DashboardTypeCount struct {
	Type  models.ContractType `json:"type" example:"service"` // The type
	Count int64               `json:"count" example:"18"`     // Number of contracts of the type
}

// DashboardContracts breaks the contract portfolio down by status and
// type and lists the contracts ending soon.
type DashboardContracts struct {
	ByStatus   []DashboardStatusCount `json:"byStatus"`   // Contracts grouped by status
	ByType     []DashboardTypeCount   `json:"byType"`     // Contracts grouped by type
	EndingSoon []Contract             `json:"endingSoon"` // Non-cancelled contracts ending within the next 30 days
}

type DashboardContractsResponse struct {
	Data  *DashboardContracts `json:"data"`                                            // Data for the contract dashboard
	Error *string             `json:"error" example:"the database cannot be accessed"` // The error, if any occurred
}

// DashboardSectorBudget is the budget state of one sector.
type DashboardSectorBudget struct {
	SectorID   uuid.UUID       `json:"sectorId" example:"2cb6f045-8f60-4f70-98f5-0a4cbd27a765"` // ID of the sector
	SectorName string          `json:"sectorName" example:"Performing Arts"`                    // Name of the sector
	Allocated  decimal.Decimal `json:"allocated" example:"120000"`                              // Sum of the sector's allocations
	Committed  decimal.Decimal `json:"committed" example:"95000"`                               // Sum of the sector's non-cancelled contract values
	Paid       decimal.Decimal `json:"paid" example:"40000"`                                    // Sum of the sector's paid installments
}

// DashboardFinancial is the budget state per sector plus the most
// recent movements.
type DashboardFinancial struct {
	Sectors         []DashboardSectorBudget `json:"sectors"`         // The budget state per sector
	RecentMovements []MovementEntry         `json:"recentMovements"` // The ten most recent movements
}

type DashboardFinancialResponse struct {
	Data  *DashboardFinancial `json:"data"`                                            // Data for the financial dashboard
	Error *string             `json:"error" example:"the database cannot be accessed"` // The error, if any occurred
}
