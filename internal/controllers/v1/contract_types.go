package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractEditable represents all user configurable parameters
type ContractEditable struct {
	Number           string                `json:"number" example:"2024/0131" default:""`                               // The institution's process number for the contract
	Object           string                `json:"object" example:"Sound equipment for the main stage" default:""`     // What is being contracted
	Responsible      string                `json:"responsible" example:"Carlos Lima" default:""`                        // Name of the person following up on the contract
	Type             models.ContractType   `json:"type" example:"service" default:"other"`                              // Type of the contract
	Status           models.ContractStatus `json:"status" example:"draft" default:"draft"`                              // Status of the contract
	SectorID         uuid.UUID             `json:"sectorId" example:"2cb6f045-8f60-4f70-98f5-0a4cbd27a765"`             // ID of the sector the contract belongs to
	LineItemID       uuid.UUID             `json:"lineItemId" example:"6b40ba1c-14a1-4bc9-bbd8-8a517e1408c8"`           // ID of the line item the contract draws from
	VendorID         *uuid.UUID            `json:"vendorId" example:"d4875c07-2b54-4d5b-b3a0-e4b73be926a0"`             // ID of the vendor, mutually exclusive with recipientId
	RecipientID      *uuid.UUID            `json:"recipientId" example:"1e8dd135-5f82-47ff-9bc0-20ef3f76a2dd"`          // ID of the grant recipient, mutually exclusive with vendorId
	StartDate        types.Date            `json:"startDate" example:"2024-03-01"`                                      // First day of the contract period
	EndDate          types.Date            `json:"endDate" example:"2024-12-31"`                                        // Last day of the contract period
	TotalValue       decimal.Decimal       `json:"totalValue" example:"15000" default:"0"`                              // Total committed value
	InstallmentCount int                   `json:"installmentCount" example:"10" default:"1"`                           // Number of installments the value is paid out in
}

// model transforms the API representation into the model representation
func (e ContractEditable) model() models.Contract {
	return models.Contract{
		Number:           e.Number,
		Object:           e.Object,
		Responsible:      e.Responsible,
		Type:             e.Type,
		Status:           e.Status,
		SectorID:         e.SectorID,
		LineItemID:       e.LineItemID,
		VendorID:         e.VendorID,
		RecipientID:      e.RecipientID,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		TotalValue:       e.TotalValue,
		InstallmentCount: e.InstallmentCount,
	}
}

type ContractLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/contracts/65064f5f-70f0-4972-8041-a1ee1a2bbcbd"`                          // The contract itself
	Installments  string `json:"installments" example:"https://example.com/api/v1/installments?contract=65064f5f-70f0-4972-8041-a1ee1a2bbcbd"`      // The contract's installments
	StatusHistory string `json:"statusHistory" example:"https://example.com/api/v1/status-history?contract=65064f5f-70f0-4972-8041-a1ee1a2bbcbd"`   // The contract's status history
	Movements     string `json:"movements" example:"https://example.com/api/v1/movements?contract=65064f5f-70f0-4972-8041-a1ee1a2bbcbd"`            // The contract's financial movements
	RefreshStatus string `json:"refreshStatus" example:"https://example.com/api/v1/contracts/65064f5f-70f0-4972-8041-a1ee1a2bbcbd/refresh-status"` // Endpoint to re-evaluate the status
}

// ContractComputed holds values derived from the contract and its
// installments. It is only set on single contract responses.
type ContractComputed struct {
	InstallmentValue    decimal.Decimal `json:"installmentValue" example:"1500"`   // Value of a single installment
	BalanceDue          decimal.Decimal `json:"balanceDue" example:"7500"`         // Committed value that has not been paid yet
	ExecutedPercentage  decimal.Decimal `json:"executedPercentage" example:"50"`   // Share of the total value already paid, in percent
	PaidInstallments    int64           `json:"paidInstallments" example:"5"`      // Number of installments already paid
	PendingInstallments int64           `json:"pendingInstallments" example:"5"`   // Number of installments still open
}

type Contract struct {
	models.DefaultModel
	ContractEditable
	PreviousStatus models.ContractStatus `json:"previousStatus" example:"draft"` // Status before the most recent status change
	TotalPaid      decimal.Decimal       `json:"totalPaid" example:"7500"`       // Sum of all paid installments
	CreatedByID    *uuid.UUID            `json:"createdById"`                    // ID of the user who created the contract
	UpdatedByID    *uuid.UUID            `json:"updatedById"`                    // ID of the user who last updated the contract
	Computed       *ContractComputed     `json:"computed,omitempty"`             // Derived values, only set on single contract responses
	Links          ContractLinks         `json:"links"`                          // Links to related resources
}

func newContract(c *gin.Context, model models.Contract) Contract {
	url := c.GetString(string(models.DBContextURL))

	return Contract{
		DefaultModel: model.DefaultModel,
		ContractEditable: ContractEditable{
			Number:           model.Number,
			Object:           model.Object,
			Responsible:      model.Responsible,
			Type:             model.Type,
			Status:           model.Status,
			SectorID:         model.SectorID,
			LineItemID:       model.LineItemID,
			VendorID:         model.VendorID,
			RecipientID:      model.RecipientID,
			StartDate:        model.StartDate,
			EndDate:          model.EndDate,
			TotalValue:       model.TotalValue,
			InstallmentCount: model.InstallmentCount,
		},
		PreviousStatus: model.PreviousStatus,
		TotalPaid:      model.TotalPaid,
		CreatedByID:    model.CreatedByID,
		UpdatedByID:    model.UpdatedByID,
		Links: ContractLinks{
			Self:          fmt.Sprintf("%s/v1/contracts/%s", url, model.ID),
			Installments:  fmt.Sprintf("%s/v1/installments?contract=%s", url, model.ID),
			StatusHistory: fmt.Sprintf("%s/v1/status-history?contract=%s", url, model.ID),
			Movements:     fmt.Sprintf("%s/v1/movements?contract=%s", url, model.ID),
			RefreshStatus: fmt.Sprintf("%s/v1/contracts/%s/refresh-status", url, model.ID),
		},
	}
}

// newContractComputed derives the computed values for a single contract.
func newContractComputed(model models.Contract, paidCount int64) ContractComputed {
	count := model.InstallmentCount
	if count < 1 {
		count = 1
	}

	executed := decimal.Zero
	if model.TotalValue.IsPositive() {
		executed = model.TotalPaid.Div(model.TotalValue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return ContractComputed{
		InstallmentValue:    model.TotalValue.Div(decimal.NewFromInt(int64(count))).Round(2),
		BalanceDue:          model.TotalValue.Sub(model.TotalPaid),
		ExecutedPercentage:  executed,
		PaidInstallments:    paidCount,
		PendingInstallments: int64(model.InstallmentCount) - paidCount,
	}
}

type ContractListResponse struct {
	Data       []Contract  `json:"data"`                                                          // List of contracts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ContractCreateResponse struct {
	Data  []ContractResponse `json:"data"`                                                          // Data for the contract
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *ContractCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, ContractResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ContractResponse struct {
	Data  *Contract `json:"data"`                                                          // Data for the contract
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ContractQueryFilter struct {
	Sector    string `form:"sector"`                     // By the ID of the sector
	LineItem  string `form:"lineItem"`                   // By the ID of the line item
	Vendor    string `form:"vendor"`                     // By the ID of the vendor
	Recipient string `form:"recipient"`                  // By the ID of the grant recipient
	Status    string `form:"status"`                     // By the status
	Type      string `form:"type"`                       // By the type
	Search    string `form:"search" filterField:"false"` // By string in number or object
	Offset    uint   `form:"offset" filterField:"false"` // The offset of the first contract returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`  // Maximum number of contracts to return. Defaults to 50.
}

func (f ContractQueryFilter) model() (models.Contract, error) {
	sectorID, err := httputil.UUIDFromString(f.Sector)
	if err != nil {
		return models.Contract{}, err
	}

	lineItemID, err := httputil.UUIDFromString(f.LineItem)
	if err != nil {
		return models.Contract{}, err
	}

	vendorID, err := httputil.UUIDFromString(f.Vendor)
	if err != nil {
		return models.Contract{}, err
	}

	recipientID, err := httputil.UUIDFromString(f.Recipient)
	if err != nil {
		return models.Contract{}, err
	}

	contract := models.Contract{
		SectorID:   sectorID,
		LineItemID: lineItemID,
		Status:     models.ContractStatus(f.Status),
		Type:       models.ContractType(f.Type),
	}

	if vendorID != uuid.Nil {
		contract.VendorID = &vendorID
	}
	if recipientID != uuid.Nil {
		contract.RecipientID = &recipientID
	}

	return contract, nil
}
