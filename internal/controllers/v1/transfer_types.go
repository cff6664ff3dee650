package v1

import (
	"fmt"
	"time"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferEditable represents all user configurable parameters
type TransferEditable struct {
	SourceSectorID      uuid.UUID       `json:"sourceSectorId" example:"2cb6f045-8f60-4f70-98f5-0a4cbd27a765"`      // ID of the sector the budget is moved from
	DestinationSectorID uuid.UUID       `json:"destinationSectorId" example:"00a3bfd1-9b44-4f60-8f81-6e3c602dde10"` // ID of the sector the budget is moved to
	LineItemID          uuid.UUID       `json:"lineItemId" example:"6b40ba1c-14a1-4bc9-bbd8-8a517e1408c8"`          // ID of the line item the budget belongs to
	Amount              decimal.Decimal `json:"amount" example:"2500" default:"0"`                                  // Amount to move
	Reason              string          `json:"reason" example:"Budget not needed for the spring program" default:""` // Reason for the transfer request
}

// model transforms the API representation into the model representation
func (e TransferEditable) model() models.Transfer {
	return models.Transfer{
		SourceSectorID:      e.SourceSectorID,
		DestinationSectorID: e.DestinationSectorID,
		LineItemID:          e.LineItemID,
		Amount:              e.Amount,
		Reason:              e.Reason,
	}
}

type TransferLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/transfers/ae3f8b27-3f70-4b43-9cd4-c8f3b7b77fca"`         // The transfer itself
	Approve string `json:"approve" example:"https://example.com/api/v1/transfers/ae3f8b27-3f70-4b43-9cd4-c8f3b7b77fca/approve"` // Endpoint to approve the transfer
	Reject  string `json:"reject" example:"https://example.com/api/v1/transfers/ae3f8b27-3f70-4b43-9cd4-c8f3b7b77fca/reject"`   // Endpoint to reject the transfer
}

type Transfer struct {
	models.DefaultModel
	TransferEditable
	Status        models.TransferStatus `json:"status" example:"pending"` // Status of the transfer request
	RequestedByID *uuid.UUID            `json:"requestedById"`            // ID of the user who requested the transfer
	ProcessedByID *uuid.UUID            `json:"processedById"`            // ID of the user who approved or rejected the transfer
	ProcessedAt   *time.Time            `json:"processedAt"`              // When the transfer was approved or rejected
	Links         TransferLinks         `json:"links"`                    // Links to related resources
}

func newTransfer(c *gin.Context, model models.Transfer) Transfer {
	url := c.GetString(string(models.DBContextURL))

	return Transfer{
		DefaultModel: model.DefaultModel,
		TransferEditable: TransferEditable{
			SourceSectorID:      model.SourceSectorID,
			DestinationSectorID: model.DestinationSectorID,
			LineItemID:          model.LineItemID,
			Amount:              model.Amount,
			Reason:              model.Reason,
		},
		Status:        model.Status,
		RequestedByID: model.RequestedByID,
		ProcessedByID: model.ProcessedByID,
		ProcessedAt:   model.ProcessedAt,
		Links: TransferLinks{
			Self:    fmt.Sprintf("%s/v1/transfers/%s", url, model.ID),
			Approve: fmt.Sprintf("%s/v1/transfers/%s/approve", url, model.ID),
			Reject:  fmt.Sprintf("%s/v1/transfers/%s/reject", url, model.ID),
		},
	}
}

type TransferListResponse struct {
	Data       []Transfer  `json:"data"`                                                          // List of transfers
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type TransferCreateResponse struct {
	Data  []TransferResponse `json:"data"`                                                          // Data for the transfer
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *TransferCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, TransferResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransferResponse struct {
	Data  *Transfer `json:"data"`                                                          // Data for the transfer
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransferQueryFilter struct {
	SourceSector      string `form:"sourceSector"`               // By the ID of the source sector
	DestinationSector string `form:"destinationSector"`          // By the ID of the destination sector
	LineItem          string `form:"lineItem"`                   // By the ID of the line item
	Status            string `form:"status"`                     // By the status
	Offset            uint   `form:"offset" filterField:"false"` // The offset of the first transfer returned. Defaults to 0.
	Limit             int    `form:"limit" filterField:"false"`  // Maximum number of transfers to return. Defaults to 50.
}

func (f TransferQueryFilter) model() (models.Transfer, error) {
	sourceSectorID, err := httputil.UUIDFromString(f.SourceSector)
	if err != nil {
		return models.Transfer{}, err
	}

	destinationSectorID, err := httputil.UUIDFromString(f.DestinationSector)
	if err != nil {
		return models.Transfer{}, err
	}

	lineItemID, err := httputil.UUIDFromString(f.LineItem)
	if err != nil {
		return models.Transfer{}, err
	}

	return models.Transfer{
		SourceSectorID:      sourceSectorID,
		DestinationSectorID: destinationSectorID,
		LineItemID:          lineItemID,
		Status:              models.TransferStatus(f.Status),
	}, nil
}
