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

type MovementLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/movements/5e702b44-8d3e-4a5e-b3f0-ca3f4a6a08ef"` // The movement itself
}

// MovementEntry is an append-only bookkeeping row. It is written by
// payment and transfer operations and can only be read.
type MovementEntry struct {
	models.DefaultModel
	Type            models.MovementType `json:"type" example:"outflow"`                                         // Type of the movement
	FundingSourceID *uuid.UUID          `json:"fundingSourceId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the funding source the money belongs to
	SectorID        uuid.UUID           `json:"sectorId" example:"2cb6f045-8f60-4f70-98f5-0a4cbd27a765"`        // ID of the sector
	LineItemID      uuid.UUID           `json:"lineItemId" example:"6b40ba1c-14a1-4bc9-bbd8-8a517e1408c8"`      // ID of the line item
	ContractID      *uuid.UUID          `json:"contractId" example:"65064f5f-70f0-4972-8041-a1ee1a2bbcbd"`      // ID of the contract, if the movement belongs to one
	InstallmentID   *uuid.UUID          `json:"installmentId" example:"a4a594f6-b688-465c-a6a1-eb0fca819b82"`   // ID of the installment, if the movement paid one
	Amount          decimal.Decimal     `json:"amount" example:"1500"`                                          // Amount that moved
	Date            types.Date          `json:"date" example:"2024-05-03"`                                      // Date of the movement
	Description     string              `json:"description" example:"installment payment"`                      // What the movement was for
	ActorID         *uuid.UUID          `json:"actorId"`                                                        // ID of the user who caused the movement
	Links           MovementLinks       `json:"links"`                                                          // Links to related resources
}

func newMovementEntry(c *gin.Context, model models.Movement) MovementEntry {
	url := c.GetString(string(models.DBContextURL))

	return MovementEntry{
		DefaultModel:    model.DefaultModel,
		Type:            model.Type,
		FundingSourceID: model.FundingSourceID,
		SectorID:        model.SectorID,
		LineItemID:      model.LineItemID,
		ContractID:      model.ContractID,
		InstallmentID:   model.InstallmentID,
		Amount:          model.Amount,
		Date:            model.Date,
		Description:     model.Description,
		ActorID:         model.ActorID,
		Links: MovementLinks{
			Self: fmt.Sprintf("%s/v1/movements/%s", url, model.ID),
		},
	}
}

type MovementListResponse struct {
	Data       []MovementEntry `json:"data"`                                                          // List of movements
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type MovementResponse struct {
	Data  *MovementEntry `json:"data"`                                                          // Data for the movement
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MovementQueryFilter struct {
	Type          string `form:"type"`                       // By the type
	FundingSource string `form:"fundingSource"`              // By the ID of the funding source
	Sector        string `form:"sector"`                     // By the ID of the sector
	LineItem      string `form:"lineItem"`                   // By the ID of the line item
	Contract      string `form:"contract"`                   // By the ID of the contract
	Installment   string `form:"installment"`                // By the ID of the installment
	Offset        uint   `form:"offset" filterField:"false"` // The offset of the first movement returned. Defaults to 0.
	Limit         int    `form:"limit" filterField:"false"`  // Maximum number of movements to return. Defaults to 50.
}

func (f MovementQueryFilter) model() (models.Movement, error) {
	fundingSourceID, err := httputil.UUIDFromString(f.FundingSource)
	if err != nil {
		return models.Movement{}, err
	}

	sectorID, err := httputil.UUIDFromString(f.Sector)
	if err != nil {
		return models.Movement{}, err
	}

	lineItemID, err := httputil.UUIDFromString(f.LineItem)
	if err != nil {
		return models.Movement{}, err
	}

	contractID, err := httputil.UUIDFromString(f.Contract)
	if err != nil {
		return models.Movement{}, err
	}

	installmentID, err := httputil.UUIDFromString(f.Installment)
	if err != nil {
		return models.Movement{}, err
	}

	movement := models.Movement{
		Type:       models.MovementType(f.Type),
		SectorID:   sectorID,
		LineItemID: lineItemID,
	}

	if fundingSourceID != uuid.Nil {
		movement.FundingSourceID = &fundingSourceID
	}
	if contractID != uuid.Nil {
		movement.ContractID = &contractID
	}
	if installmentID != uuid.Nil {
		movement.InstallmentID = &installmentID
	}

	return movement, nil
}
