package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationEditable represents all user configurable parameters
type AllocationEditable struct {
	FundingSourceID uuid.UUID       `json:"fundingSourceId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the funding source the amount comes from
	SectorID        uuid.UUID       `json:"sectorId" example:"d7b68559-d29a-4fe9-b2f1-5b1e5a8b8e5a"`        // ID of the sector the amount is allocated to
	LineItemID      uuid.UUID       `json:"lineItemId" example:"a0909e84-e8f9-4cb6-82a5-025dff105ff2"`      // ID of the line item the amount is allocated for
	Amount          decimal.Decimal `json:"amount" example:"5000" default:"0"`                              // Allocated amount
}

// model transforms the API representation into the model representation
func (a AllocationEditable) model() models.Allocation {
	return models.Allocation{
		FundingSourceID: a.FundingSourceID,
		SectorID:        a.SectorID,
		LineItemID:      a.LineItemID,
		Amount:          a.Amount,
	}
}

type AllocationLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/allocations/45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // The allocation itself
}

type Allocation struct {
	models.DefaultModel
	AllocationEditable
	Links AllocationLinks `json:"links"` // Links to related resources
}

func newAllocation(c *gin.Context, model models.Allocation) Allocation {
	url := c.GetString(string(models.DBContextURL))

	return Allocation{
		DefaultModel: model.DefaultModel,
		AllocationEditable: AllocationEditable{
			FundingSourceID: model.FundingSourceID,
			SectorID:        model.SectorID,
			LineItemID:      model.LineItemID,
			Amount:          model.Amount,
		},
		Links: AllocationLinks{
			Self: fmt.Sprintf("%s/v1/allocations/%s", url, model.ID),
		},
	}
}

type AllocationListResponse struct {
	Data       []Allocation `json:"data"`                                                          // List of allocations
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type AllocationCreateResponse struct {
	Data  []AllocationResponse `json:"data"`                                                          // Data for the allocation
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AllocationCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AllocationResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AllocationResponse struct {
	Data  *Allocation `json:"data"`                                                          // Data for the allocation
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AllocationQueryFilter struct {
	FundingSourceID string `form:"fundingSource"`              // By the ID of the funding source
	SectorID        string `form:"sector"`                     // By the ID of the sector
	LineItemID      string `form:"lineItem"`                   // By the ID of the line item
	Offset          uint   `form:"offset" filterField:"false"` // The offset of the first allocation returned. Defaults to 0.
	Limit           int    `form:"limit" filterField:"false"`  // Maximum number of allocations to return. Defaults to 50.
}

func (f AllocationQueryFilter) model() (models.Allocation, error) {
	fundingSourceID, err := httputil.UUIDFromString(f.FundingSourceID)
	if err != nil {
		return models.Allocation{}, err
	}

	sectorID, err := httputil.UUIDFromString(f.SectorID)
	if err != nil {
		return models.Allocation{}, err
	}

	lineItemID, err := httputil.UUIDFromString(f.LineItemID)
	if err != nil {
		return models.Allocation{}, err
	}

	return models.Allocation{
		FundingSourceID: fundingSourceID,
		SectorID:        sectorID,
		LineItemID:      lineItemID,
	}, nil
}
