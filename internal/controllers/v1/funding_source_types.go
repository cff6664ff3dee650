package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FundingSourceEditable represents all user configurable parameters
type FundingSourceEditable struct {
	Name        string          `json:"name" example:"Culture Incentive Fund" default:""`           // Name of the funding source
	Note        string          `json:"note" example:"State culture funding for 2025" default:""`   // Notes about the funding source
	TotalAmount decimal.Decimal `json:"totalAmount" example:"100000" default:"0"`                   // Total amount of the funding source
	ValidFrom   types.Date      `json:"validFrom" example:"2025-01-01"`                             // First day the funding source is valid
	ValidUntil  *types.Date     `json:"validUntil" example:"2025-12-31"`                            // Last day the funding source is valid. Empty for open-ended sources
}

// model transforms the API representation into the model representation
func (f FundingSourceEditable) model() models.FundingSource {
	return models.FundingSource{
		Name:        f.Name,
		Note:        f.Note,
		TotalAmount: f.TotalAmount,
		ValidFrom:   f.ValidFrom,
		ValidUntil:  f.ValidUntil,
	}
}

type FundingSourceLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/funding-sources/45b6b5b9-f746-4ae9-b77b-7688b91f8166"`         // The funding source itself
	Goals       string `json:"goals" example:"https://example.com/api/v1/goals?fundingSource=45b6b5b9-f746-4ae9-b77b-7688b91f8166"`     // The funding source's goals
	Allocations string `json:"allocations" example:"https://example.com/api/v1/allocations?fundingSource=45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // The funding source's allocations
}

// FundingSourceComputed holds values derived from the funding source's
// goals and allocations.
type FundingSourceComputed struct {
	Goals     int64           `json:"goals" example:"4"`         // Number of goals drawing on the funding source
	Allocated decimal.Decimal `json:"allocated" example:"80000"` // Sum of the allocations drawing on the funding source
	Available decimal.Decimal `json:"available" example:"20000"` // Total amount minus the allocated sum
}

type FundingSource struct {
	models.DefaultModel
	FundingSourceEditable
	Links    FundingSourceLinks     `json:"links"`              // Links to related resources
	Computed *FundingSourceComputed `json:"computed,omitempty"` // Derived values, only set on single funding source responses
}

func newFundingSource(c *gin.Context, model models.FundingSource) FundingSource {
	url := c.GetString(string(models.DBContextURL))

	return FundingSource{
		DefaultModel: model.DefaultModel,
		FundingSourceEditable: FundingSourceEditable{
			Name:        model.Name,
			Note:        model.Note,
			TotalAmount: model.TotalAmount,
			ValidFrom:   model.ValidFrom,
			ValidUntil:  model.ValidUntil,
		},
		Links: FundingSourceLinks{
			Self:        fmt.Sprintf("%s/v1/funding-sources/%s", url, model.ID),
			Goals:       fmt.Sprintf("%s/v1/goals?fundingSource=%s", url, model.ID),
			Allocations: fmt.Sprintf("%s/v1/allocations?fundingSource=%s", url, model.ID),
		},
	}
}

type FundingSourceListResponse struct {
	Data       []FundingSource `json:"data"`                                                          // List of funding sources
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type FundingSourceCreateResponse struct {
	Data  []FundingSourceResponse `json:"data"`                                                          // Data for the funding source
	Error *string                 `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// appendError appends a FundingSourceResponse with the error and returns the updated HTTP status
func (f *FundingSourceCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	f.Data = append(f.Data, FundingSourceResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type FundingSourceResponse struct {
	Data  *FundingSource `json:"data"`                                                          // Data for the funding source
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type FundingSourceQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By the note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first funding source returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of funding sources to return. Defaults to 50.
}

func (f FundingSourceQueryFilter) model() (models.FundingSource, error) {
	return models.FundingSource{}, nil
}
