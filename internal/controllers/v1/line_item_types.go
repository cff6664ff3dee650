package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemEditable represents all user configurable parameters
type LineItemEditable struct {
	Name          string          `json:"name" example:"Stage rental" default:""`                      // Name of the line item
	Note          string          `json:"note" example:"Main stage and sound equipment" default:""`    // Notes about the line item
	ActivityID    uuid.UUID       `json:"activityId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`   // ID of the activity the line item belongs to
	PlannedAmount decimal.Decimal `json:"plannedAmount" example:"5000" default:"0"`                    // Planned amount for the line item
}

// model transforms the API representation into the model representation
func (l LineItemEditable) model() models.LineItem {
	return models.LineItem{
		Name:          l.Name,
		Note:          l.Note,
		ActivityID:    l.ActivityID,
		PlannedAmount: l.PlannedAmount,
	}
}

type LineItemLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/line-items/45b6b5b9-f746-4ae9-b77b-7688b91f8166"`                 // The line item itself
	Allocations string `json:"allocations" example:"https://example.com/api/v1/allocations?lineItem=45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // The line item's allocations
	Contracts   string `json:"contracts" example:"https://example.com/api/v1/contracts?lineItem=45b6b5b9-f746-4ae9-b77b-7688b91f8166"`     // The line item's contracts
}

type LineItem struct {
	models.DefaultModel
	LineItemEditable
	Links LineItemLinks `json:"links"` // Links to related resources
}

func newLineItem(c *gin.Context, model models.LineItem) LineItem {
	url := c.GetString(string(models.DBContextURL))

	return LineItem{
		DefaultModel: model.DefaultModel,
		LineItemEditable: LineItemEditable{
			Name:          model.Name,
			Note:          model.Note,
			ActivityID:    model.ActivityID,
			PlannedAmount: model.PlannedAmount,
		},
		Links: LineItemLinks{
			Self:        fmt.Sprintf("%s/v1/line-items/%s", url, model.ID),
			Allocations: fmt.Sprintf("%s/v1/allocations?lineItem=%s", url, model.ID),
			Contracts:   fmt.Sprintf("%s/v1/contracts?lineItem=%s", url, model.ID),
		},
	}
}

type LineItemListResponse struct {
	Data       []LineItem  `json:"data"`                                                          // List of line items
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type LineItemCreateResponse struct {
	Data  []LineItemResponse `json:"data"`                                                          // Data for the line item
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (l *LineItemCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	l.Data = append(l.Data, LineItemResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type LineItemResponse struct {
	Data  *LineItem `json:"data"`                                                          // Data for the line item
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type LineItemQueryFilter struct {
	Name       string `form:"name" filterField:"false"`   // By name
	Note       string `form:"note" filterField:"false"`   // By the note
	ActivityID string `form:"activity"`                   // By the ID of the activity
	Search     string `form:"search" filterField:"false"` // By string in name or note
	Offset     uint   `form:"offset" filterField:"false"` // The offset of the first line item returned. Defaults to 0.
	Limit      int    `form:"limit" filterField:"false"`  // Maximum number of line items to return. Defaults to 50.
}

func (f LineItemQueryFilter) model() (models.LineItem, error) {
	activityID, err := httputil.UUIDFromString(f.ActivityID)
	if err != nil {
		return models.LineItem{}, err
	}

	return models.LineItem{
		ActivityID: activityID,
	}, nil
}
