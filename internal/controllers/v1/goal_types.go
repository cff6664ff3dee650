package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalEditable represents all user configurable parameters
type GoalEditable struct {
	Name            string          `json:"name" example:"Strengthen local culture" default:""`                      // Name of the goal
	Note            string          `json:"note" example:"All activities for the annual festival" default:""`        // Notes about the goal
	FundingSourceID uuid.UUID       `json:"fundingSourceId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`           // ID of the funding source the goal belongs to
	PlannedAmount   decimal.Decimal `json:"plannedAmount" example:"50000" default:"0"`                                // Planned amount for the goal
}

// model transforms the API representation into the model representation
func (g GoalEditable) model() models.Goal {
	return models.Goal{
		Name:            g.Name,
		Note:            g.Note,
		FundingSourceID: g.FundingSourceID,
		PlannedAmount:   g.PlannedAmount,
	}
}

type GoalLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/goals/45b6b5b9-f746-4ae9-b77b-7688b91f8166"`              // The goal itself
	Activities string `json:"activities" example:"https://example.com/api/v1/activities?goal=45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // The goal's activities
}

type Goal struct {
	models.DefaultModel
	GoalEditable
	Links GoalLinks `json:"links"` // Links to related resources
}

func newGoal(c *gin.Context, model models.Goal) Goal {
	url := c.GetString(string(models.DBContextURL))

	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			Name:            model.Name,
			Note:            model.Note,
			FundingSourceID: model.FundingSourceID,
			PlannedAmount:   model.PlannedAmount,
		},
		Links: GoalLinks{
			Self:       fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
			Activities: fmt.Sprintf("%s/v1/activities?goal=%s", url, model.ID),
		},
	}
}

type GoalListResponse struct {
	Data       []Goal      `json:"data"`                                                          // List of goals
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GoalCreateResponse struct {
	Data  []GoalResponse `json:"data"`                                                          // Data for the goal
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *GoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GoalResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GoalResponse struct {
	Data  *Goal   `json:"data"`                                                          // Data for the goal
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GoalQueryFilter struct {
	Name            string `form:"name" filterField:"false"`   // By name
	Note            string `form:"note" filterField:"false"`   // By the note
	FundingSourceID string `form:"fundingSource"`              // By the ID of the funding source
	Search          string `form:"search" filterField:"false"` // By string in name or note
	Offset          uint   `form:"offset" filterField:"false"` // The offset of the first goal returned. Defaults to 0.
	Limit           int    `form:"limit" filterField:"false"`  // Maximum number of goals to return. Defaults to 50.
}

func (f GoalQueryFilter) model() (models.Goal, error) {
	fundingSourceID, err := httputil.UUIDFromString(f.FundingSourceID)
	if err != nil {
		return models.Goal{}, err
	}

	return models.Goal{
		FundingSourceID: fundingSourceID,
	}, nil
}
