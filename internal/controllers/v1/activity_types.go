package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActivityEditable represents all user configurable parameters
type ActivityEditable struct {
	Name          string          `json:"name" example:"Annual music festival" default:""`          // Name of the activity
	Note          string          `json:"note" example:"Main stage and workshops" default:""`       // Notes about the activity
	GoalID        uuid.UUID       `json:"goalId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`    // ID of the goal the activity belongs to
	PlannedAmount decimal.Decimal `json:"plannedAmount" example:"30000" default:"0"`                // Planned amount for the activity
}

// model transforms the API representation into the model representation
func (a ActivityEditable) model() models.Activity {
	return models.Activity{
		Name:          a.Name,
		Note:          a.Note,
		GoalID:        a.GoalID,
		PlannedAmount: a.PlannedAmount,
	}
}

type ActivityLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/activities/45b6b5b9-f746-4ae9-b77b-7688b91f8166"`               // The activity itself
	LineItems string `json:"lineItems" example:"https://example.com/api/v1/line-items?activity=45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // The activity's line items
}

type Activity struct {
	models.DefaultModel
	ActivityEditable
	Links ActivityLinks `json:"links"` // Links to related resources
}

func newActivity(c *gin.Context, model models.Activity) Activity {
	url := c.GetString(string(models.DBContextURL))

	return Activity{
		DefaultModel: model.DefaultModel,
		ActivityEditable: ActivityEditable{
			Name:          model.Name,
			Note:          model.Note,
			GoalID:        model.GoalID,
			PlannedAmount: model.PlannedAmount,
		},
		Links: ActivityLinks{
			Self:      fmt.Sprintf("%s/v1/activities/%s", url, model.ID),
			LineItems: fmt.Sprintf("%s/v1/line-items?activity=%s", url, model.ID),
		},
	}
}

type ActivityListResponse struct {
	Data       []Activity  `json:"data"`                                                          // List of activities
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ActivityCreateResponse struct {
	Data  []ActivityResponse `json:"data"`                                                          // Data for the activity
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *ActivityCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, ActivityResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ActivityResponse struct {
	Data  *Activity `json:"data"`                                                          // Data for the activity
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ActivityQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By the note
	GoalID string `form:"goal"`                       // By the ID of the goal
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first activity returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of activities to return. Defaults to 50.
}

func (f ActivityQueryFilter) model() (models.Activity, error) {
	goalID, err := httputil.UUIDFromString(f.GoalID)
	if err != nil {
		return models.Activity{}, err
	}

	return models.Activity{
		GoalID: goalID,
	}, nil
}
