package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatusHistoryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/status-history/95018a69-758b-485f-9e17-9a2f6704c7bd"` // The status history entry itself
	Contract string `json:"contract" example:"https://example.com/api/v1/contracts/65064f5f-70f0-4972-8041-a1ee1a2bbcbd"`  // The contract the entry belongs to
}

// StatusHistoryEntry is an append-only record of a contract status
// change. It can only be read, never written directly.
type StatusHistoryEntry struct {
	models.DefaultModel
	ContractID     uuid.UUID             `json:"contractId" example:"65064f5f-70f0-4972-8041-a1ee1a2bbcbd"` // ID of the contract
	PreviousStatus models.ContractStatus `json:"previousStatus" example:"draft"`                            // Status before the change
	NewStatus      models.ContractStatus `json:"newStatus" example:"signed"`                                // Status after the change
	Reason         string                `json:"reason" example:"manual status update"`                     // Why the status changed
	ActorID        *uuid.UUID            `json:"actorId"`                                                   // ID of the user who caused the change, empty for automatic changes
	Links          StatusHistoryLinks    `json:"links"`                                                     // Links to related resources
}

func newStatusHistoryEntry(c *gin.Context, model models.StatusHistory) StatusHistoryEntry {
	url := c.GetString(string(models.DBContextURL))

	return StatusHistoryEntry{
		DefaultModel:   model.DefaultModel,
		ContractID:     model.ContractID,
		PreviousStatus: model.PreviousStatus,
		NewStatus:      model.NewStatus,
		Reason:         model.Reason,
		ActorID:        model.ActorID,
		Links: StatusHistoryLinks{
			Self:     fmt.Sprintf("%s/v1/status-history/%s", url, model.ID),
			Contract: fmt.Sprintf("%s/v1/contracts/%s", url, model.ContractID),
		},
	}
}

type StatusHistoryListResponse struct {
	Data       []StatusHistoryEntry `json:"data"`                                                          // List of status history entries
	Error      *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination          `json:"pagination"`                                                    // Pagination information
}

type StatusHistoryResponse struct {
	Data  *StatusHistoryEntry `json:"data"`                                                          // Data for the status history entry
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type StatusHistoryQueryFilter struct {
	Contract string `form:"contract"`                   // By the ID of the contract
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first entry returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of entries to return. Defaults to 50.
}

func (f StatusHistoryQueryFilter) model() (models.StatusHistory, error) {
	contractID, err := httputil.UUIDFromString(f.Contract)
	if err != nil {
		return models.StatusHistory{}, err
	}

	return models.StatusHistory{
		ContractID: contractID,
	}, nil
}
