package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// SystemConfigEditable represents all user configurable parameters
type SystemConfigEditable struct {
	Key         string `json:"key" example:"fiscal_year_start" default:""`              // Unique key of the configuration entry
	Value       string `json:"value" example:"01-01" default:""`                        // Value of the configuration entry
	Description string `json:"description" example:"Start of the fiscal year" default:""` // Description of what the entry configures
}

// model transforms the API representation into the model representation
func (s SystemConfigEditable) model() models.SystemConfig {
	return models.SystemConfig{
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
	}
}

type SystemConfigLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/system-config/af892e10-7e0a-4fb8-b1bc-4f5d07db64e4"` // The configuration entry itself
}

type SystemConfig struct {
	models.DefaultModel
	SystemConfigEditable
	Links SystemConfigLinks `json:"links"` // Links to related resources
}

func newSystemConfig(c *gin.Context, model models.SystemConfig) SystemConfig {
	url := c.GetString(string(models.DBContextURL))

	return SystemConfig{
		DefaultModel: model.DefaultModel,
		SystemConfigEditable: SystemConfigEditable{
			Key:         model.Key,
			Value:       model.Value,
			Description: model.Description,
		},
		Links: SystemConfigLinks{
			Self: fmt.Sprintf("%s/v1/system-config/%s", url, model.ID),
		},
	}
}

type SystemConfigListResponse struct {
	Data       []SystemConfig `json:"data"`                                                          // List of configuration entries
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type SystemConfigCreateResponse struct {
	Data  []SystemConfigResponse `json:"data"`                                                          // Data for the configuration entry
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *SystemConfigCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, SystemConfigResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SystemConfigResponse struct {
	Data  *SystemConfig `json:"data"`                                                          // Data for the configuration entry
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SystemConfigQueryFilter struct {
	Key    string `form:"key"`                        // By the key
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first entry returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of entries to return. Defaults to 50.
}

func (f SystemConfigQueryFilter) model() (models.SystemConfig, error) {
	return models.SystemConfig{
		Key: f.Key,
	}, nil
}
