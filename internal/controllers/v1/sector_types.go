package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SectorEditable represents all user configurable parameters
type SectorEditable struct {
	Name              string    `json:"name" example:"Cultural Programs" default:""`                         // Name of the sector
	Acronym           string    `json:"acronym" example:"CP" default:""`                                     // Short acronym of the sector
	Note              string    `json:"note" example:"Responsible for all public programming" default:""`    // Notes about the sector
	ResponsibleUserID uuid.UUID `json:"responsibleUserId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`    // ID of the user responsible for the sector
}

// model transforms the API representation into the model representation
func (s SectorEditable) model() models.Sector {
	return models.Sector{
		Name:              s.Name,
		Acronym:           s.Acronym,
		Note:              s.Note,
		ResponsibleUserID: s.ResponsibleUserID,
	}
}

type SectorLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/sectors/45b6b5b9-f746-4ae9-b77b-7688b91f8166"`                  // The sector itself
	Allocations string `json:"allocations" example:"https://example.com/api/v1/allocations?sector=45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // The sector's allocations
	Contracts   string `json:"contracts" example:"https://example.com/api/v1/contracts?sector=45b6b5b9-f746-4ae9-b77b-7688b91f8166"`     // The sector's contracts
	Transfers   string `json:"transfers" example:"https://example.com/api/v1/transfers?sourceSector=45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // Transfers where the sector is the source
}

type Sector struct {
	models.DefaultModel
	SectorEditable
	Links SectorLinks `json:"links"` // Links to related resources
}

func newSector(c *gin.Context, model models.Sector) Sector {
	url := c.GetString(string(models.DBContextURL))

	return Sector{
		DefaultModel: model.DefaultModel,
		SectorEditable: SectorEditable{
			Name:              model.Name,
			Acronym:           model.Acronym,
			Note:              model.Note,
			ResponsibleUserID: model.ResponsibleUserID,
		},
		Links: SectorLinks{
			Self:        fmt.Sprintf("%s/v1/sectors/%s", url, model.ID),
			Allocations: fmt.Sprintf("%s/v1/allocations?sector=%s", url, model.ID),
			Contracts:   fmt.Sprintf("%s/v1/contracts?sector=%s", url, model.ID),
			Transfers:   fmt.Sprintf("%s/v1/transfers?sourceSector=%s", url, model.ID),
		},
	}
}

type SectorListResponse struct {
	Data       []Sector    `json:"data"`                                                          // List of sectors
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type SectorCreateResponse struct {
	Data  []SectorResponse `json:"data"`                                                          // Data for the sector
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *SectorCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, SectorResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SectorResponse struct {
	Data  *Sector `json:"data"`                                                          // Data for the sector
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SectorQueryFilter struct {
	Name              string `form:"name" filterField:"false"`   // By name
	Note              string `form:"note" filterField:"false"`   // By the note
	ResponsibleUserID string `form:"responsibleUser"`            // By the ID of the responsible user
	Search            string `form:"search" filterField:"false"` // By string in name or note
	Offset            uint   `form:"offset" filterField:"false"` // The offset of the first sector returned. Defaults to 0.
	Limit             int    `form:"limit" filterField:"false"`  // Maximum number of sectors to return. Defaults to 50.
}

func (f SectorQueryFilter) model() (models.Sector, error) {
	responsibleUserID, err := httputil.UUIDFromString(f.ResponsibleUserID)
	if err != nil {
		return models.Sector{}, err
	}

	return models.Sector{
		ResponsibleUserID: responsibleUserID,
	}, nil
}
