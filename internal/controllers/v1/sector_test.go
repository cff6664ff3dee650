package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSectorsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Sector with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Sector exists", suite.createTestSector(v1.SectorEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/sectors", tt.id)
			r := suite.request(http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestSectorsCreate() {
	sector := suite.createTestSector(v1.SectorEditable{Name: "Performing Arts", Acronym: "PA"})

	require.NotNil(suite.T(), sector.Data)
	assert.Equal(suite.T(), "Performing Arts", sector.Data.Name)
	assert.Equal(suite.T(), suite.user.ID, sector.Data.ResponsibleUserID)
	assert.NotEmpty(suite.T(), sector.Data.Links.Self)
}

// TestSectorsCreateUnknownUser verifies that a sector cannot reference a
// user that does not exist.
func (suite *TestSuiteStandard) TestSectorsCreateUnknownUser() {
	suite.createTestSector(v1.SectorEditable{ResponsibleUserID: uuid.New()}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSectorsCreateInvalidBody() {
	r := suite.request(http.MethodPost, "http://example.com/v1/sectors", `{ invalid" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSectorsGetSingle() {
	sector := suite.createTestSector(v1.SectorEditable{})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing Sector", sector.Data.ID.String(), http.StatusOK},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"Not parseable", "not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/sectors/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestSectorsGetFiltered() {
	suite.createTestSector(v1.SectorEditable{Name: "Performing Arts", Note: "theatre and dance"})
	suite.createTestSector(v1.SectorEditable{Name: "Visual Arts"})
	suite.createTestSector(v1.SectorEditable{Name: "Heritage"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"Search in name", "search=arts", 2},
		{"Search in note", "search=theatre", 1},
		{"Name", "name=Heritage", 1},
		{"Responsible user", "responsibleUser=" + suite.user.ID.String(), 3},
		{"Unknown responsible user", "responsibleUser=" + uuid.New().String(), 0},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodGet, "http://example.com/v1/sectors?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.SectorListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestSectorsPagination() {
	for i := 0; i < 3; i++ {
		suite.createTestSector(v1.SectorEditable{})
	}

	r := suite.request(http.MethodGet, "http://example.com/v1/sectors?limit=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SectorListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Pagination)
	assert.Equal(suite.T(), 2, response.Pagination.Count)
	assert.Equal(suite.T(), int64(3), response.Pagination.Total)
	assert.Equal(suite.T(), 2, response.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestSectorsUpdate() {
	sector := suite.createTestSector(v1.SectorEditable{Name: "Old Name", Note: "A note"})

	r := suite.request(http.MethodPatch, sector.Data.Links.Self, map[string]any{
		"name": "New Name",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SectorResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "New Name", updated.Data.Name)

	// Fields not in the body are untouched
	assert.Equal(suite.T(), "A note", updated.Data.Note)
}

func (suite *TestSuiteStandard) TestSectorsDelete() {
	sector := suite.createTestSector(v1.SectorEditable{})

	r := suite.request(http.MethodDelete, sector.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, sector.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestSectorsDeleteReferenced verifies that a sector with allocations
// cannot be deleted.
func (suite *TestSuiteStandard) TestSectorsDeleteReferenced() {
	sector := suite.createTestSector(v1.SectorEditable{})
	suite.createTestAllocation(v1.AllocationEditable{SectorID: sector.Data.ID})

	r := suite.request(http.MethodDelete, sector.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}
