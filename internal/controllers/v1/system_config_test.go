package v1_test

import (
	"net/http"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestSystemConfig(editable v1.SystemConfigEditable, expectedStatus ...int) v1.SystemConfigResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := suite.request(http.MethodPost, "http://example.com/v1/system-config", []v1.SystemConfigEditable{editable})
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus...)

	var response v1.SystemConfigCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.SystemConfigResponse{}
}

func (suite *TestSuiteStandard) TestSystemConfigCreate() {
	entry := suite.createTestSystemConfig(v1.SystemConfigEditable{
		Key:         "fiscal_year_start",
		Value:       "01-01",
		Description: "Start of the fiscal year",
	})

	require.NotNil(suite.T(), entry.Data)
	assert.Equal(suite.T(), "fiscal_year_start", entry.Data.Key)
}

// TestSystemConfigDuplicateKey verifies that keys are unique.
func (suite *TestSuiteStandard) TestSystemConfigDuplicateKey() {
	suite.createTestSystemConfig(v1.SystemConfigEditable{Key: "fiscal_year_start", Value: "01-01"})
	suite.createTestSystemConfig(v1.SystemConfigEditable{Key: "fiscal_year_start", Value: "04-01"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSystemConfigUpdate() {
	entry := suite.createTestSystemConfig(v1.SystemConfigEditable{Key: "notification_days", Value: "7"})

	r := suite.request(http.MethodPatch, entry.Data.Links.Self, map[string]any{
		"value": "14",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SystemConfigResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "14", response.Data.Value)
	assert.Equal(suite.T(), "notification_days", response.Data.Key)
}

func (suite *TestSuiteStandard) TestSystemConfigGetByKey() {
	suite.createTestSystemConfig(v1.SystemConfigEditable{Key: "fiscal_year_start", Value: "01-01"})
	suite.createTestSystemConfig(v1.SystemConfigEditable{Key: "notification_days", Value: "7"})

	r := suite.request(http.MethodGet, "http://example.com/v1/system-config?key=notification_days", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SystemConfigListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "7", response.Data[0].Value)
}

func (suite *TestSuiteStandard) TestSystemConfigDelete() {
	entry := suite.createTestSystemConfig(v1.SystemConfigEditable{Key: "temporary", Value: "x"})

	r := suite.request(http.MethodDelete, entry.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, entry.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
