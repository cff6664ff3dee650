package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestMovementsReadOnly verifies that the ledger cannot be written to
// directly.
func (suite *TestSuiteStandard) TestMovementsReadOnly() {
	r := suite.request(http.MethodPost, "http://example.com/v1/movements", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)

	r = suite.request(http.MethodOptions, "http://example.com/v1/movements", "")
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestMovementsGetSingle() {
	contract := suite.createTestContract(v1.ContractEditable{})

	r := suite.request(http.MethodPost, suite.firstInstallment(contract).Links.RegisterPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/movements?contract=%s", contract.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.MovementListResponse
	test.DecodeResponse(suite.T(), &r, &list)

	if !assert.Len(suite.T(), list.Data, 1) {
		suite.FailNow("contract does not have exactly one movement")
	}

	r = suite.request(http.MethodGet, list.Data[0].Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MovementResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), models.MovementTypeOutflow, response.Data.Type)
	assert.Equal(suite.T(), "1000", response.Data.Amount.String())
	assert.Equal(suite.T(), contract.Data.SectorID, response.Data.SectorID)

	if assert.NotNil(suite.T(), response.Data.ActorID) {
		assert.Equal(suite.T(), suite.user.ID, *response.Data.ActorID)
	}
}

func (suite *TestSuiteStandard) TestMovementsGetFiltered() {
	contract := suite.createTestContract(v1.ContractEditable{})

	r := suite.request(http.MethodPost, suite.firstInstallment(contract).Links.RegisterPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	transfer := suite.createTestTransfer(v1.TransferEditable{})
	r = suite.request(http.MethodPost, transfer.Data.Links.Approve, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	tests := []struct {
		query string
		count int
	}{
		{"type=outflow", 1},
		{"type=transfer", 1},
		{"type=inflow", 0},
		{fmt.Sprintf("sector=%s", contract.Data.SectorID), 1},
		{"", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/movements?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.MovementListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}
