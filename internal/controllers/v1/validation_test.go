package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/internal/types"
	"github.com/culturabase/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestBudgetAvailability() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(5000))

	suite.createTestContract(v1.ContractEditable{
		SectorID:   pair.Sector.ID,
		LineItemID: pair.LineItem.ID,
		TotalValue: decimal.NewFromInt(3000),
	})

	r := suite.request(http.MethodPost, "http://example.com/v1/validation/budget-availability", v1.BudgetAvailabilityQuery{
		SectorID:   pair.Sector.ID,
		LineItemID: pair.LineItem.ID,
		Amount:     decimal.NewFromInt(1500),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetAvailabilityResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "5000", response.Data.Allocated.String())
	assert.Equal(suite.T(), "3000", response.Data.Committed.String())
	assert.Equal(suite.T(), "2000", response.Data.Available.String())
	assert.True(suite.T(), response.Data.Sufficient)
}

func (suite *TestSuiteStandard) TestBudgetAvailabilityInsufficient() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(1000))

	r := suite.request(http.MethodPost, "http://example.com/v1/validation/budget-availability", v1.BudgetAvailabilityQuery{
		SectorID:   pair.Sector.ID,
		LineItemID: pair.LineItem.ID,
		Amount:     decimal.NewFromInt(2500),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetAvailabilityResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.False(suite.T(), response.Data.Sufficient)
}

// TestBudgetAvailabilityExcludesContract verifies that a contract's own
// commitment can be excluded, as done when checking an update.
func (suite *TestSuiteStandard) TestBudgetAvailabilityExcludesContract() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(1000))

	contract := suite.createTestContract(v1.ContractEditable{
		SectorID:   pair.Sector.ID,
		LineItemID: pair.LineItem.ID,
		TotalValue: decimal.NewFromInt(1000),
	})

	r := suite.request(http.MethodPost, "http://example.com/v1/validation/budget-availability", v1.BudgetAvailabilityQuery{
		SectorID:          pair.Sector.ID,
		LineItemID:        pair.LineItem.ID,
		Amount:            decimal.NewFromInt(1000),
		ExcludeContractID: contract.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetAvailabilityResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Committed.IsZero())
	assert.True(suite.T(), response.Data.Sufficient)
}

func (suite *TestSuiteStandard) TestBudgetAvailabilityUnknownSector() {
	lineItem := suite.createTestLineItem(v1.LineItemEditable{})

	r := suite.request(http.MethodPost, "http://example.com/v1/validation/budget-availability", v1.BudgetAvailabilityQuery{
		SectorID:   uuid.New(),
		LineItemID: lineItem.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestContractOverlap() {
	recipient := suite.createTestRecipient(v1.RecipientEditable{})
	recipientID := recipient.Data.ID

	suite.createTestContract(v1.ContractEditable{
		Type:        "grant",
		RecipientID: &recipientID,
		StartDate:   date(2025, 3, 1),
		EndDate:     date(2025, 6, 30),
	})

	tests := []struct {
		name     string
		start    string
		end      string
		overlaps bool
	}{
		{"Fully inside", "2025-04-01", "2025-05-01", true},
		{"Shared boundary date", "2025-06-30", "2025-12-31", true},
		{"After the contract", "2025-07-01", "2025-12-31", false},
		{"Before the contract", "2025-01-01", "2025-02-28", false},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			start, err := types.ParseDate(tt.start)
			require.NoError(t, err)
			end, err := types.ParseDate(tt.end)
			require.NoError(t, err)

			r := suite.request(http.MethodPost, "http://example.com/v1/validation/contract-overlap", v1.ContractOverlapQuery{
				RecipientID: recipientID,
				StartDate:   start,
				EndDate:     end,
			})
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ContractOverlapResponse
			test.DecodeResponse(t, &r, &response)

			require.NotNil(t, response.Data)
			assert.Equal(t, tt.overlaps, response.Data.Overlaps)
		})
	}
}

func (suite *TestSuiteStandard) TestContractOverlapInvertedDates() {
	recipient := suite.createTestRecipient(v1.RecipientEditable{})

	r := suite.request(http.MethodPost, "http://example.com/v1/validation/contract-overlap", v1.ContractOverlapQuery{
		RecipientID: recipient.Data.ID,
		StartDate:   date(2025, 12, 31),
		EndDate:     date(2025, 1, 1),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestContractOverlapUnknownRecipient() {
	r := suite.request(http.MethodPost, "http://example.com/v1/validation/contract-overlap", v1.ContractOverlapQuery{
		RecipientID: uuid.New(),
		StartDate:   date(2025, 1, 1),
		EndDate:     date(2025, 12, 31),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
