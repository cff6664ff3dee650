package v1_test

import (
	"net/http"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransfersCreate() {
	transfer := suite.createTestTransfer(v1.TransferEditable{
		Amount: decimal.NewFromInt(250),
		Reason: "Budget not needed for the spring program",
	})

	require.NotNil(suite.T(), transfer.Data)
	assert.Equal(suite.T(), models.TransferStatusPending, transfer.Data.Status)

	// The requesting user is recorded
	require.NotNil(suite.T(), transfer.Data.RequestedByID)
	assert.Equal(suite.T(), suite.user.ID, *transfer.Data.RequestedByID)
	assert.Nil(suite.T(), transfer.Data.ProcessedByID)
}

// TestTransfersCreateSameSector verifies that a transfer needs two
// different sectors.
func (suite *TestSuiteStandard) TestTransfersCreateSameSector() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(100))

	suite.createTestTransfer(v1.TransferEditable{
		SourceSectorID:      pair.Sector.ID,
		DestinationSectorID: pair.Sector.ID,
		LineItemID:          pair.LineItem.ID,
		Amount:              decimal.NewFromInt(100),
	}, http.StatusBadRequest)
}

// TestTransfersApprove verifies that approving a transfer moves the
// allocated amount between the sectors.
func (suite *TestSuiteStandard) TestTransfersApprove() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(1000))
	destination := suite.createTestSector(v1.SectorEditable{})

	transfer := suite.createTestTransfer(v1.TransferEditable{
		SourceSectorID:      pair.Sector.ID,
		DestinationSectorID: destination.Data.ID,
		LineItemID:          pair.LineItem.ID,
		Amount:              decimal.NewFromInt(400),
	})

	r := suite.request(http.MethodPost, transfer.Data.Links.Approve, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransferResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), models.TransferStatusApproved, response.Data.Status)
	require.NotNil(suite.T(), response.Data.ProcessedByID)
	assert.Equal(suite.T(), suite.user.ID, *response.Data.ProcessedByID)
	assert.NotNil(suite.T(), response.Data.ProcessedAt)

	// The source allocation is debited
	r = suite.request(http.MethodGet, "http://example.com/v1/allocations?sector="+pair.Sector.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var sourceAllocations v1.AllocationListResponse
	test.DecodeResponse(suite.T(), &r, &sourceAllocations)
	require.Len(suite.T(), sourceAllocations.Data, 1)
	assert.Equal(suite.T(), "600", sourceAllocations.Data[0].Amount.String())

	// The destination allocation is created with the moved amount
	r = suite.request(http.MethodGet, "http://example.com/v1/allocations?sector="+destination.Data.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var destinationAllocations v1.AllocationListResponse
	test.DecodeResponse(suite.T(), &r, &destinationAllocations)
	require.Len(suite.T(), destinationAllocations.Data, 1)
	assert.Equal(suite.T(), "400", destinationAllocations.Data[0].Amount.String())
	assert.Equal(suite.T(), pair.FundingSource.ID, destinationAllocations.Data[0].FundingSourceID)

	// A transfer movement is recorded
	r = suite.request(http.MethodGet, "http://example.com/v1/movements?type=transfer", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var movements v1.MovementListResponse
	test.DecodeResponse(suite.T(), &r, &movements)
	assert.Len(suite.T(), movements.Data, 1)
}

// TestTransfersApproveInsufficient verifies that a transfer exceeding
// the source allocation cannot be approved.
func (suite *TestSuiteStandard) TestTransfersApproveInsufficient() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(100))

	transfer := suite.createTestTransfer(v1.TransferEditable{
		SourceSectorID: pair.Sector.ID,
		LineItemID:     pair.LineItem.ID,
		Amount:         decimal.NewFromInt(500),
	})

	r := suite.request(http.MethodPost, transfer.Data.Links.Approve, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestTransfersApproveNotResponsible verifies that only the responsible
// user of the source sector may process a transfer.
func (suite *TestSuiteStandard) TestTransfersApproveNotResponsible() {
	other := suite.createTestUser(v1.UserEditable{})
	sector := suite.createTestSector(v1.SectorEditable{ResponsibleUserID: other.Data.ID})
	lineItem := suite.createTestLineItem(v1.LineItemEditable{})
	suite.createTestAllocation(v1.AllocationEditable{
		SectorID:   sector.Data.ID,
		LineItemID: lineItem.Data.ID,
		Amount:     decimal.NewFromInt(100),
	})

	transfer := suite.createTestTransfer(v1.TransferEditable{
		SourceSectorID: sector.Data.ID,
		LineItemID:     lineItem.Data.ID,
		Amount:         decimal.NewFromInt(100),
	})

	r := suite.request(http.MethodPost, transfer.Data.Links.Approve, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestTransfersReject() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(1000))

	transfer := suite.createTestTransfer(v1.TransferEditable{
		SourceSectorID: pair.Sector.ID,
		LineItemID:     pair.LineItem.ID,
		Amount:         decimal.NewFromInt(400),
	})

	r := suite.request(http.MethodPost, transfer.Data.Links.Reject, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransferResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.TransferStatusRejected, response.Data.Status)

	// A rejected transfer does not touch the allocation
	r = suite.request(http.MethodGet, "http://example.com/v1/allocations?sector="+pair.Sector.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var allocations v1.AllocationListResponse
	test.DecodeResponse(suite.T(), &r, &allocations)
	require.Len(suite.T(), allocations.Data, 1)
	assert.Equal(suite.T(), "1000", allocations.Data[0].Amount.String())
}

// TestTransfersProcessedAreFinal verifies that processed transfers can
// neither be processed again nor changed or deleted.
func (suite *TestSuiteStandard) TestTransfersProcessedAreFinal() {
	transfer := suite.createTestTransfer(v1.TransferEditable{})

	r := suite.request(http.MethodPost, transfer.Data.Links.Reject, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodPost, transfer.Data.Links.Approve, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	r = suite.request(http.MethodPatch, transfer.Data.Links.Self, map[string]any{
		"reason": "changed my mind",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	r = suite.request(http.MethodDelete, transfer.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestTransfersUpdatePending() {
	transfer := suite.createTestTransfer(v1.TransferEditable{})

	r := suite.request(http.MethodPatch, transfer.Data.Links.Self, map[string]any{
		"reason": "updated reason",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransferResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "updated reason", response.Data.Reason)
}
