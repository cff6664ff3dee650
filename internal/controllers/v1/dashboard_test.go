package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/internal/types"
	"github.com/culturabase/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDashboardSummary() {
	today := types.Today()

	// Two installments, the first one 40 days overdue, the second one due
	// today and therefore not overdue yet
	_ = suite.createTestContract(v1.ContractEditable{
		StartDate:        today.AddDays(-40),
		EndDate:          today.AddDays(40),
		TotalValue:       decimal.NewFromInt(1000),
		InstallmentCount: 2,
	})

	active := suite.createTestContract(v1.ContractEditable{
		StartDate: today,
		EndDate:   today.AddDays(60),
	})

	r := suite.request(http.MethodPatch, active.Data.Links.Self, map[string]any{"status": "signed"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodPost, active.Data.Links.RefreshStatus, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodPost, suite.firstInstallment(active).Links.RegisterPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	_ = suite.createTestTransfer(v1.TransferEditable{})

	_ = suite.createTestNotification(v1.NotificationEditable{})

	// A notification of another user does not count towards the
	// requesting user's unread notifications
	other := suite.createTestUser(v1.UserEditable{})
	_ = suite.createTestNotification(v1.NotificationEditable{UserID: other.Data.ID})

	r = suite.request(http.MethodGet, "http://example.com/v1/dashboard/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardSummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), int64(2), response.Data.Contracts)
	assert.Equal(suite.T(), int64(1), response.Data.ActiveContracts)
	assert.Equal(suite.T(), int64(1), response.Data.OverdueInstallments)
	assert.Equal(suite.T(), int64(1), response.Data.PendingTransfers)
	assert.Equal(suite.T(), int64(1), response.Data.UnreadNotifications)

	// Budget pairs of 1000 for each contract plus 100 for the transfer
	assert.Equal(suite.T(), "2100", response.Data.TotalAllocated.String())
	assert.Equal(suite.T(), "2000", response.Data.TotalCommitted.String())
	assert.Equal(suite.T(), "1000", response.Data.TotalPaid.String())
}

func (suite *TestSuiteStandard) TestDashboardContracts() {
	today := types.Today()

	_ = suite.createTestContract(v1.ContractEditable{})

	endingSoon := suite.createTestContract(v1.ContractEditable{
		Type:      models.ContractTypeGrant,
		StartDate: today.AddDays(-10),
		EndDate:   today.AddDays(10),
	})

	r := suite.request(http.MethodPatch, endingSoon.Data.Links.Self, map[string]any{"status": "signed"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// Cancelled contracts never show up as ending soon
	cancelled := suite.createTestContract(v1.ContractEditable{
		Type:      models.ContractTypeProcurement,
		StartDate: today.AddDays(-10),
		EndDate:   today.AddDays(5),
	})

	r = suite.request(http.MethodPatch, cancelled.Data.Links.Self, map[string]any{"status": "cancelled"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodGet, "http://example.com/v1/dashboard/contracts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardContractsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// Sorted by status: cancelled, draft, signed
	if !assert.Len(suite.T(), response.Data.ByStatus, 3) {
		suite.FailNow("dashboard does not have exactly three status groups")
	}
	assert.Equal(suite.T(), models.ContractStatusCancelled, response.Data.ByStatus[0].Status)
	assert.Equal(suite.T(), models.ContractStatusDraft, response.Data.ByStatus[1].Status)
	assert.Equal(suite.T(), models.ContractStatusSigned, response.Data.ByStatus[2].Status)
	assert.Equal(suite.T(), int64(1), response.Data.ByStatus[0].Count)

	// Sorted by type: grant, procurement, service
	if !assert.Len(suite.T(), response.Data.ByType, 3) {
		suite.FailNow("dashboard does not have exactly three type groups")
	}
	assert.Equal(suite.T(), models.ContractTypeGrant, response.Data.ByType[0].Type)
	assert.Equal(suite.T(), models.ContractTypeProcurement, response.Data.ByType[1].Type)
	assert.Equal(suite.T(), models.ContractTypeService, response.Data.ByType[2].Type)

	if !assert.Len(suite.T(), response.Data.EndingSoon, 1) {
		suite.FailNow("dashboard does not have exactly one contract ending soon")
	}
	assert.Equal(suite.T(), endingSoon.Data.ID, response.Data.EndingSoon[0].ID)
}

func (suite *TestSuiteStandard) TestDashboardFinancial() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(2000))

	contract := suite.createTestContract(v1.ContractEditable{
		SectorID:         pair.Sector.ID,
		LineItemID:       pair.LineItem.ID,
		TotalValue:       decimal.NewFromInt(800),
		InstallmentCount: 2,
	})

	r := suite.request(http.MethodPost, suite.firstInstallment(contract).Links.RegisterPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodGet, "http://example.com/v1/dashboard/financial", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardFinancialResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if !assert.Len(suite.T(), response.Data.Sectors, 1) {
		suite.FailNow("dashboard does not have exactly one sector")
	}

	budget := response.Data.Sectors[0]
	assert.Equal(suite.T(), pair.Sector.ID, budget.SectorID)
	assert.Equal(suite.T(), pair.Sector.Name, budget.SectorName)
	assert.Equal(suite.T(), "2000", budget.Allocated.String())
	assert.Equal(suite.T(), "800", budget.Committed.String())
	assert.Equal(suite.T(), "400", budget.Paid.String())

	if !assert.Len(suite.T(), response.Data.RecentMovements, 1) {
		suite.FailNow("dashboard does not have exactly one movement")
	}
	assert.Equal(suite.T(), models.MovementTypeOutflow, response.Data.RecentMovements[0].Type)
	assert.Equal(suite.T(), "400", response.Data.RecentMovements[0].Amount.String())
}

func (suite *TestSuiteStandard) TestDashboardOptions() {
	for _, path := range []string{"summary", "contracts", "financial"} {
		r := suite.request(http.MethodOptions, fmt.Sprintf("http://example.com/v1/dashboard/%s", path), "")
		assert.Equal(suite.T(), http.StatusNoContent, r.Code, "Status for %s is wrong", path)
		assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
	}
}
