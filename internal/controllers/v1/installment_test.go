package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/internal/types"
	"github.com/culturabase/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstInstallment returns the first installment of a contract.
func (suite *TestSuiteStandard) firstInstallment(contract v1.ContractResponse) v1.Installment {
	r := suite.request(http.MethodGet, contract.Data.Links.Installments, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InstallmentListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotEmpty(suite.T(), response.Data)

	return response.Data[0]
}

// TestInstallmentsNoCreate verifies that installments cannot be created
// directly, they only exist through their contract.
func (suite *TestSuiteStandard) TestInstallmentsNoCreate() {
	r := suite.request(http.MethodPost, "http://example.com/v1/installments", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestInstallmentsRegisterPayment() {
	contract := suite.createTestContract(v1.ContractEditable{
		TotalValue:       decimal.NewFromInt(1000),
		InstallmentCount: 2,
	})
	installment := suite.firstInstallment(contract)

	r := suite.request(http.MethodPost, installment.Links.RegisterPayment, v1.PaymentRegistration{
		PaidDate:       date(2025, 5, 3),
		ProofReference: "NF-2025-4711",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InstallmentResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Paid)
	require.NotNil(suite.T(), response.Data.PaidDate)
	assert.Equal(suite.T(), "2025-05-03", response.Data.PaidDate.String())
	assert.Equal(suite.T(), "NF-2025-4711", response.Data.ProofReference)

	// The contract's paid total is updated
	r = suite.request(http.MethodGet, contract.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ContractResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "500", updated.Data.TotalPaid.String())
	assert.Equal(suite.T(), int64(1), updated.Data.Computed.PaidInstallments)

	// An outflow movement is recorded for the payment
	r = suite.request(http.MethodGet, contract.Data.Links.Movements, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var movements v1.MovementListResponse
	test.DecodeResponse(suite.T(), &r, &movements)
	require.Len(suite.T(), movements.Data, 1)
	assert.Equal(suite.T(), "500", movements.Data[0].Amount.String())
}

// TestInstallmentsRegisterPaymentDefaults verifies that a payment can be
// registered without a request body.
func (suite *TestSuiteStandard) TestInstallmentsRegisterPaymentDefaults() {
	contract := suite.createTestContract(v1.ContractEditable{})
	installment := suite.firstInstallment(contract)

	r := suite.request(http.MethodPost, installment.Links.RegisterPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InstallmentResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Paid)
	require.NotNil(suite.T(), response.Data.PaidDate)
	assert.Equal(suite.T(), types.Today().String(), response.Data.PaidDate.String())
}

func (suite *TestSuiteStandard) TestInstallmentsRegisterPaymentTwice() {
	contract := suite.createTestContract(v1.ContractEditable{})
	installment := suite.firstInstallment(contract)

	r := suite.request(http.MethodPost, installment.Links.RegisterPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodPost, installment.Links.RegisterPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestInstallmentsCancelPayment() {
	contract := suite.createTestContract(v1.ContractEditable{})
	installment := suite.firstInstallment(contract)

	r := suite.request(http.MethodPost, installment.Links.RegisterPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodPost, installment.Links.CancelPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InstallmentResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.False(suite.T(), response.Data.Paid)
	assert.Nil(suite.T(), response.Data.PaidDate)

	// The movement of the payment is removed again
	r = suite.request(http.MethodGet, contract.Data.Links.Movements, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var movements v1.MovementListResponse
	test.DecodeResponse(suite.T(), &r, &movements)
	assert.Len(suite.T(), movements.Data, 0)

	r = suite.request(http.MethodGet, contract.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ContractResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.TotalPaid.IsZero())
}

func (suite *TestSuiteStandard) TestInstallmentsCancelUnpaid() {
	contract := suite.createTestContract(v1.ContractEditable{})
	installment := suite.firstInstallment(contract)

	r := suite.request(http.MethodPost, installment.Links.CancelPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

// TestInstallmentsUpdate verifies that the schedule of an installment
// can be changed.
func (suite *TestSuiteStandard) TestInstallmentsUpdate() {
	contract := suite.createTestContract(v1.ContractEditable{})
	installment := suite.firstInstallment(contract)

	r := suite.request(http.MethodPatch, installment.Links.Self, map[string]any{
		"dueDate": "2025-06-15",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InstallmentResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "2025-06-15", response.Data.DueDate.String())
}

func (suite *TestSuiteStandard) TestInstallmentsGetFiltered() {
	paid := suite.createTestContract(v1.ContractEditable{InstallmentCount: 2})
	suite.createTestContract(v1.ContractEditable{InstallmentCount: 3})

	installment := suite.firstInstallment(paid)
	r := suite.request(http.MethodPost, installment.Links.RegisterPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All", "", 5},
		{"By contract", "contract=" + paid.Data.ID.String(), 2},
		{"Paid", "paid=true", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodGet, "http://example.com/v1/installments?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.InstallmentListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.count)
		})
	}
}
