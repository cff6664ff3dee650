package v1_test

import (
	"net/http"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestVendorsCreate() {
	vendor := suite.createTestVendor(v1.VendorEditable{
		Name:  "Sound & Light Ltda",
		TaxID: "12.345.678/0001-90",
		Email: "contact@soundandlight.example",
	})

	assert.Equal(suite.T(), "Sound & Light Ltda", vendor.Data.Name)
	assert.Equal(suite.T(), "12.345.678/0001-90", vendor.Data.TaxID)
}

func (suite *TestSuiteStandard) TestVendorsDuplicateTaxID() {
	vendor := suite.createTestVendor(v1.VendorEditable{})

	_ = suite.createTestVendor(v1.VendorEditable{
		TaxID: vendor.Data.TaxID,
	}, http.StatusBadRequest)
}

// TestVendorsComputed verifies the derived contract totals on a single
// vendor response.
func (suite *TestSuiteStandard) TestVendorsComputed() {
	vendor := suite.createTestVendor(v1.VendorEditable{})

	partiallyPaid := suite.createTestContract(v1.ContractEditable{
		VendorID:         &vendor.Data.ID,
		TotalValue:       decimal.NewFromInt(1000),
		InstallmentCount: 2,
	})

	r := suite.request(http.MethodPost, suite.firstInstallment(partiallyPaid).Links.RegisterPayment, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	_ = suite.createTestContract(v1.ContractEditable{
		VendorID:   &vendor.Data.ID,
		TotalValue: decimal.NewFromInt(600),
	})

	// A contract with another vendor does not count
	_ = suite.createTestContract(v1.ContractEditable{})

	r = suite.request(http.MethodGet, vendor.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.VendorResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if !assert.NotNil(suite.T(), response.Data.Computed) {
		suite.FailNow("single vendor response does not have computed values")
	}

	assert.Equal(suite.T(), int64(2), response.Data.Computed.Contracts)
	assert.Equal(suite.T(), "1600", response.Data.Computed.TotalValue.String())
	assert.Equal(suite.T(), "500", response.Data.Computed.TotalPaid.String())
}

func (suite *TestSuiteStandard) TestVendorsDeleteReferenced() {
	vendor := suite.createTestVendor(v1.VendorEditable{})

	_ = suite.createTestContract(v1.ContractEditable{VendorID: &vendor.Data.ID})

	r := suite.request(http.MethodDelete, vendor.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestRecipientsDuplicateTaxID() {
	recipient := suite.createTestRecipient(v1.RecipientEditable{})

	_ = suite.createTestRecipient(v1.RecipientEditable{
		TaxID: recipient.Data.TaxID,
	}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRecipientsComputed() {
	recipient := suite.createTestRecipient(v1.RecipientEditable{})

	_ = suite.createTestContract(v1.ContractEditable{
		Type:        models.ContractTypeGrant,
		RecipientID: &recipient.Data.ID,
		TotalValue:  decimal.NewFromInt(800),
	})

	r := suite.request(http.MethodGet, recipient.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RecipientResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if !assert.NotNil(suite.T(), response.Data.Computed) {
		suite.FailNow("single recipient response does not have computed values")
	}

	assert.Equal(suite.T(), int64(1), response.Data.Computed.Contracts)
	assert.Equal(suite.T(), "800", response.Data.Computed.TotalValue.String())
	assert.Equal(suite.T(), "0", response.Data.Computed.TotalPaid.String())
}

func (suite *TestSuiteStandard) TestRecipientsUpdate() {
	recipient := suite.createTestRecipient(v1.RecipientEditable{Name: "Maria da Silva"})

	r := suite.request(http.MethodPatch, recipient.Data.Links.Self, map[string]any{
		"email": "maria@example.com",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RecipientResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "Maria da Silva", response.Data.Name)
	assert.Equal(suite.T(), "maria@example.com", response.Data.Email)
}
