package models_test

import (
	"github.com/culturabase/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUserEmailUnique() {
	suite.createTestUser(models.User{Name: "First", Email: "someone@example.com"})

	second := models.User{Name: "Second", Email: "someone@example.com", Role: models.RoleViewer}
	err := models.DB.Create(&second).Error
	suite.Assert().ErrorIs(err, models.ErrUserEmailNotUnique)
}

func (suite *TestSuiteStandard) TestVendorTaxIDUnique() {
	suite.createTestVendor(models.Vendor{Name: "First", TaxID: "12.345.678/0001-90"})

	second := models.Vendor{Name: "Second", TaxID: "12.345.678/0001-90"}
	err := models.DB.Create(&second).Error
	suite.Assert().ErrorIs(err, models.ErrVendorTaxIDNotUnique)
}

func (suite *TestSuiteStandard) TestRecipientTaxIDUnique() {
	suite.createTestRecipient(models.Recipient{Name: "First", TaxID: "123.456.789-00"})

	second := models.Recipient{Name: "Second", TaxID: "123.456.789-00"}
	err := models.DB.Create(&second).Error
	suite.Assert().ErrorIs(err, models.ErrRecipientTaxIDNotUnique)
}

func (suite *TestSuiteStandard) TestSystemConfigKeyUnique() {
	first := models.SystemConfig{Key: "fiscal_year", Value: "2025"}
	suite.Require().NoError(models.DB.Create(&first).Error)

	second := models.SystemConfig{Key: "fiscal_year", Value: "2026"}
	err := models.DB.Create(&second).Error
	suite.Assert().ErrorIs(err, models.ErrConfigKeyNotUnique)
}

func (suite *TestSuiteStandard) TestNotFoundMessage() {
	var vendor models.Vendor
	err := models.DB.First(&vendor, "id = ?", "00000000-0000-0000-0000-000000000000").Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no vendor matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestSectorDeleteProtected() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(1000))

	err := models.DB.Delete(&pair.Sector).Error
	suite.Assert().ErrorIs(err, models.ErrStillReferenced)
}

func (suite *TestSuiteStandard) TestLineItemDeleteProtected() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(1000))

	var lineItem models.LineItem
	suite.Require().NoError(models.DB.First(&lineItem, pair.LineItem.ID).Error)

	err := models.DB.Delete(&lineItem).Error
	suite.Assert().ErrorIs(err, models.ErrStillReferenced)
}

func (suite *TestSuiteStandard) TestVendorDeleteProtected() {
	contract := suite.createTestContract(models.Contract{TotalValue: decimal.NewFromInt(1000)})

	var vendor models.Vendor
	suite.Require().NoError(models.DB.First(&vendor, *contract.VendorID).Error)

	err := models.DB.Delete(&vendor).Error
	suite.Assert().ErrorIs(err, models.ErrStillReferenced)
}

func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	err := models.DB.Create(&models.SystemConfig{Key: "after_close"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
