package models_test

import (
	"github.com/culturabase/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCheckAvailabilityEmptyPair() {
	sector := suite.createTestSector(models.Sector{})
	lineItem := suite.createTestLineItem(models.LineItem{})

	check, err := models.CheckAvailability(models.DB, sector.ID, lineItem.ID, uuid.Nil)
	suite.Require().NoError(err)

	suite.Assert().True(check.Allocated.IsZero())
	suite.Assert().True(check.Committed.IsZero())
	suite.Assert().True(check.Available.IsZero())
}

func (suite *TestSuiteStandard) TestCheckAvailability() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(5000))

	vendor := suite.createTestVendor(models.Vendor{Name: "First Vendor"})
	suite.createTestContract(models.Contract{
		SectorID:   pair.Sector.ID,
		LineItemID: pair.LineItem.ID,
		VendorID:   &vendor.ID,
		TotalValue: decimal.NewFromInt(4000),
	})

	check, err := models.CheckAvailability(models.DB, pair.Sector.ID, pair.LineItem.ID, uuid.Nil)
	suite.Require().NoError(err)

	suite.Assert().True(check.Allocated.Equal(decimal.NewFromInt(5000)), "Allocated is %s", check.Allocated)
	suite.Assert().True(check.Committed.Equal(decimal.NewFromInt(4000)), "Committed is %s", check.Committed)
	suite.Assert().True(check.Available.Equal(decimal.NewFromInt(1000)), "Available is %s", check.Available)
}

func (suite *TestSuiteStandard) TestCheckAvailabilityExcludesContract() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(5000))

	contract := suite.createTestContract(models.Contract{
		SectorID:   pair.Sector.ID,
		LineItemID: pair.LineItem.ID,
		TotalValue: decimal.NewFromInt(4000),
	})

	check, err := models.CheckAvailability(models.DB, pair.Sector.ID, pair.LineItem.ID, contract.ID)
	suite.Require().NoError(err)

	suite.Assert().True(check.Committed.IsZero(), "Committed is %s", check.Committed)
	suite.Assert().True(check.Available.Equal(decimal.NewFromInt(5000)), "Available is %s", check.Available)
}

func (suite *TestSuiteStandard) TestCheckAvailabilityIgnoresCancelled() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(5000))

	contract := suite.createTestContract(models.Contract{
		SectorID:   pair.Sector.ID,
		LineItemID: pair.LineItem.ID,
		TotalValue: decimal.NewFromInt(4000),
	})

	previous := contract.Status
	contract.Status = models.ContractStatusCancelled
	suite.Require().NoError(models.UpdateContract(models.DB, &contract, previous, uuid.Nil))

	check, err := models.CheckAvailability(models.DB, pair.Sector.ID, pair.LineItem.ID, uuid.Nil)
	suite.Require().NoError(err)

	suite.Assert().True(check.Committed.IsZero(), "Committed is %s", check.Committed)
}

func (suite *TestSuiteStandard) TestContractExceedingBudgetFails() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(5000))

	suite.createTestContract(models.Contract{
		SectorID:   pair.Sector.ID,
		LineItemID: pair.LineItem.ID,
		TotalValue: decimal.NewFromInt(4000),
	})

	vendor := suite.createTestVendor(models.Vendor{Name: "Second Vendor"})
	second := models.Contract{
		Type:             models.ContractTypeService,
		SectorID:         pair.Sector.ID,
		LineItemID:       pair.LineItem.ID,
		VendorID:         &vendor.ID,
		StartDate:        date(2025, 1, 1),
		EndDate:          date(2025, 12, 31),
		TotalValue:       decimal.NewFromInt(2000),
		InstallmentCount: 1,
	}

	err := models.CreateContract(models.DB, &second, uuid.Nil)
	suite.Assert().ErrorIs(err, models.ErrBudgetInsufficient)
	suite.Assert().Contains(err.Error(), "1000")

	// Nothing was written
	var count int64
	suite.Require().NoError(models.DB.Model(&models.Contract{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}
