package models_test

import (
	"github.com/culturabase/backend/internal/models"
	"github.com/shopspring/decimal"
)

// transferFixture wires two sectors on the same line item, an allocation
// for the source and a pending transfer between them.
type transferFixture struct {
	Responsible models.User
	Source      budgetPair
	Destination models.Sector
	Transfer    models.Transfer
}

func (suite *TestSuiteStandard) createTestTransferFixture(amount decimal.Decimal) transferFixture {
	source := suite.createTestBudgetPair(decimal.NewFromInt(10000))
	destination := suite.createTestSector(models.Sector{Name: "Destination"})

	transfer := suite.createTestTransfer(models.Transfer{
		SourceSectorID:      source.Sector.ID,
		DestinationSectorID: destination.ID,
		LineItemID:          source.LineItem.ID,
		Amount:              amount,
	})

	return transferFixture{
		Responsible: source.User,
		Source:      source,
		Destination: destination,
		Transfer:    transfer,
	}
}

func (suite *TestSuiteStandard) TestTransferDefaultsToPending() {
	fixture := suite.createTestTransferFixture(decimal.NewFromInt(5000))
	suite.Assert().Equal(models.TransferStatusPending, fixture.Transfer.Status)
}

func (suite *TestSuiteStandard) TestTransferRejectsSameSector() {
	pair := suite.createTestBudgetPair(decimal.NewFromInt(10000))

	transfer := models.Transfer{
		SourceSectorID:      pair.Sector.ID,
		DestinationSectorID: pair.Sector.ID,
		LineItemID:          pair.LineItem.ID,
		Amount:              decimal.NewFromInt(100),
	}

	err := models.DB.Create(&transfer).Error
	suite.Assert().ErrorIs(err, models.ErrTransferSameSector)
}

func (suite *TestSuiteStandard) TestApproveTransfer() {
	fixture := suite.createTestTransferFixture(decimal.NewFromInt(5000))

	err := models.ApproveTransfer(models.DB, &fixture.Transfer, fixture.Responsible.ID)
	suite.Require().NoError(err)

	suite.Assert().Equal(models.TransferStatusApproved, fixture.Transfer.Status)
	suite.Require().NotNil(fixture.Transfer.ProcessedByID)
	suite.Assert().Equal(fixture.Responsible.ID, *fixture.Transfer.ProcessedByID)
	suite.Assert().NotNil(fixture.Transfer.ProcessedAt)

	// Source allocation is debited
	var source models.Allocation
	suite.Require().NoError(models.DB.First(&source, fixture.Source.Allocation.ID).Error)
	suite.Assert().True(source.Amount.Equal(decimal.NewFromInt(5000)), "Source amount is %s", source.Amount)

	// Destination allocation is created with the source's funding source
	var destination models.Allocation
	suite.Require().NoError(models.DB.
		Where("sector_id = ? AND line_item_id = ?", fixture.Destination.ID, fixture.Source.LineItem.ID).
		First(&destination).Error)
	suite.Assert().True(destination.Amount.Equal(decimal.NewFromInt(5000)), "Destination amount is %s", destination.Amount)
	suite.Assert().Equal(fixture.Source.FundingSource.ID, destination.FundingSourceID)

	// One transfer movement is recorded
	var count int64
	suite.Require().NoError(models.DB.Model(&models.Movement{}).
		Where("type = ?", models.MovementTypeTransfer).
		Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestApproveTransferCreditsExistingAllocation() {
	fixture := suite.createTestTransferFixture(decimal.NewFromInt(3000))

	existing := suite.createTestAllocation(models.Allocation{
		FundingSourceID: fixture.Source.FundingSource.ID,
		SectorID:        fixture.Destination.ID,
		LineItemID:      fixture.Source.LineItem.ID,
		Amount:          decimal.NewFromInt(1000),
	})

	suite.Require().NoError(models.ApproveTransfer(models.DB, &fixture.Transfer, fixture.Responsible.ID))

	var reloaded models.Allocation
	suite.Require().NoError(models.DB.First(&reloaded, existing.ID).Error)
	suite.Assert().True(reloaded.Amount.Equal(decimal.NewFromInt(4000)), "Amount is %s", reloaded.Amount)
}

func (suite *TestSuiteStandard) TestApproveTransferForbiddenForOthers() {
	fixture := suite.createTestTransferFixture(decimal.NewFromInt(5000))
	other := suite.createTestUser(models.User{Name: "Other"})

	err := models.ApproveTransfer(models.DB, &fixture.Transfer, other.ID)
	suite.Assert().ErrorIs(err, models.ErrNotResponsibleUser)

	// Balances are untouched
	var source models.Allocation
	suite.Require().NoError(models.DB.First(&source, fixture.Source.Allocation.ID).Error)
	suite.Assert().True(source.Amount.Equal(decimal.NewFromInt(10000)))
}

func (suite *TestSuiteStandard) TestApproveTransferTwiceFails() {
	fixture := suite.createTestTransferFixture(decimal.NewFromInt(2000))

	suite.Require().NoError(models.ApproveTransfer(models.DB, &fixture.Transfer, fixture.Responsible.ID))

	err := models.ApproveTransfer(models.DB, &fixture.Transfer, fixture.Responsible.ID)
	suite.Assert().ErrorIs(err, models.ErrTransferAlreadyProcessed)

	err = models.RejectTransfer(models.DB, &fixture.Transfer, fixture.Responsible.ID)
	suite.Assert().ErrorIs(err, models.ErrTransferAlreadyProcessed)

	// The allocation is debited exactly once
	var source models.Allocation
	suite.Require().NoError(models.DB.First(&source, fixture.Source.Allocation.ID).Error)
	suite.Assert().True(source.Amount.Equal(decimal.NewFromInt(8000)), "Source amount is %s", source.Amount)
}

func (suite *TestSuiteStandard) TestApproveTransferInsufficientAllocation() {
	fixture := suite.createTestTransferFixture(decimal.NewFromInt(20000))

	err := models.ApproveTransfer(models.DB, &fixture.Transfer, fixture.Responsible.ID)
	suite.Assert().ErrorIs(err, models.ErrTransferInsufficient)

	var source models.Allocation
	suite.Require().NoError(models.DB.First(&source, fixture.Source.Allocation.ID).Error)
	suite.Assert().True(source.Amount.Equal(decimal.NewFromInt(10000)))
}

func (suite *TestSuiteStandard) TestApproveTransferWithoutAllocation() {
	source := suite.createTestSector(models.Sector{Name: "Empty Source"})
	destination := suite.createTestSector(models.Sector{Name: "Destination"})
	lineItem := suite.createTestLineItem(models.LineItem{})

	var responsible models.User
	suite.Require().NoError(models.DB.First(&responsible, source.ResponsibleUserID).Error)

	transfer := suite.createTestTransfer(models.Transfer{
		SourceSectorID:      source.ID,
		DestinationSectorID: destination.ID,
		LineItemID:          lineItem.ID,
		Amount:              decimal.NewFromInt(100),
	})

	err := models.ApproveTransfer(models.DB, &transfer, responsible.ID)
	suite.Assert().ErrorIs(err, models.ErrTransferNoAllocation)
}

func (suite *TestSuiteStandard) TestRejectTransfer() {
	fixture := suite.createTestTransferFixture(decimal.NewFromInt(5000))

	err := models.RejectTransfer(models.DB, &fixture.Transfer, fixture.Responsible.ID)
	suite.Require().NoError(err)

	suite.Assert().Equal(models.TransferStatusRejected, fixture.Transfer.Status)

	// No balances change on rejection
	var source models.Allocation
	suite.Require().NoError(models.DB.First(&source, fixture.Source.Allocation.ID).Error)
	suite.Assert().True(source.Amount.Equal(decimal.NewFromInt(10000)))

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Allocation{}).
		Where("sector_id = ?", fixture.Destination.ID).
		Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}
