package models_test

import (
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) firstInstallment(contract models.Contract) models.Installment {
	var installment models.Installment
	err := models.DB.
		Where("contract_id = ?", contract.ID).
		Order("number").
		First(&installment).
		Error
	if err != nil {
		suite.Assert().FailNow("Installment could not be loaded", "Error: %s", err)
	}

	return installment
}

func (suite *TestSuiteStandard) TestRegisterPayment() {
	actor := suite.createTestUser(models.User{Name: "Treasurer"})
	contract := suite.createTestContract(models.Contract{
		TotalValue:       decimal.NewFromInt(1200),
		InstallmentCount: 2,
	})

	installment := suite.firstInstallment(contract)
	err := models.RegisterPayment(models.DB, &installment, date(2025, 2, 1), "receipt-42", actor.ID)
	suite.Require().NoError(err)

	suite.Assert().True(installment.Paid)
	suite.Require().NotNil(installment.PaidDate)
	suite.Assert().True(installment.PaidDate.Equal(date(2025, 2, 1)))
	suite.Assert().Equal("receipt-42", installment.ProofReference)

	// The contract's paid total is recomputed
	var reloaded models.Contract
	suite.Require().NoError(models.DB.First(&reloaded, contract.ID).Error)
	suite.Assert().True(reloaded.TotalPaid.Equal(decimal.NewFromInt(600)), "TotalPaid is %s", reloaded.TotalPaid)

	// Exactly one outflow movement is recorded
	var movements []models.Movement
	suite.Require().NoError(models.DB.Where("installment_id = ?", installment.ID).Find(&movements).Error)
	suite.Require().Len(movements, 1)
	suite.Assert().Equal(models.MovementTypeOutflow, movements[0].Type)
	suite.Assert().True(movements[0].Amount.Equal(installment.Amount))
	suite.Assert().Equal(contract.SectorID, movements[0].SectorID)
	suite.Require().NotNil(movements[0].ActorID)
	suite.Assert().Equal(actor.ID, *movements[0].ActorID)
}

func (suite *TestSuiteStandard) TestRegisterPaymentTwiceFails() {
	contract := suite.createTestContract(models.Contract{TotalValue: decimal.NewFromInt(1000)})

	installment := suite.firstInstallment(contract)
	suite.Require().NoError(models.RegisterPayment(models.DB, &installment, types.Today(), "", uuid.Nil))

	err := models.RegisterPayment(models.DB, &installment, types.Today(), "", uuid.Nil)
	suite.Assert().ErrorIs(err, models.ErrInstallmentAlreadyPaid)
}

func (suite *TestSuiteStandard) TestCancelPayment() {
	contract := suite.createTestContract(models.Contract{TotalValue: decimal.NewFromInt(1000)})

	installment := suite.firstInstallment(contract)
	suite.Require().NoError(models.RegisterPayment(models.DB, &installment, types.Today(), "receipt-1", uuid.Nil))
	suite.Require().NoError(models.CancelPayment(models.DB, &installment))

	suite.Assert().False(installment.Paid)
	suite.Assert().Nil(installment.PaidDate)

	// The paid total is reverted and the movement row removed
	var reloaded models.Contract
	suite.Require().NoError(models.DB.First(&reloaded, contract.ID).Error)
	suite.Assert().True(reloaded.TotalPaid.IsZero(), "TotalPaid is %s", reloaded.TotalPaid)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Movement{}).
		Where("installment_id = ?", installment.ID).
		Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestCancelPaymentUnpaidFails() {
	contract := suite.createTestContract(models.Contract{TotalValue: decimal.NewFromInt(1000)})

	installment := suite.firstInstallment(contract)
	err := models.CancelPayment(models.DB, &installment)
	suite.Assert().ErrorIs(err, models.ErrInstallmentNotPaid)
}

func (suite *TestSuiteStandard) TestInstallmentDeleteRecomputesTotal() {
	contract := suite.createTestContract(models.Contract{
		TotalValue:       decimal.NewFromInt(1200),
		InstallmentCount: 2,
	})

	installment := suite.firstInstallment(contract)
	suite.Require().NoError(models.RegisterPayment(models.DB, &installment, types.Today(), "", uuid.Nil))

	suite.Require().NoError(models.DB.Delete(&installment).Error)

	var reloaded models.Contract
	suite.Require().NoError(models.DB.First(&reloaded, contract.ID).Error)
	suite.Assert().True(reloaded.TotalPaid.IsZero(), "TotalPaid is %s", reloaded.TotalPaid)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Movement{}).
		Where("installment_id = ?", installment.ID).
		Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestInstallmentNumberUniquePerContract() {
	contract := suite.createTestContract(models.Contract{TotalValue: decimal.NewFromInt(1000)})

	duplicate := models.Installment{
		ContractID: contract.ID,
		Number:     1,
		Amount:     decimal.NewFromInt(100),
		DueDate:    date(2025, 3, 1),
	}

	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrInstallmentNumberNotUnique)
}
