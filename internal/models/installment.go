package models

import (
	"github.com/culturabase/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Installment is a single scheduled payment of a contract.
type Installment struct {
	DefaultModel
	ContractID     uuid.UUID `gorm:"uniqueIndex:installment_contract_number"`
	Contract       Contract  `json:"-"`
	Number         int       `gorm:"uniqueIndex:installment_contract_number"`
	Amount         decimal.Decimal `gorm:"type:DECIMAL(15,2)"`
	DueDate        types.Date
	Paid           bool
	PaidDate       *types.Date
	ProofReference string
}

func (i *Installment) BeforeCreate(tx *gorm.DB) error {
	_ = i.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Installment)
	return tx.First(&Contract{}, toSave.ContractID).Error
}

func (i *Installment) BeforeSave(_ *gorm.DB) error {
	if !i.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// AfterDelete keeps the contract's paid total and the movement ledger
// consistent when an installment is removed.
func (i *Installment) AfterDelete(tx *gorm.DB) error {
	err := tx.Where("installment_id = ?", i.ID).Delete(&Movement{}).Error
	if err != nil {
		return err
	}

	return recomputeTotalPaid(tx, i.ContractID)
}

// generateInstallments creates the contract's payment schedule: the total
// value split equally over the installment count, due dates spaced evenly
// across the contract period with the first installment due on the start
// date. The last installment absorbs the rounding remainder so that the
// amounts always sum to the contract's total value.
func generateInstallments(tx *gorm.DB, contract *Contract) error {
	count := contract.InstallmentCount

	interval := contract.StartDate.DaysUntil(contract.EndDate) / count
	if interval < 1 {
		interval = 1
	}

	amount := contract.TotalValue.Div(decimal.NewFromInt(int64(count))).Round(2)
	last := contract.TotalValue.Sub(amount.Mul(decimal.NewFromInt(int64(count - 1))))

	installments := make([]Installment, 0, count)
	for number := 1; number <= count; number++ {
		installment := Installment{
			ContractID: contract.ID,
			Number:     number,
			Amount:     amount,
			DueDate:    contract.StartDate.AddDays((number - 1) * interval),
		}

		if number == count {
			installment.Amount = last
		}

		installments = append(installments, installment)
	}

	return tx.Create(&installments).Error
}

// recomputeTotalPaid recalculates the contract's denormalized paid total
// from its paid installments.
func recomputeTotalPaid(tx *gorm.DB, contractID uuid.UUID) error {
	var total decimal.NullDecimal
	err := tx.
		Model(&Installment{}).
		Where("contract_id = ? AND paid = ?", contractID, true).
		Select("SUM(amount)").
		Find(&total).
		Error
	if err != nil {
		return err
	}

	if !total.Valid {
		total.Decimal = decimal.Zero
	}

	return tx.Model(&Contract{}).
		Where("id = ?", contractID).
		Update("total_paid", total.Decimal).
		Error
}

// RegisterPayment marks the installment as paid, records one outflow
// movement and updates the contract's paid total. Paying an installment
// twice is a conflict.
func RegisterPayment(db *gorm.DB, installment *Installment, paidDate types.Date, proof string, actorID uuid.UUID) error {
	if installment.Paid {
		return ErrInstallmentAlreadyPaid
	}

	if paidDate.IsZero() {
		paidDate = types.Today()
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var contract Contract
		err := tx.First(&contract, installment.ContractID).Error
		if err != nil {
			return err
		}

		installment.Paid = true
		installment.PaidDate = &paidDate
		installment.ProofReference = proof

		err = tx.Model(installment).
			Select("Paid", "PaidDate", "ProofReference").
			Updates(*installment).
			Error
		if err != nil {
			return err
		}

		movement := Movement{
			Type:            MovementTypeOutflow,
			SectorID:        contract.SectorID,
			LineItemID:      contract.LineItemID,
			FundingSourceID: fundingSourceFor(tx, contract.SectorID, contract.LineItemID),
			ContractID:      &contract.ID,
			InstallmentID:   &installment.ID,
			Amount:          installment.Amount,
			Date:            paidDate,
			Description:     "installment payment",
		}
		if actorID != uuid.Nil {
			movement.ActorID = &actorID
		}

		err = tx.Create(&movement).Error
		if err != nil {
			return err
		}

		return recomputeTotalPaid(tx, installment.ContractID)
	})
}

// CancelPayment reverts a registered payment: the installment is marked
// unpaid, its movement row is deleted and the contract's paid total is
// recalculated. Cancelling an unpaid installment is a conflict.
func CancelPayment(db *gorm.DB, installment *Installment) error {
	if !installment.Paid {
		return ErrInstallmentNotPaid
	}

	return db.Transaction(func(tx *gorm.DB) error {
		installment.Paid = false
		installment.PaidDate = nil
		installment.ProofReference = ""

		err := tx.Model(installment).
			Select("Paid", "PaidDate", "ProofReference").
			Updates(map[string]interface{}{"paid": false, "paid_date": nil, "proof_reference": ""}).
			Error
		if err != nil {
			return err
		}

		err = tx.Where("installment_id = ?", installment.ID).Delete(&Movement{}).Error
		if err != nil {
			return err
		}

		return recomputeTotalPaid(tx, installment.ContractID)
	})
}

// fundingSourceFor returns the funding source of an allocation for the
// (sector, line item) pair, or nil when the pair has no allocation.
func fundingSourceFor(tx *gorm.DB, sectorID, lineItemID uuid.UUID) *uuid.UUID {
	var allocation Allocation
	err := tx.
		Where("sector_id = ? AND line_item_id = ?", sectorID, lineItemID).
		First(&allocation).
		Error
	if err != nil {
		return nil
	}

	return &allocation.FundingSourceID
}
