package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Allocation assigns an amount from a funding source to a
// (sector, line item) pair. It is mutated by direct writes and by
// approved transfers.
type Allocation struct {
	DefaultModel
	FundingSourceID uuid.UUID
	FundingSource   FundingSource `json:"-"`
	SectorID        uuid.UUID
	Sector          Sector `json:"-"`
	LineItemID      uuid.UUID
	LineItem        LineItem        `json:"-"`
	Amount          decimal.Decimal `gorm:"type:DECIMAL(15,2)"`
}

func (a *Allocation) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Allocation)
	return a.checkIntegrity(tx, *toSave)
}

func (a *Allocation) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("FundingSourceID", "SectorID", "LineItemID") {
		toSave := tx.Statement.Dest.(Allocation)
		return a.checkIntegrity(tx, toSave)
	}

	return nil
}

func (a *Allocation) checkIntegrity(tx *gorm.DB, toSave Allocation) error {
	err := tx.First(&FundingSource{}, toSave.FundingSourceID).Error
	if err != nil {
		return err
	}

	err = tx.First(&Sector{}, toSave.SectorID).Error
	if err != nil {
		return err
	}

	return tx.First(&LineItem{}, toSave.LineItemID).Error
}

func (a *Allocation) BeforeSave(_ *gorm.DB) error {
	if a.Amount.IsNegative() {
		return ErrAmountNotPositive
	}

	return nil
}
