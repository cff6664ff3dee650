package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a budget category within a funding source.
type Goal struct {
	DefaultModel
	Name            string
	Note            string
	FundingSourceID uuid.UUID
	FundingSource   FundingSource   `json:"-"`
	PlannedAmount   decimal.Decimal `gorm:"type:DECIMAL(15,2)"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Goal)
	return g.checkIntegrity(tx, *toSave)
}

func (g *Goal) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("FundingSourceID") {
		toSave := tx.Statement.Dest.(Goal)
		return g.checkIntegrity(tx, toSave)
	}

	return nil
}

func (g *Goal) checkIntegrity(tx *gorm.DB, toSave Goal) error {
	return tx.First(&FundingSource{}, toSave.FundingSourceID).Error
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	if g.PlannedAmount.IsNegative() {
		return ErrAmountNotPositive
	}

	return nil
}

func (g *Goal) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Activity{}).Where("goal_id = ?", g.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d activities reference this goal", ErrStillReferenced, count)
	}

	return nil
}
