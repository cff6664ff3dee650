package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Activity is a budget category within a goal.
type Activity struct {
	DefaultModel
	Name          string
	Note          string
	GoalID        uuid.UUID
	Goal          Goal            `json:"-"`
	PlannedAmount decimal.Decimal `gorm:"type:DECIMAL(15,2)"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Activity)
	return a.checkIntegrity(tx, *toSave)
}

func (a *Activity) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("GoalID") {
		toSave := tx.Statement.Dest.(Activity)
		return a.checkIntegrity(tx, toSave)
	}

	return nil
}

func (a *Activity) checkIntegrity(tx *gorm.DB, toSave Activity) error {
	return tx.First(&Goal{}, toSave.GoalID).Error
}

func (a *Activity) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	if a.PlannedAmount.IsNegative() {
		return ErrAmountNotPositive
	}

	return nil
}

func (a *Activity) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&LineItem{}).Where("activity_id = ?", a.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d line items reference this activity", ErrStillReferenced, count)
	}

	return nil
}
