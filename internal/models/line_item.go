package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineItem is the narrowest budget category. Allocations, contracts and
// transfers all reference line items.
type LineItem struct {
	DefaultModel
	Name          string
	Note          string
	ActivityID    uuid.UUID
	Activity      Activity        `json:"-"`
	PlannedAmount decimal.Decimal `gorm:"type:DECIMAL(15,2)"`
}

func (l *LineItem) BeforeCreate(tx *gorm.DB) error {
	_ = l.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*LineItem)
	return l.checkIntegrity(tx, *toSave)
}

func (l *LineItem) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("ActivityID") {
		toSave := tx.Statement.Dest.(LineItem)
		return l.checkIntegrity(tx, toSave)
	}

	return nil
}

func (l *LineItem) checkIntegrity(tx *gorm.DB, toSave LineItem) error {
	return tx.First(&Activity{}, toSave.ActivityID).Error
}

func (l *LineItem) BeforeSave(_ *gorm.DB) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Note = strings.TrimSpace(l.Note)

	if l.PlannedAmount.IsNegative() {
		return ErrAmountNotPositive
	}

	return nil
}

func (l *LineItem) BeforeDelete(tx *gorm.DB) error {
	var count int64

	err := tx.Model(&Allocation{}).Where("line_item_id = ?", l.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d allocations reference this line item", ErrStillReferenced, count)
	}

	err = tx.Model(&Contract{}).Where("line_item_id = ?", l.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d contracts reference this line item", ErrStillReferenced, count)
	}

	return nil
}
