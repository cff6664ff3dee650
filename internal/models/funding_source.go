package models

import (
	"fmt"
	"strings"

	"github.com/culturabase/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FundingSource is a top-level pool of money with a validity window.
type FundingSource struct {
	DefaultModel
	Name        string
	Note        string
	TotalAmount decimal.Decimal `gorm:"type:DECIMAL(15,2)"`
	ValidFrom   types.Date
	ValidUntil  *types.Date
}

func (f *FundingSource) BeforeSave(_ *gorm.DB) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Note = strings.TrimSpace(f.Note)

	if f.TotalAmount.IsNegative() {
		return ErrAmountNotPositive
	}

	if f.ValidUntil != nil && f.ValidFrom.After(*f.ValidUntil) {
		return ErrDatesInverted
	}

	return nil
}

func (f *FundingSource) BeforeDelete(tx *gorm.DB) error {
	var count int64

	err := tx.Model(&Goal{}).Where("funding_source_id = ?", f.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d goals reference this funding source", ErrStillReferenced, count)
	}

	err = tx.Model(&Allocation{}).Where("funding_source_id = ?", f.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d allocations reference this funding source", ErrStillReferenced, count)
	}

	return nil
}
