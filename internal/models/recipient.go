package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Recipient is an individual receiving a grant through a contract.
type Recipient struct {
	DefaultModel
	Name    string
	TaxID   string `gorm:"uniqueIndex"`
	Email   string
	Phone   string
	Address string
	Note    string
}

func (r *Recipient) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)
	r.TaxID = strings.TrimSpace(r.TaxID)
	r.Email = strings.TrimSpace(r.Email)

	return nil
}

func (r *Recipient) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Contract{}).Where("recipient_id = ?", r.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d contracts reference this grant recipient", ErrStillReferenced, count)
	}

	return nil
}
