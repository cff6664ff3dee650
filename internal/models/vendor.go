package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Vendor is a legal entity that can be party to a contract.
type Vendor struct {
	DefaultModel
	Name    string
	TaxID   string `gorm:"uniqueIndex"`
	Email   string
	Phone   string
	Address string
	Note    string
}

func (v *Vendor) BeforeSave(_ *gorm.DB) error {
	v.Name = strings.TrimSpace(v.Name)
	v.TaxID = strings.TrimSpace(v.TaxID)
	v.Email = strings.TrimSpace(v.Email)

	return nil
}

func (v *Vendor) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Contract{}).Where("vendor_id = ?", v.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d contracts reference this vendor", ErrStillReferenced, count)
	}

	return nil
}
