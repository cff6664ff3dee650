package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sector is an organizational unit. Its responsible user is the only one
// who may process transfers debiting the sector.
type Sector struct {
	DefaultModel
	Name              string
	Acronym           string
	Note              string
	ResponsibleUserID uuid.UUID
	ResponsibleUser   User `json:"-"`
}

func (s *Sector) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Sector)
	return s.checkIntegrity(tx, *toSave)
}

func (s *Sector) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("ResponsibleUserID") {
		toSave := tx.Statement.Dest.(Sector)
		return s.checkIntegrity(tx, toSave)
	}

	return nil
}

func (s *Sector) checkIntegrity(tx *gorm.DB, toSave Sector) error {
	return tx.First(&User{}, toSave.ResponsibleUserID).Error
}

func (s *Sector) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Acronym = strings.TrimSpace(s.Acronym)
	s.Note = strings.TrimSpace(s.Note)

	return nil
}

// BeforeDelete protects sectors that are still referenced by allocations,
// contracts or transfers.
func (s *Sector) BeforeDelete(tx *gorm.DB) error {
	var count int64

	err := tx.Model(&Allocation{}).Where("sector_id = ?", s.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d allocations reference this sector", ErrStillReferenced, count)
	}

	err = tx.Model(&Contract{}).Where("sector_id = ?", s.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d contracts reference this sector", ErrStillReferenced, count)
	}

	err = tx.Model(&Transfer{}).Where("source_sector_id = ? OR destination_sector_id = ?", s.ID, s.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d transfers reference this sector", ErrStillReferenced, count)
	}

	return nil
}
