package models

import (
	"fmt"
	"strings"

	"github.com/culturabase/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContractStatus is the state of a contract in its lifecycle.
type ContractStatus string

const (
	ContractStatusDraft                ContractStatus = "draft"
	ContractStatusSigned               ContractStatus = "signed"
	ContractStatusInExecution          ContractStatus = "in_execution"
	ContractStatusConcluded            ContractStatus = "concluded"
	ContractStatusCancelled            ContractStatus = "cancelled"
	ContractStatusSuspended            ContractStatus = "suspended"
	ContractStatusOverdue              ContractStatus = "overdue"
	ContractStatusDelinquent           ContractStatus = "delinquent"
	ContractStatusConcludedWithPending ContractStatus = "concluded_with_pending"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusDraft, ContractStatusSigned, ContractStatusInExecution,
		ContractStatusConcluded, ContractStatusCancelled, ContractStatusSuspended,
		ContractStatusOverdue, ContractStatusDelinquent, ContractStatusConcludedWithPending:
		return true
	}

	return false
}

type ContractType string

const (
	ContractTypeGrant       ContractType = "grant"
	ContractTypeService     ContractType = "service"
	ContractTypeProcurement ContractType = "procurement"
	ContractTypeOther       ContractType = "other"
)

func (t ContractType) Valid() bool {
	switch t {
	case ContractTypeGrant, ContractTypeService, ContractTypeProcurement, ContractTypeOther:
		return true
	}

	return false
}

// StatusReasonAutomatic is the reason recorded for status changes made by
// the automatic re-evaluation.
const StatusReasonAutomatic = "automatic status update"

// Contract commits budget from a (sector, line item) pair to a vendor or
// a grant recipient, paid out in installments.
type Contract struct {
	DefaultModel
	Number           string // The institution's process number for the contract
	Object           string // What is being contracted
	Responsible      string // Free-text name of the person following up on the contract
	Type             ContractType
	Status           ContractStatus
	PreviousStatus   ContractStatus
	SectorID         uuid.UUID
	Sector           Sector `json:"-"`
	LineItemID       uuid.UUID
	LineItem         LineItem   `json:"-"`
	VendorID         *uuid.UUID `gorm:"check:one_counterparty,(vendor_id IS NULL) != (recipient_id IS NULL)"`
	Vendor           Vendor     `json:"-"`
	RecipientID      *uuid.UUID
	Recipient        Recipient `json:"-"`
	StartDate        types.Date
	EndDate          types.Date
	TotalValue       decimal.Decimal `gorm:"type:DECIMAL(15,2)"`
	TotalPaid        decimal.Decimal `gorm:"type:DECIMAL(15,2)"`
	InstallmentCount int
	CreatedByID      *uuid.UUID
	UpdatedByID      *uuid.UUID
}

func (c *Contract) BeforeSave(_ *gorm.DB) error {
	c.Number = strings.TrimSpace(c.Number)
	c.Object = strings.TrimSpace(c.Object)
	c.Responsible = strings.TrimSpace(c.Responsible)

	// Ensure that optional references are nil and not pointers to a
	// nil UUID when unset
	if c.VendorID != nil && *c.VendorID == uuid.Nil {
		c.VendorID = nil
	}
	if c.RecipientID != nil && *c.RecipientID == uuid.Nil {
		c.RecipientID = nil
	}

	return nil
}

// AfterDelete removes the contract's installments, status history and
// movements. The installments are loaded first so that their own delete
// hooks run.
func (c *Contract) AfterDelete(tx *gorm.DB) error {
	var installments []Installment
	err := tx.Where("contract_id = ?", c.ID).Find(&installments).Error
	if err != nil {
		return err
	}

	for i := range installments {
		err = tx.Delete(&installments[i]).Error
		if err != nil {
			return err
		}
	}

	err = tx.Where("contract_id = ?", c.ID).Delete(&StatusHistory{}).Error
	if err != nil {
		return err
	}

	return tx.Where("contract_id = ?", c.ID).Delete(&Movement{}).Error
}

// CheckOverlap reports whether the grant recipient already has a
// non-cancelled contract whose date range intersects [start, end]. Both
// bounds are inclusive, so two contracts sharing a boundary date overlap.
func CheckOverlap(tx *gorm.DB, recipientID uuid.UUID, start, end types.Date, excludeContractID uuid.UUID) (bool, error) {
	query := tx.
		Model(&Contract{}).
		Where("recipient_id = ?", recipientID).
		Where("status != ?", ContractStatusCancelled).
		Where("start_date <= ? AND end_date >= ?", end, start)

	if excludeContractID != uuid.Nil {
		query = query.Where("id != ?", excludeContractID)
	}

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// validate enforces all business rules for a contract write. It runs
// inside the transaction of the write it guards so that the budget check
// holds the allocation row locks until the contract row is persisted.
func (c *Contract) validate(tx *gorm.DB) error {
	if !c.Type.Valid() {
		return ErrContractTypeInvalid
	}

	if !c.Status.Valid() {
		return ErrContractStatusInvalid
	}

	if c.VendorID == nil && c.RecipientID == nil {
		return ErrContractNoCounterparty
	}

	if c.VendorID != nil && c.RecipientID != nil {
		return ErrContractBothParties
	}

	if c.StartDate.After(c.EndDate) {
		return ErrDatesInverted
	}

	if !c.TotalValue.IsPositive() {
		return ErrAmountNotPositive
	}

	if c.InstallmentCount < 1 {
		return ErrInstallmentCountZero
	}

	err := tx.First(&Sector{}, c.SectorID).Error
	if err != nil {
		return err
	}

	err = tx.First(&LineItem{}, c.LineItemID).Error
	if err != nil {
		return err
	}

	if c.VendorID != nil {
		err = tx.First(&Vendor{}, *c.VendorID).Error
		if err != nil {
			return err
		}
	}

	if c.RecipientID != nil {
		err = tx.First(&Recipient{}, *c.RecipientID).Error
		if err != nil {
			return err
		}

		overlaps, err := CheckOverlap(tx, *c.RecipientID, c.StartDate, c.EndDate, c.ID)
		if err != nil {
			return err
		}

		if overlaps {
			return ErrContractPeriodOverlap
		}
	}

	// Cancelled contracts do not commit budget, so they are not checked
	// against it either
	if c.Status != ContractStatusCancelled {
		check, err := CheckAvailability(tx, c.SectorID, c.LineItemID, c.ID)
		if err != nil {
			return err
		}

		if c.TotalValue.GreaterThan(check.Available) {
			return fmt.Errorf("%w: available balance is %s", ErrBudgetInsufficient, check.Available)
		}
	}

	return nil
}

// CreateContract validates the contract, persists it, generates its
// installment schedule and records the initial status. Nothing is written
// when any validation fails.
func CreateContract(db *gorm.DB, contract *Contract, actorID uuid.UUID) error {
	if contract.Status == "" {
		contract.Status = ContractStatusDraft
	}
	contract.PreviousStatus = contract.Status
	contract.TotalPaid = decimal.Zero

	if actorID != uuid.Nil {
		contract.CreatedByID = &actorID
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := contract.validate(tx)
		if err != nil {
			return err
		}

		err = tx.Create(contract).Error
		if err != nil {
			return err
		}

		err = generateInstallments(tx, contract)
		if err != nil {
			return err
		}

		return appendStatusHistory(tx, contract.ID, "", contract.Status, "contract created", actorID)
	})
}

// UpdateContract validates and persists a contract that already has the
// requested changes applied in memory. previousStatus is the status the
// row carried before the changes; a status history row is recorded when
// the update changes it.
func UpdateContract(db *gorm.DB, contract *Contract, previousStatus ContractStatus, actorID uuid.UUID) error {
	if actorID != uuid.Nil {
		contract.UpdatedByID = &actorID
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := contract.validate(tx)
		if err != nil {
			return err
		}

		if contract.Status != previousStatus {
			contract.PreviousStatus = previousStatus

			err = appendStatusHistory(tx, contract.ID, previousStatus, contract.Status, "manual status update", actorID)
			if err != nil {
				return err
			}
		}

		return tx.Omit(clause.Associations).Save(contract).Error
	})
}

// expectedStatus computes the status the automatic re-evaluation would
// assign to the contract for the given date, considering its installments.
func (c Contract) expectedStatus(today types.Date, installments []Installment) ContractStatus {
	if c.Status == ContractStatusCancelled {
		return c.Status
	}

	if c.EndDate.Before(today) {
		if c.TotalPaid.GreaterThanOrEqual(c.TotalValue) {
			return ContractStatusConcluded
		}

		return ContractStatusConcludedWithPending
	}

	if !c.StartDate.After(today) {
		for _, installment := range installments {
			if !installment.Paid && installment.DueDate.Before(today) {
				return ContractStatusOverdue
			}
		}

		if c.Status == ContractStatusDraft || c.Status == ContractStatusSigned {
			return ContractStatusInExecution
		}
	}

	return c.Status
}

// RefreshContractStatus applies the automatic status re-evaluation to the
// contract. It returns whether the status changed.
func RefreshContractStatus(db *gorm.DB, contract *Contract) (bool, error) {
	changed := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var installments []Installment
		err := tx.Where("contract_id = ?", contract.ID).Find(&installments).Error
		if err != nil {
			return err
		}

		expected := contract.expectedStatus(types.Today(), installments)
		if expected == contract.Status {
			return nil
		}

		previous := contract.Status
		contract.PreviousStatus = previous
		contract.Status = expected
		changed = true

		err = tx.Model(contract).
			Select("Status", "PreviousStatus").
			Updates(Contract{Status: expected, PreviousStatus: previous}).
			Error
		if err != nil {
			return err
		}

		return appendStatusHistory(tx, contract.ID, previous, expected, StatusReasonAutomatic, uuid.Nil)
	})

	return changed, err
}
