package models

import (
	"errors"
	"time"

	"github.com/culturabase/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransferStatus is the state of a transfer request. Approved and
// rejected are terminal.
type TransferStatus string

const (
	TransferStatusPending  TransferStatus = "pending"
	TransferStatusApproved TransferStatus = "approved"
	TransferStatusRejected TransferStatus = "rejected"
)

func (s TransferStatus) Valid() bool {
	return s == TransferStatusPending || s == TransferStatusApproved || s == TransferStatusRejected
}

// Transfer is a request to move allocated budget from one sector to
// another for the same line item.
type Transfer struct {
	DefaultModel
	SourceSectorID      uuid.UUID `gorm:"check:source_destination_different,source_sector_id != destination_sector_id"`
	SourceSector        Sector    `json:"-"`
	DestinationSectorID uuid.UUID
	DestinationSector   Sector `json:"-"`
	LineItemID          uuid.UUID
	LineItem            LineItem        `json:"-"`
	Amount              decimal.Decimal `gorm:"type:DECIMAL(15,2)"`
	Reason              string
	Status              TransferStatus
	RequestedByID       *uuid.UUID
	ProcessedByID       *uuid.UUID
	ProcessedAt         *time.Time
}

func (t *Transfer) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transfer)
	return t.checkIntegrity(tx, *toSave)
}

func (t *Transfer) checkIntegrity(tx *gorm.DB, toSave Transfer) error {
	err := tx.First(&Sector{}, toSave.SourceSectorID).Error
	if err != nil {
		return err
	}

	err = tx.First(&Sector{}, toSave.DestinationSectorID).Error
	if err != nil {
		return err
	}

	return tx.First(&LineItem{}, toSave.LineItemID).Error
}

func (t *Transfer) BeforeSave(_ *gorm.DB) error {
	if t.Status == "" {
		t.Status = TransferStatusPending
	}

	if !t.Status.Valid() {
		return ErrTransferStatusInvalid
	}

	if t.SourceSectorID == t.DestinationSectorID {
		return ErrTransferSameSector
	}

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// authorizeProcessing checks that the transfer is still pending and that
// the actor is the responsible user of the source sector.
func (t *Transfer) authorizeProcessing(tx *gorm.DB, actorID uuid.UUID) error {
	if t.Status != TransferStatusPending {
		return ErrTransferAlreadyProcessed
	}

	var source Sector
	err := tx.First(&source, t.SourceSectorID).Error
	if err != nil {
		return err
	}

	if source.ResponsibleUserID != actorID {
		return ErrNotResponsibleUser
	}

	return nil
}

// ApproveTransfer debits the source sector's allocation for the line item
// and credits the destination sector's, creating the destination
// allocation with the source's funding source when it does not exist yet.
// The allocation rows are locked for the whole check-and-write.
func ApproveTransfer(db *gorm.DB, transfer *Transfer, actorID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := transfer.authorizeProcessing(tx, actorID)
		if err != nil {
			return err
		}

		var source Allocation
		err = tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("sector_id = ? AND line_item_id = ?", transfer.SourceSectorID, transfer.LineItemID).
			First(&source).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
				return ErrTransferNoAllocation
			}
			return err
		}

		if source.Amount.LessThan(transfer.Amount) {
			return ErrTransferInsufficient
		}

		err = tx.Model(&source).Update("amount", source.Amount.Sub(transfer.Amount)).Error
		if err != nil {
			return err
		}

		var destination Allocation
		err = tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("sector_id = ? AND line_item_id = ?", transfer.DestinationSectorID, transfer.LineItemID).
			First(&destination).
			Error
		if err == nil {
			err = tx.Model(&destination).Update("amount", destination.Amount.Add(transfer.Amount)).Error
			if err != nil {
				return err
			}
		} else if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
			// The destination allocation inherits the funding source of
			// the debited one
			destination = Allocation{
				FundingSourceID: source.FundingSourceID,
				SectorID:        transfer.DestinationSectorID,
				LineItemID:      transfer.LineItemID,
				Amount:          transfer.Amount,
			}

			err = tx.Create(&destination).Error
			if err != nil {
				return err
			}
		} else {
			return err
		}

		movement := Movement{
			Type:            MovementTypeTransfer,
			SectorID:        transfer.SourceSectorID,
			LineItemID:      transfer.LineItemID,
			FundingSourceID: &source.FundingSourceID,
			Amount:          transfer.Amount,
			Date:            types.Today(),
			Description:     "transfer between sectors",
			ActorID:         &actorID,
		}

		err = tx.Create(&movement).Error
		if err != nil {
			return err
		}

		return finishProcessing(tx, transfer, TransferStatusApproved, actorID)
	})
}

// RejectTransfer marks the transfer as rejected without touching any
// allocation.
func RejectTransfer(db *gorm.DB, transfer *Transfer, actorID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := transfer.authorizeProcessing(tx, actorID)
		if err != nil {
			return err
		}

		return finishProcessing(tx, transfer, TransferStatusRejected, actorID)
	})
}

func finishProcessing(tx *gorm.DB, transfer *Transfer, status TransferStatus, actorID uuid.UUID) error {
	now := time.Now().In(time.UTC)
	transfer.Status = status
	transfer.ProcessedByID = &actorID
	transfer.ProcessedAt = &now

	return tx.Model(transfer).
		Select("Status", "ProcessedByID", "ProcessedAt").
		Updates(*transfer).
		Error
}
