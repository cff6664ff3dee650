package models

import (
	"github.com/culturabase/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies a financial movement.
type MovementType string

const (
	MovementTypeInflow   MovementType = "inflow"
	MovementTypeOutflow  MovementType = "outflow"
	MovementTypeTransfer MovementType = "transfer"
)

func (t MovementType) Valid() bool {
	return t == MovementTypeInflow || t == MovementTypeOutflow || t == MovementTypeTransfer
}

// Movement is an append-only bookkeeping row. It is the audit trail for
// all cash movement: one row per installment payment and per approved
// transfer.
type Movement struct {
	DefaultModel
	Type            MovementType
	FundingSourceID *uuid.UUID
	FundingSource   FundingSource `json:"-"`
	SectorID        uuid.UUID
	Sector          Sector `json:"-"`
	LineItemID      uuid.UUID
	LineItem        LineItem   `json:"-"`
	ContractID      *uuid.UUID
	Contract        Contract `json:"-"`
	InstallmentID   *uuid.UUID
	Installment     Installment     `json:"-"`
	Amount          decimal.Decimal `gorm:"type:DECIMAL(15,2)"`
	Date            types.Date
	Description     string
	ActorID         *uuid.UUID
}
