package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusHistory is an append-only log row recorded whenever a contract's
// status changes.
type StatusHistory struct {
	DefaultModel
	ContractID     uuid.UUID
	Contract       Contract `json:"-"`
	PreviousStatus ContractStatus
	NewStatus      ContractStatus
	Reason         string
	ActorID        *uuid.UUID
}

func appendStatusHistory(tx *gorm.DB, contractID uuid.UUID, previous, next ContractStatus, reason string, actorID uuid.UUID) error {
	history := StatusHistory{
		ContractID:     contractID,
		PreviousStatus: previous,
		NewStatus:      next,
		Reason:         reason,
	}
	if actorID != uuid.Nil {
		history.ActorID = &actorID
	}

	return tx.Create(&history).Error
}
