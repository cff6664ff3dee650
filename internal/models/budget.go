package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetCheck is the result of an availability check for a
// (sector, line item) pair.
type BudgetCheck struct {
	Allocated decimal.Decimal `json:"allocated" example:"5000"` // Sum of all allocations for the pair
	Committed decimal.Decimal `json:"committed" example:"4000"` // Sum of non-cancelled contract values for the pair
	Available decimal.Decimal `json:"available" example:"1000"` // Allocated minus committed
}

// CheckAvailability computes the available budget balance for a
// (sector, line item) pair. Contracts in the cancelled state do not
// commit budget; excludeContractID removes a contract's own prior
// commitment when it is being updated.
//
// The allocation rows are locked for update so that two concurrent
// writes guarded by the same check cannot both pass it and jointly
// overcommit the budget. Callers must therefore run it inside the
// transaction of the write it guards.
func CheckAvailability(tx *gorm.DB, sectorID, lineItemID, excludeContractID uuid.UUID) (BudgetCheck, error) {
	var allocations []Allocation
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sector_id = ? AND line_item_id = ?", sectorID, lineItemID).
		Find(&allocations).
		Error
	if err != nil {
		return BudgetCheck{}, err
	}

	allocated := decimal.Zero
	for _, allocation := range allocations {
		allocated = allocated.Add(allocation.Amount)
	}

	query := tx.
		Model(&Contract{}).
		Where("sector_id = ? AND line_item_id = ?", sectorID, lineItemID).
		Where("status != ?", ContractStatusCancelled)

	if excludeContractID != uuid.Nil {
		query = query.Where("id != ?", excludeContractID)
	}

	var committed decimal.NullDecimal
	err = query.Select("SUM(total_value)").Find(&committed).Error
	if err != nil {
		return BudgetCheck{}, err
	}

	// If no contracts are found, the sum is nil
	if !committed.Valid {
		committed.Decimal = decimal.Zero
	}

	return BudgetCheck{
		Allocated: allocated,
		Committed: committed.Decimal,
		Available: allocated.Sub(committed.Decimal),
	}, nil
}
