package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors surfaced as HTTP 400.
var (
	ErrContractNoCounterparty    = errors.New("a contract requires either a vendor or a grant recipient")
	ErrContractBothParties       = errors.New("a contract cannot have both a vendor and a grant recipient")
	ErrDatesInverted             = errors.New("the start date must not be after the end date")
	ErrContractPeriodOverlap     = errors.New("the grant recipient already has a contract in the requested period")
	ErrBudgetInsufficient        = errors.New("the available budget balance is insufficient")
	ErrContractStatusInvalid     = errors.New("the specified contract status is invalid")
	ErrContractTypeInvalid       = errors.New("the specified contract type is invalid")
	ErrInstallmentCountZero      = errors.New("the number of installments must be at least 1")
	ErrInstallmentNumberNotUnique = errors.New("the installment number must be unique for the contract")
	ErrAmountNotPositive         = errors.New("the amount must be larger than zero")
	ErrTransferSameSector        = errors.New("source and destination sector of a transfer must be different")
	ErrTransferStatusInvalid     = errors.New("the specified transfer status is invalid")
	ErrTransferNoAllocation      = errors.New("the source sector has no allocation for this line item")
	ErrTransferInsufficient      = errors.New("the source sector's allocation is smaller than the transfer amount")
	ErrNotificationTypeInvalid   = errors.New("the specified notification type is invalid")
	ErrReportTypeInvalid         = errors.New("the specified report type is invalid")
	ErrUserRoleInvalid           = errors.New("the specified user role is invalid")
)

// Conflict errors surfaced as HTTP 409.
var (
	ErrTransferAlreadyProcessed = errors.New("this transfer has already been processed")
	ErrInstallmentAlreadyPaid   = errors.New("this installment has already been paid")
	ErrInstallmentNotPaid       = errors.New("this installment has not been paid")
	ErrNotificationAlreadyRead  = errors.New("this notification has already been marked as read")
	ErrNoUnreadNotifications    = errors.New("there are no unread notifications")
)

// Authorization errors surfaced as HTTP 403.
var (
	ErrNotResponsibleUser = errors.New("only the responsible user of the source sector may process this transfer")
	ErrAdminRequired      = errors.New("this action requires the admin role")
)

// Reference protection and uniqueness errors.
var (
	ErrStillReferenced         = errors.New("this resource is still referenced and cannot be deleted")
	ErrUserEmailNotUnique      = errors.New("the email address is already in use")
	ErrVendorTaxIDNotUnique    = errors.New("a vendor with this tax ID already exists")
	ErrRecipientTaxIDNotUnique = errors.New("a grant recipient with this tax ID already exists")
	ErrConfigKeyNotUnique      = errors.New("a configuration entry with this key already exists")
)
