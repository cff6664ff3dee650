package v1

import (
	"errors"
	"net/http"

	"github.com/culturabase/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrNotResponsibleUser) || errors.Is(err, models.ErrAdminRequired) {
		return http.StatusForbidden
	}

	for _, conflict := range []error{
		models.ErrTransferAlreadyProcessed,
		models.ErrInstallmentAlreadyPaid,
		models.ErrInstallmentNotPaid,
		models.ErrNotificationAlreadyRead,
		models.ErrStillReferenced,
	} {
		if errors.Is(err, conflict) {
			return http.StatusConflict
		}
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errCredentialsInvalid = errors.New("the credentials are invalid")
	errUserInactive       = errors.New("this user account is deactivated")
	errNoPassword         = errors.New("a password must be set")
)
