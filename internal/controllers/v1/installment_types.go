package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InstallmentEditable represents all user configurable parameters.
// Installments are created with their contract, so only the schedule
// itself can be changed.
type InstallmentEditable struct {
	Number  int             `json:"number" example:"3"`             // Position of the installment in the schedule
	Amount  decimal.Decimal `json:"amount" example:"1500"`          // Amount of the installment
	DueDate types.Date      `json:"dueDate" example:"2024-05-01"`   // Date the installment is due
}

// model transforms the API representation into the model representation
func (e InstallmentEditable) model() models.Installment {
	return models.Installment{
		Number:  e.Number,
		Amount:  e.Amount,
		DueDate: e.DueDate,
	}
}

type InstallmentLinks struct {
	Self            string `json:"self" example:"https://example.com/api/v1/installments/a4a594f6-b688-465c-a6a1-eb0fca819b82"`                  // The installment itself
	Contract        string `json:"contract" example:"https://example.com/api/v1/contracts/65064f5f-70f0-4972-8041-a1ee1a2bbcbd"`                 // The contract the installment belongs to
	RegisterPayment string `json:"registerPayment" example:"https://example.com/api/v1/installments/a4a594f6-b688-465c-a6a1-eb0fca819b82/register-payment"` // Endpoint to register a payment
	CancelPayment   string `json:"cancelPayment" example:"https://example.com/api/v1/installments/a4a594f6-b688-465c-a6a1-eb0fca819b82/cancel-payment"`     // Endpoint to cancel a registered payment
}

type Installment struct {
	models.DefaultModel
	InstallmentEditable
	ContractID     uuid.UUID        `json:"contractId" example:"65064f5f-70f0-4972-8041-a1ee1a2bbcbd"` // ID of the contract the installment belongs to
	Paid           bool             `json:"paid" example:"false"`                                      // Whether the installment has been paid
	PaidDate       *types.Date      `json:"paidDate" example:"2024-05-03"`                             // Date the payment was registered for
	ProofReference string           `json:"proofReference" example:"NF-2024-4711"`                     // Reference to the payment proof document
	Links          InstallmentLinks `json:"links"`                                                     // Links to related resources
}

func newInstallment(c *gin.Context, model models.Installment) Installment {
	url := c.GetString(string(models.DBContextURL))

	return Installment{
		DefaultModel: model.DefaultModel,
		InstallmentEditable: InstallmentEditable{
			Number:  model.Number,
			Amount:  model.Amount,
			DueDate: model.DueDate,
		},
		ContractID:     model.ContractID,
		Paid:           model.Paid,
		PaidDate:       model.PaidDate,
		ProofReference: model.ProofReference,
		Links: InstallmentLinks{
			Self:            fmt.Sprintf("%s/v1/installments/%s", url, model.ID),
			Contract:        fmt.Sprintf("%s/v1/contracts/%s", url, model.ContractID),
			RegisterPayment: fmt.Sprintf("%s/v1/installments/%s/register-payment", url, model.ID),
			CancelPayment:   fmt.Sprintf("%s/v1/installments/%s/cancel-payment", url, model.ID),
		},
	}
}

type InstallmentListResponse struct {
	Data       []Installment `json:"data"`                                                          // List of installments
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type InstallmentResponse struct {
	Data  *Installment `json:"data"`                                                          // Data for the installment
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// PaymentRegistration is the request body for registering a payment.
type PaymentRegistration struct {
	PaidDate       types.Date `json:"paidDate" example:"2024-05-03"`         // Date of the payment. Defaults to today.
	ProofReference string     `json:"proofReference" example:"NF-2024-4711"` // Reference to the payment proof document
}

type InstallmentQueryFilter struct {
	Contract string `form:"contract"`                   // By the ID of the contract
	Paid     bool   `form:"paid"`                       // By the paid flag
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first installment returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of installments to return. Defaults to 50.
}

func (f InstallmentQueryFilter) model() (models.Installment, error) {
	contractID, err := httputil.UUIDFromString(f.Contract)
	if err != nil {
		return models.Installment{}, err
	}

	return models.Installment{
		ContractID: contractID,
		Paid:       f.Paid,
	}, nil
}
