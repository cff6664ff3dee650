package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RecipientEditable represents all user configurable parameters
type RecipientEditable struct {
	Name    string `json:"name" example:"Maria da Silva" default:""`              // Name of the grant recipient
	TaxID   string `json:"taxId" example:"123.456.789-00" default:""`             // Tax ID of the grant recipient, unique
	Email   string `json:"email" example:"maria@example.com" default:""`          // Contact email address
	Phone   string `json:"phone" example:"+55 11 98888-0000" default:""`          // Contact phone number
	Address string `json:"address" example:"Rua das Flores 42, Recife" default:""` // Postal address
	Note    string `json:"note" example:"Theatre grant holder 2025" default:""`   // Notes about the grant recipient
}

// model transforms the API representation into the model representation
func (r RecipientEditable) model() models.Recipient {
	return models.Recipient{
		Name:    r.Name,
		TaxID:   r.TaxID,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Note:    r.Note,
	}
}

type RecipientLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/recipients/45b6b5b9-f746-4ae9-b77b-7688b91f8166"`               // The grant recipient itself
	Contracts string `json:"contracts" example:"https://example.com/api/v1/contracts?recipient=45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // The grant recipient's contracts
}

// RecipientComputed holds values derived from the recipient's contracts.
type RecipientComputed struct {
	Contracts  int64           `json:"contracts" example:"2"`      // Number of contracts with the recipient
	TotalValue decimal.Decimal `json:"totalValue" example:"30000"` // Sum of the committed values of those contracts
	TotalPaid  decimal.Decimal `json:"totalPaid" example:"12000"`  // Sum of the paid values of those contracts
}

type Recipient struct {
	models.DefaultModel
	RecipientEditable
	Links    RecipientLinks     `json:"links"`              // Links to related resources
	Computed *RecipientComputed `json:"computed,omitempty"` // Derived values, only set on single recipient responses
}

func newRecipient(c *gin.Context, model models.Recipient) Recipient {
	url := c.GetString(string(models.DBContextURL))

	return Recipient{
		DefaultModel: model.DefaultModel,
		RecipientEditable: RecipientEditable{
			Name:    model.Name,
			TaxID:   model.TaxID,
			Email:   model.Email,
			Phone:   model.Phone,
			Address: model.Address,
			Note:    model.Note,
		},
		Links: RecipientLinks{
			Self:      fmt.Sprintf("%s/v1/recipients/%s", url, model.ID),
			Contracts: fmt.Sprintf("%s/v1/contracts?recipient=%s", url, model.ID),
		},
	}
}

type RecipientListResponse struct {
	Data       []Recipient `json:"data"`                                                          // List of grant recipients
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type RecipientCreateResponse struct {
	Data  []RecipientResponse `json:"data"`                                                          // Data for the grant recipient
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecipientCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecipientResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecipientResponse struct {
	Data  *Recipient `json:"data"`                                                          // Data for the grant recipient
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecipientQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By the note
	TaxID  string `form:"taxId"`                      // By the tax ID
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first grant recipient returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of grant recipients to return. Defaults to 50.
}

func (f RecipientQueryFilter) model() (models.Recipient, error) {
	return models.Recipient{
		TaxID: f.TaxID,
	}, nil
}
