package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// VendorEditable represents all user configurable parameters
type VendorEditable struct {
	Name    string `json:"name" example:"Sound & Light Ltda" default:""`           // Name of the vendor
	TaxID   string `json:"taxId" example:"12.345.678/0001-90" default:""`          // Tax ID of the vendor, unique
	Email   string `json:"email" example:"contact@soundandlight.example" default:""` // Contact email address
	Phone   string `json:"phone" example:"+55 11 99999-0000" default:""`           // Contact phone number
	Address string `json:"address" example:"Av. Paulista 1000, São Paulo" default:""` // Postal address
	Note    string `json:"note" example:"Preferred equipment vendor" default:""`   // Notes about the vendor
}

// model transforms the API representation into the model representation
func (v VendorEditable) model() models.Vendor {
	return models.Vendor{
		Name:    v.Name,
		TaxID:   v.TaxID,
		Email:   v.Email,
		Phone:   v.Phone,
		Address: v.Address,
		Note:    v.Note,
	}
}

type VendorLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/vendors/45b6b5b9-f746-4ae9-b77b-7688b91f8166"`              // The vendor itself
	Contracts string `json:"contracts" example:"https://example.com/api/v1/contracts?vendor=45b6b5b9-f746-4ae9-b77b-7688b91f8166"` // The vendor's contracts
}

// VendorComputed holds values derived from the vendor's contracts.
type VendorComputed struct {
	Contracts  int64           `json:"contracts" example:"3"`       // Number of contracts with the vendor
	TotalValue decimal.Decimal `json:"totalValue" example:"45000"`  // Sum of the committed values of those contracts
	TotalPaid  decimal.Decimal `json:"totalPaid" example:"20000"`   // Sum of the paid values of those contracts
}

type Vendor struct {
	models.DefaultModel
	VendorEditable
	Links    VendorLinks     `json:"links"`              // Links to related resources
	Computed *VendorComputed `json:"computed,omitempty"` // Derived values, only set on single vendor responses
}

func newVendor(c *gin.Context, model models.Vendor) Vendor {
	url := c.GetString(string(models.DBContextURL))

	return Vendor{
		DefaultModel: model.DefaultModel,
		VendorEditable: VendorEditable{
			Name:    model.Name,
			TaxID:   model.TaxID,
			Email:   model.Email,
			Phone:   model.Phone,
			Address: model.Address,
			Note:    model.Note,
		},
		Links: VendorLinks{
			Self:      fmt.Sprintf("%s/v1/vendors/%s", url, model.ID),
			Contracts: fmt.Sprintf("%s/v1/contracts?vendor=%s", url, model.ID),
		},
	}
}

type VendorListResponse struct {
	Data       []Vendor    `json:"data"`                                                          // List of vendors
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type VendorCreateResponse struct {
	Data  []VendorResponse `json:"data"`                                                          // Data for the vendor
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (v *VendorCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	v.Data = append(v.Data, VendorResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type VendorResponse struct {
	Data  *Vendor `json:"data"`                                                          // Data for the vendor
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type VendorQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By the note
	TaxID  string `form:"taxId"`                      // By the tax ID
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first vendor returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of vendors to return. Defaults to 50.
}

func (f VendorQueryFilter) model() (models.Vendor, error) {
	return models.Vendor{
		TaxID: f.TaxID,
	}, nil
}
