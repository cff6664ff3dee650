package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegisterValidationRoutes registers the validation routes with the
// RouterGroup that is passed. Validation endpoints never write anything,
// they answer the checks a contract write would perform.
func RegisterValidationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/budget-availability", OptionsBudgetAvailability)
	r.POST("/budget-availability", CheckBudgetAvailability)
	r.OPTIONS("/contract-overlap", OptionsContractOverlap)
	r.POST("/contract-overlap", CheckContractOverlap)
}

// BudgetAvailabilityQuery is the request body for a budget check.
type BudgetAvailabilityQuery struct {
	SectorID          uuid.UUID       `json:"sectorId" binding:"required" example:"2cb6f045-8f60-4f70-98f5-0a4cbd27a765"`   // ID of the sector
	LineItemID        uuid.UUID       `json:"lineItemId" binding:"required" example:"6b40ba1c-14a1-4bc9-bbd8-8a517e1408c8"` // ID of the line item
	Amount            decimal.Decimal `json:"amount" example:"15000"`                                                       // Amount that would be committed
	ExcludeContractID uuid.UUID       `json:"excludeContractId" example:"65064f5f-70f0-4972-8041-a1ee1a2bbcbd"`             // Contract to exclude, set when checking an update
}

// BudgetAvailability is the answer to a budget check.
type BudgetAvailability struct {
	Allocated  decimal.Decimal `json:"allocated" example:"50000"`  // Sum of the allocations for the (sector, line item) pair
	Committed  decimal.Decimal `json:"committed" example:"35000"`  // Sum of the non-cancelled contracts drawing from the pair
	Available  decimal.Decimal `json:"available" example:"15000"`  // Allocated minus committed
	Sufficient bool            `json:"sufficient" example:"true"`  // Whether the requested amount fits into the available balance
}

type BudgetAvailabilityResponse struct {
	Data  *BudgetAvailability `json:"data"`                                                          // Data for the budget check
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// ContractOverlapQuery is the request body for an overlap check.
type ContractOverlapQuery struct {
	RecipientID       uuid.UUID  `json:"recipientId" binding:"required" example:"1e8dd135-5f82-47ff-9bc0-20ef3f76a2dd"` // ID of the grant recipient
	StartDate         types.Date `json:"startDate" binding:"required" example:"2024-03-01"`                             // First day of the period to check
	EndDate           types.Date `json:"endDate" binding:"required" example:"2024-12-31"`                               // Last day of the period to check
	ExcludeContractID uuid.UUID  `json:"excludeContractId" example:"65064f5f-70f0-4972-8041-a1ee1a2bbcbd"`              // Contract to exclude, set when checking an update
}

// ContractOverlap is the answer to an overlap check.
type ContractOverlap struct {
	Overlaps bool `json:"overlaps" example:"false"` // Whether the recipient has a non-cancelled contract intersecting the period
}

type ContractOverlapResponse struct {
	Data  *ContractOverlap `json:"data"`                                                          // Data for the overlap check
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Validation
// @Success		204
// @Router			/v1/validation/budget-availability [options]
func OptionsBudgetAvailability(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Validation
// @Success		204
// @Router			/v1/validation/contract-overlap [options]
func OptionsContractOverlap(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Check budget availability
// @Description	Answers the budget check a contract write would perform, without writing anything
// @Tags			Validation
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetAvailabilityResponse
// @Failure		400		{object}	BudgetAvailabilityResponse
// @Failure		404		{object}	BudgetAvailabilityResponse
// @Failure		500		{object}	BudgetAvailabilityResponse
// @Param			query	body		v1.BudgetAvailabilityQuery	true	"Budget check"
// @Router			/v1/validation/budget-availability [post]
func CheckBudgetAvailability(c *gin.Context) {
	var query BudgetAvailabilityQuery
	err := httputil.BindData(c, &query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetAvailabilityResponse{
			Error: &s,
		})
		return
	}

	var check models.BudgetCheck
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&models.Sector{}, query.SectorID).Error
		if err != nil {
			return err
		}

		err = tx.First(&models.LineItem{}, query.LineItemID).Error
		if err != nil {
			return err
		}

		check, err = models.CheckAvailability(tx, query.SectorID, query.LineItemID, query.ExcludeContractID)
		return err
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetAvailabilityResponse{
			Error: &s,
		})
		return
	}

	data := BudgetAvailability{
		Allocated:  check.Allocated,
		Committed:  check.Committed,
		Available:  check.Available,
		Sufficient: !query.Amount.GreaterThan(check.Available),
	}

	c.JSON(http.StatusOK, BudgetAvailabilityResponse{Data: &data})
}

// @Summary		Check contract overlap
// @Description	Answers whether the recipient already has a non-cancelled contract intersecting the period, without writing anything
// @Tags			Validation
// @Accept			json
// @Produce		json
// @Success		200		{object}	ContractOverlapResponse
// @Failure		400		{object}	ContractOverlapResponse
// @Failure		404		{object}	ContractOverlapResponse
// @Failure		500		{object}	ContractOverlapResponse
// @Param			query	body		v1.ContractOverlapQuery	true	"Overlap check"
// @Router			/v1/validation/contract-overlap [post]
func CheckContractOverlap(c *gin.Context) {
	var query ContractOverlapQuery
	err := httputil.BindData(c, &query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractOverlapResponse{
			Error: &s,
		})
		return
	}

	if query.StartDate.After(query.EndDate) {
		s := models.ErrDatesInverted.Error()
		c.JSON(status(models.ErrDatesInverted), ContractOverlapResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.First(&models.Recipient{}, query.RecipientID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractOverlapResponse{
			Error: &s,
		})
		return
	}

	overlaps, err := models.CheckOverlap(models.DB, query.RecipientID, query.StartDate, query.EndDate, query.ExcludeContractID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractOverlapResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ContractOverlapResponse{Data: &ContractOverlap{Overlaps: overlaps}})
}
