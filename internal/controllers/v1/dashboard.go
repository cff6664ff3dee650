package v1

import (
	"net/http"
	"sort"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegisterDashboardRoutes registers the dashboard routes with the
// RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", OptionsDashboard)
	r.GET("/summary", GetDashboardSummary)
	r.OPTIONS("/contracts", OptionsDashboard)
	r.GET("/contracts", GetDashboardContracts)
	r.OPTIONS("/financial", OptionsDashboard)
	r.GET("/financial", GetDashboardFinancial)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard/summary [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Dashboard summary
// @Description	Returns the overview counters and totals for the landing page
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardSummaryResponse
// @Failure		500	{object}	DashboardSummaryResponse
// @Router			/v1/dashboard/summary [get]
func GetDashboardSummary(c *gin.Context) {
	var summary DashboardSummary

	err := models.DB.Model(&models.Contract{}).Count(&summary.Contracts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardSummaryResponse{Error: &s})
		return
	}

	err = models.DB.Model(&models.Contract{}).
		Where("status = ?", models.ContractStatusInExecution).
		Count(&summary.ActiveContracts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardSummaryResponse{Error: &s})
		return
	}

	err = models.DB.Model(&models.Installment{}).
		Where("paid = ? AND due_date < ?", false, types.Today()).
		Count(&summary.OverdueInstallments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardSummaryResponse{Error: &s})
		return
	}

	err = models.DB.Model(&models.Transfer{}).
		Where("status = ?", models.TransferStatusPending).
		Count(&summary.PendingTransfers).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardSummaryResponse{Error: &s})
		return
	}

	err = models.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", actorID(c), false).
		Count(&summary.UnreadNotifications).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardSummaryResponse{Error: &s})
		return
	}

	summary.TotalAllocated, err = sumColumn(models.DB.Model(&models.Allocation{}), "amount")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardSummaryResponse{Error: &s})
		return
	}

	summary.TotalCommitted, err = sumColumn(
		models.DB.Model(&models.Contract{}).Where("status != ?", models.ContractStatusCancelled),
		"total_value",
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardSummaryResponse{Error: &s})
		return
	}

	summary.TotalPaid, err = sumColumn(
		models.DB.Model(&models.Installment{}).Where("paid = ?", true),
		"amount",
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardSummaryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, DashboardSummaryResponse{Data: &summary})
}

// @Summary		Contract dashboard
// @Description	Returns the contract portfolio grouped by status and type, and the contracts ending within the next 30 days
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardContractsResponse
// @Failure		500	{object}	DashboardContractsResponse
// @Router			/v1/dashboard/contracts [get]
func GetDashboardContracts(c *gin.Context) {
	var contracts []models.Contract
	err := models.DB.Find(&contracts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardContractsResponse{Error: &s})
		return
	}

	byStatus := make(map[models.ContractStatus]int64)
	byType := make(map[models.ContractType]int64)
	for _, contract := range contracts {
		byStatus[contract.Status]++
		byType[contract.Type]++
	}

	data := DashboardContracts{
		ByStatus:   make([]DashboardStatusCount, 0, len(byStatus)),
		ByType:     make([]DashboardTypeCount, 0, len(byType)),
		EndingSoon: []Contract{},
	}

	for status, count := range byStatus {
		data.ByStatus = append(data.ByStatus, DashboardStatusCount{Status: status, Count: count})
	}
	sort.Slice(data.ByStatus, func(i, j int) bool {
		return data.ByStatus[i].Status < data.ByStatus[j].Status
	})

	for contractType, count := range byType {
		data.ByType = append(data.ByType, DashboardTypeCount{Type: contractType, Count: count})
	}
	sort.Slice(data.ByType, func(i, j int) bool {
		return data.ByType[i].Type < data.ByType[j].Type
	})

	today := types.Today()
	horizon := today.AddDays(30)

	var endingSoon []models.Contract
	err = models.DB.
		Where("status != ?", models.ContractStatusCancelled).
		Where("end_date >= ? AND end_date <= ?", today, horizon).
		Order("end_date ASC").
		Find(&endingSoon).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardContractsResponse{Error: &s})
		return
	}

	for _, contract := range endingSoon {
		data.EndingSoon = append(data.EndingSoon, newContract(c, contract))
	}

	c.JSON(http.StatusOK, DashboardContractsResponse{Data: &data})
}

// @Summary		Financial dashboard
// @Description	Returns the budget state per sector and the most recent movements
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardFinancialResponse
// @Failure		500	{object}	DashboardFinancialResponse
// @Router			/v1/dashboard/financial [get]
func GetDashboardFinancial(c *gin.Context) {
	var sectors []models.Sector
	err := models.DB.Order("name ASC").Find(&sectors).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardFinancialResponse{Error: &s})
		return
	}

	data := DashboardFinancial{
		Sectors:         make([]DashboardSectorBudget, 0, len(sectors)),
		RecentMovements: []MovementEntry{},
	}

	for _, sector := range sectors {
		budget := DashboardSectorBudget{
			SectorID:   sector.ID,
			SectorName: sector.Name,
		}

		budget.Allocated, err = sumColumn(
			models.DB.Model(&models.Allocation{}).Where("sector_id = ?", sector.ID),
			"amount",
		)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DashboardFinancialResponse{Error: &s})
			return
		}

		budget.Committed, err = sumColumn(
			models.DB.Model(&models.Contract{}).
				Where("sector_id = ?", sector.ID).
				Where("status != ?", models.ContractStatusCancelled),
			"total_value",
		)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DashboardFinancialResponse{Error: &s})
			return
		}

		budget.Paid, err = sumColumn(
			models.DB.Model(&models.Contract{}).Where("sector_id = ?", sector.ID),
			"total_paid",
		)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DashboardFinancialResponse{Error: &s})
			return
		}

		data.Sectors = append(data.Sectors, budget)
	}

	var movements []models.Movement
	err = models.DB.
		Order("date DESC, created_at DESC").
		Limit(10).
		Find(&movements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardFinancialResponse{Error: &s})
		return
	}

	for _, movement := range movements {
		data.RecentMovements = append(data.RecentMovements, newMovementEntry(c, movement))
	}

	c.JSON(http.StatusOK, DashboardFinancialResponse{Data: &data})
}

// sumColumn sums a decimal column over the rows of the prepared query.
func sumColumn(query *gorm.DB, column string) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := query.Select("SUM(" + column + ")").Find(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}
