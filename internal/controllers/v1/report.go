package v1

import (
	"net/http"
	"sort"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RegisterReportRoutes registers the report routes with the RouterGroup
// that is passed. Every generation request is recorded with its
// parameters so that report usage can be audited.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsReportList)
	r.GET("", GetReports)
	r.OPTIONS("/contracts", OptionsContractReport)
	r.GET("/contracts", GetContractReport)
	r.OPTIONS("/financial", OptionsFinancialReport)
	r.GET("/financial", GetFinancialReport)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports [options]
func OptionsReportList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/contracts [options]
func OptionsContractReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/financial [options]
func OptionsFinancialReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get report log
// @Description	Returns a list of recorded report generations, newest first
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportListResponse
// @Failure		500	{object}	ReportListResponse
// @Router			/v1/reports [get]
// @Param			type	query	string	false	"Filter by type"
// @Param			offset	query	uint	false	"The offset of the first report returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of reports to return. Defaults to 50."
func GetReports(c *gin.Context) {
	var filter ReportQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("created_at DESC").
		Where(&model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 reports and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var reports []models.Report
	err = q.Find(&reports).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReportListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Report, 0, len(reports))
	for _, report := range reports {
		data = append(data, newReport(report))
	}

	c.JSON(http.StatusOK, ReportListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Contract report
// @Description	Aggregates the filtered contracts by status and returns them together with the totals. The generation is recorded in the report log.
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ContractReportResponse
// @Failure		400	{object}	ContractReportResponse
// @Failure		500	{object}	ContractReportResponse
// @Router			/v1/reports/contracts [get]
// @Param			sector	query	string	false	"Filter by sector ID"
// @Param			status	query	string	false	"Filter by status"
// @Param			type	query	string	false	"Filter by type"
// @Param			from	query	string	false	"Contracts whose period ends on or after this date"
// @Param			until	query	string	false	"Contracts whose period starts on or before this date"
func GetContractReport(c *gin.Context) {
	var query ContractReportQuery

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&query)

	sectorID, err := httputil.UUIDFromString(query.Sector)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractReportResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.Order("start_date ASC, number ASC")

	if query.Sector != "" {
		q = q.Where("sector_id = ?", sectorID)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.Type != "" {
		q = q.Where("type = ?", query.Type)
	}

	if query.From != "" {
		from, err := types.ParseDate(query.From)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, ContractReportResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("end_date >= ?", from)
	}

	if query.Until != "" {
		until, err := types.ParseDate(query.Until)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, ContractReportResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("start_date <= ?", until)
	}

	var contracts []models.Contract
	err = q.Find(&contracts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractReportResponse{
			Error: &s,
		})
		return
	}

	report := ContractReport{
		Count:      int64(len(contracts)),
		TotalValue: decimal.Zero,
		TotalPaid:  decimal.Zero,
		ByStatus:   []ContractReportGroup{},
		Contracts:  make([]Contract, 0, len(contracts)),
	}

	groups := make(map[models.ContractStatus]*ContractReportGroup)
	for _, contract := range contracts {
		report.TotalValue = report.TotalValue.Add(contract.TotalValue)
		report.TotalPaid = report.TotalPaid.Add(contract.TotalPaid)
		report.Contracts = append(report.Contracts, newContract(c, contract))

		group, ok := groups[contract.Status]
		if !ok {
			group = &ContractReportGroup{
				Status:     contract.Status,
				TotalValue: decimal.Zero,
				TotalPaid:  decimal.Zero,
			}
			groups[contract.Status] = group
		}

		group.Count++
		group.TotalValue = group.TotalValue.Add(contract.TotalValue)
		group.TotalPaid = group.TotalPaid.Add(contract.TotalPaid)
	}

	for _, group := range groups {
		report.ByStatus = append(report.ByStatus, *group)
	}
	sort.Slice(report.ByStatus, func(i, j int) bool {
		return report.ByStatus[i].Status < report.ByStatus[j].Status
	})

	_, err = models.RecordReport(models.DB, models.ReportTypeContracts, query, actorID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractReportResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, ContractReportResponse{Data: &report})
}

// @Summary		Financial report
// @Description	Aggregates the filtered movements by calendar month. The generation is recorded in the report log.
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	FinancialReportResponse
// @Failure		400	{object}	FinancialReportResponse
// @Failure		500	{object}	FinancialReportResponse
// @Router			/v1/reports/financial [get]
// @Param			sector			query	string	false	"Filter by sector ID"
// @Param			fundingSource	query	string	false	"Filter by funding source ID"
// @Param			from			query	string	false	"Movements on or after this date"
// @Param			until			query	string	false	"Movements on or before this date"
func GetFinancialReport(c *gin.Context) {
	var query FinancialReportQuery

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&query)

	sectorID, err := httputil.UUIDFromString(query.Sector)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialReportResponse{
			Error: &s,
		})
		return
	}

	fundingSourceID, err := httputil.UUIDFromString(query.FundingSource)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialReportResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.Order("date ASC")

	if query.Sector != "" {
		q = q.Where("sector_id = ?", sectorID)
	}
	if query.FundingSource != "" {
		q = q.Where("funding_source_id = ?", fundingSourceID)
	}

	if query.From != "" {
		from, err := types.ParseDate(query.From)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, FinancialReportResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("date >= ?", from)
	}

	if query.Until != "" {
		until, err := types.ParseDate(query.Until)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, FinancialReportResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("date <= ?", until)
	}

	var movements []models.Movement
	err = q.Find(&movements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialReportResponse{
			Error: &s,
		})
		return
	}

	report := FinancialReport{
		Inflow:   decimal.Zero,
		Outflow:  decimal.Zero,
		Transfer: decimal.Zero,
		ByMonth:  []FinancialReportMonth{},
	}

	months := make(map[string]*FinancialReportMonth)
	for _, movement := range movements {
		// The month key is the YYYY-MM prefix of the date
		key := movement.Date.String()[:7]

		month, ok := months[key]
		if !ok {
			month = &FinancialReportMonth{
				Month:    key,
				Inflow:   decimal.Zero,
				Outflow:  decimal.Zero,
				Transfer: decimal.Zero,
			}
			months[key] = month
		}

		switch movement.Type {
		case models.MovementTypeInflow:
			report.Inflow = report.Inflow.Add(movement.Amount)
			month.Inflow = month.Inflow.Add(movement.Amount)
		case models.MovementTypeOutflow:
			report.Outflow = report.Outflow.Add(movement.Amount)
			month.Outflow = month.Outflow.Add(movement.Amount)
		case models.MovementTypeTransfer:
			report.Transfer = report.Transfer.Add(movement.Amount)
			month.Transfer = month.Transfer.Add(movement.Amount)
		}
	}

	for _, month := range months {
		report.ByMonth = append(report.ByMonth, *month)
	}
	sort.Slice(report.ByMonth, func(i, j int) bool {
		return report.ByMonth[i].Month < report.ByMonth[j].Month
	})

	_, err = models.RecordReport(models.DB, models.ReportTypeFinancial, query, actorID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FinancialReportResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, FinancialReportResponse{Data: &report})
}
