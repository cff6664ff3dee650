package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterFundingSourceRoutes registers the routes for funding sources
// with the RouterGroup that is passed.
func RegisterFundingSourceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsFundingSourceList)
		r.GET("", GetFundingSources)
		r.POST("", RequireAdmin(), CreateFundingSources)
	}

	// FundingSource with ID
	{
		r.OPTIONS("/:id", OptionsFundingSourceDetail)
		r.GET("/:id", GetFundingSource)
		r.PATCH("/:id", RequireAdmin(), UpdateFundingSource)
		r.DELETE("/:id", RequireAdmin(), DeleteFundingSource)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FundingSources
// @Success		204
// @Router			/v1/funding-sources [options]
func OptionsFundingSourceList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FundingSources
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/funding-sources/{id} [options]
func OptionsFundingSourceDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.FundingSource{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create funding source
// @Description	Creates a new funding source
// @Tags			FundingSources
// @Produce		json
// @Success		201				{object}	FundingSourceCreateResponse
// @Failure		400				{object}	FundingSourceCreateResponse
// @Failure		500				{object}	FundingSourceCreateResponse
// @Param			fundingSources	body		[]v1.FundingSourceEditable	true	"Funding sources"
// @Router			/v1/funding-sources [post]
func CreateFundingSources(c *gin.Context) {
	var fundingSources []FundingSourceEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &fundingSources)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FundingSourceCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := FundingSourceCreateResponse{}

	for _, editable := range fundingSources {
		fundingSource := editable.model()
		err = models.DB.Create(&fundingSource).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newFundingSource(c, fundingSource)
		r.Data = append(r.Data, FundingSourceResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get funding sources
// @Description	Returns a list of funding sources
// @Tags			FundingSources
// @Produce		json
// @Success		200	{object}	FundingSourceListResponse
// @Failure		400	{object}	FundingSourceListResponse
// @Failure		500	{object}	FundingSourceListResponse
// @Router			/v1/funding-sources [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first funding source returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of funding sources to return. Defaults to 50."
func GetFundingSources(c *gin.Context) {
	var filter FundingSourceQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&model, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 funding sources and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var fundingSources []models.FundingSource
	err = q.Find(&fundingSources).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FundingSourceListResponse{
			Error: &e,
		})
		return
	}

	data := make([]FundingSource, 0, len(fundingSources))
	for _, fundingSource := range fundingSources {
		data = append(data, newFundingSource(c, fundingSource))
	}

	c.JSON(http.StatusOK, FundingSourceListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get funding source
// @Description	Returns a specific funding source
// @Tags			FundingSources
// @Produce		json
// @Success		200	{object}	FundingSourceResponse
// @Failure		400	{object}	FundingSourceResponse
// @Failure		404	{object}	FundingSourceResponse
// @Failure		500	{object}	FundingSourceResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/funding-sources/{id} [get]
func GetFundingSource(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	var fundingSource models.FundingSource
	err = models.DB.First(&fundingSource, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	var computed FundingSourceComputed
	err = models.DB.
		Model(&models.Goal{}).
		Where("funding_source_id = ?", fundingSource.ID).
		Count(&computed.Goals).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	computed.Allocated, err = sumColumn(
		models.DB.Model(&models.Allocation{}).Where("funding_source_id = ?", fundingSource.ID),
		"amount",
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}
	computed.Available = fundingSource.TotalAmount.Sub(computed.Allocated)

	data := newFundingSource(c, fundingSource)
	data.Computed = &computed

	c.JSON(http.StatusOK, FundingSourceResponse{Data: &data})
}

// @Summary		Update funding source
// @Description	Updates an existing funding source. Only values to be updated need to be specified.
// @Tags			FundingSources
// @Accept			json
// @Produce		json
// @Success		200				{object}	FundingSourceResponse
// @Failure		400				{object}	FundingSourceResponse
// @Failure		404				{object}	FundingSourceResponse
// @Failure		500				{object}	FundingSourceResponse
// @Param			id				path		string					true	"ID formatted as string"
// @Param			fundingSource	body		v1.FundingSourceEditable	true	"Funding source"
// @Router			/v1/funding-sources/{id} [patch]
func UpdateFundingSource(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	var fundingSource models.FundingSource
	err = models.DB.First(&fundingSource, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, FundingSourceEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	var data FundingSourceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&fundingSource).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundingSourceResponse{
			Error: &s,
		})
		return
	}

	apiResource := newFundingSource(c, fundingSource)
	c.JSON(http.StatusOK, FundingSourceResponse{Data: &apiResource})
}

// @Summary		Delete funding source
// @Description	Deletes a funding source
// @Tags			FundingSources
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/funding-sources/{id} [delete]
func DeleteFundingSource(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var fundingSource models.FundingSource
	err = models.DB.First(&fundingSource, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&fundingSource).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
