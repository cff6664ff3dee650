package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterLineItemRoutes registers the routes for line items with
// the RouterGroup that is passed.
func RegisterLineItemRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsLineItemList)
		r.GET("", GetLineItems)
		r.POST("", RequireAdmin(), CreateLineItems)
	}

	// LineItem with ID
	{
		r.OPTIONS("/:id", OptionsLineItemDetail)
		r.GET("/:id", GetLineItem)
		r.PATCH("/:id", RequireAdmin(), UpdateLineItem)
		r.DELETE("/:id", RequireAdmin(), DeleteLineItem)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			LineItems
// @Success		204
// @Router			/v1/line-items [options]
func OptionsLineItemList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			LineItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/line-items/{id} [options]
func OptionsLineItemDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.LineItem{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create line item
// @Description	Creates a new line item
// @Tags			LineItems
// @Produce		json
// @Success		201		{object}	LineItemCreateResponse
// @Failure		400		{object}	LineItemCreateResponse
// @Failure		404		{object}	LineItemCreateResponse
// @Failure		500		{object}	LineItemCreateResponse
// @Param			lineItems	body		[]v1.LineItemEditable	true	"LineItems"
// @Router			/v1/line-items [post]
func CreateLineItems(c *gin.Context) {
	var lineItems []LineItemEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &lineItems)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LineItemCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := LineItemCreateResponse{}

	for _, editable := range lineItems {
		lineItem := editable.model()
		err = models.DB.Create(&lineItem).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newLineItem(c, lineItem)
		r.Data = append(r.Data, LineItemResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get line items
// @Description	Returns a list of line items
// @Tags			LineItems
// @Produce		json
// @Success		200	{object}	LineItemListResponse
// @Failure		400	{object}	LineItemListResponse
// @Failure		500	{object}	LineItemListResponse
// @Router			/v1/line-items [get]
// @Param			name			query	string	false	"Filter by name"
// @Param			note			query	string	false	"Filter by note"
// @Param			activity	query	string	false	"Filter by activity ID"
// @Param			search			query	string	false	"Search for this text in name and note"
// @Param			offset			query	uint	false	"The offset of the first line item returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of line items to return. Defaults to 50."
func GetLineItems(c *gin.Context) {
	var filter LineItemQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemListResponse{
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

	// Default to 50 line items and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var lineItems []models.LineItem
	err = q.Find(&lineItems).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LineItemListResponse{
			Error: &e,
		})
		return
	}

	data := make([]LineItem, 0, len(lineItems))
	for _, lineItem := range lineItems {
		data = append(data, newLineItem(c, lineItem))
	}

	c.JSON(http.StatusOK, LineItemListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get line item
// @Description	Returns a specific line item
// @Tags			LineItems
// @Produce		json
// @Success		200	{object}	LineItemResponse
// @Failure		400	{object}	LineItemResponse
// @Failure		404	{object}	LineItemResponse
// @Failure		500	{object}	LineItemResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/line-items/{id} [get]
func GetLineItem(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemResponse{
			Error: &s,
		})
		return
	}

	var lineItem models.LineItem
	err = models.DB.First(&lineItem, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemResponse{
			Error: &s,
		})
		return
	}

	data := newLineItem(c, lineItem)
	c.JSON(http.StatusOK, LineItemResponse{Data: &data})
}

// @Summary		Update line item
// @Description	Updates an existing line item. Only values to be updated need to be specified.
// @Tags			LineItems
// @Accept			json
// @Produce		json
// @Success		200		{object}	LineItemResponse
// @Failure		400		{object}	LineItemResponse
// @Failure		404		{object}	LineItemResponse
// @Failure		500		{object}	LineItemResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			lineItem	body		v1.LineItemEditable	true	"LineItem"
// @Router			/v1/line-items/{id} [patch]
func UpdateLineItem(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemResponse{
			Error: &s,
		})
		return
	}

	var lineItem models.LineItem
	err = models.DB.First(&lineItem, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, LineItemEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemResponse{
			Error: &s,
		})
		return
	}

	var data LineItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&lineItem).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LineItemResponse{
			Error: &s,
		})
		return
	}

	apiResource := newLineItem(c, lineItem)
	c.JSON(http.StatusOK, LineItemResponse{Data: &apiResource})
}

// @Summary		Delete line item
// @Description	Deletes a line item
// @Tags			LineItems
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/line-items/{id} [delete]
func DeleteLineItem(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var lineItem models.LineItem
	err = models.DB.First(&lineItem, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&lineItem).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
