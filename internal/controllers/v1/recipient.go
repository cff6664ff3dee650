package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterRecipientRoutes registers the routes for recipients with
// the RouterGroup that is passed.
func RegisterRecipientRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecipientList)
		r.GET("", GetRecipients)
		r.POST("", RequireAdmin(), CreateRecipients)
	}

	// Recipient with ID
	{
		r.OPTIONS("/:id", OptionsRecipientDetail)
		r.GET("/:id", GetRecipient)
		r.PATCH("/:id", RequireAdmin(), UpdateRecipient)
		r.DELETE("/:id", RequireAdmin(), DeleteRecipient)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recipients
// @Success		204
// @Router			/v1/recipients [options]
func OptionsRecipientList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recipients
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recipients/{id} [options]
func OptionsRecipientDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Recipient{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create grant recipient
// @Description	Creates a new grant recipient
// @Tags			Recipients
// @Produce		json
// @Success		201		{object}	RecipientCreateResponse
// @Failure		400		{object}	RecipientCreateResponse
// @Failure		404		{object}	RecipientCreateResponse
// @Failure		500		{object}	RecipientCreateResponse
// @Param			recipients	body		[]v1.RecipientEditable	true	"Recipients"
// @Router			/v1/recipients [post]
func CreateRecipients(c *gin.Context) {
	var recipients []RecipientEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &recipients)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecipientCreateResponse{}

	for _, editable := range recipients {
		recipient := editable.model()
		err = models.DB.Create(&recipient).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecipient(c, recipient)
		r.Data = append(r.Data, RecipientResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get grant grant recipients
// @Description	Returns a list of grant grant recipients
// @Tags			Recipients
// @Produce		json
// @Success		200	{object}	RecipientListResponse
// @Failure		400	{object}	RecipientListResponse
// @Failure		500	{object}	RecipientListResponse
// @Router			/v1/recipients [get]
// @Param			name			query	string	false	"Filter by name"
// @Param			note			query	string	false	"Filter by note"
// @Param			taxId	query	string	false	"Filter by tax ID"
// @Param			search			query	string	false	"Search for this text in name and note"
// @Param			offset			query	uint	false	"The offset of the first grant recipient returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of grant grant recipients to return. Defaults to 50."
func GetRecipients(c *gin.Context) {
	var filter RecipientQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientListResponse{
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

	// Default to 50 grant grant recipients and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var recipients []models.Recipient
	err = q.Find(&recipients).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Recipient, 0, len(recipients))
	for _, recipient := range recipients {
		data = append(data, newRecipient(c, recipient))
	}

	c.JSON(http.StatusOK, RecipientListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get grant recipient
// @Description	Returns a specific grant recipient
// @Tags			Recipients
// @Produce		json
// @Success		200	{object}	RecipientResponse
// @Failure		400	{object}	RecipientResponse
// @Failure		404	{object}	RecipientResponse
// @Failure		500	{object}	RecipientResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recipients/{id} [get]
func GetRecipient(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientResponse{
			Error: &s,
		})
		return
	}

	var recipient models.Recipient
	err = models.DB.First(&recipient, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientResponse{
			Error: &s,
		})
		return
	}

	var computed RecipientComputed
	err = models.DB.
		Model(&models.Contract{}).
		Where("recipient_id = ?", recipient.ID).
		Count(&computed.Contracts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientResponse{
			Error: &s,
		})
		return
	}

	computed.TotalValue, err = sumColumn(
		models.DB.Model(&models.Contract{}).Where("recipient_id = ?", recipient.ID),
		"total_value",
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientResponse{
			Error: &s,
		})
		return
	}

	computed.TotalPaid, err = sumColumn(
		models.DB.Model(&models.Contract{}).Where("recipient_id = ?", recipient.ID),
		"total_paid",
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientResponse{
			Error: &s,
		})
		return
	}

	data := newRecipient(c, recipient)
	data.Computed = &computed

	c.JSON(http.StatusOK, RecipientResponse{Data: &data})
}

// @Summary		Update grant recipient
// @Description	Updates an existing grant recipient. Only values to be updated need to be specified.
// @Tags			Recipients
// @Accept			json
// @Produce		json
// @Success		200		{object}	RecipientResponse
// @Failure		400		{object}	RecipientResponse
// @Failure		404		{object}	RecipientResponse
// @Failure		500		{object}	RecipientResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			recipient	body		v1.RecipientEditable	true	"Recipient"
// @Router			/v1/recipients/{id} [patch]
func UpdateRecipient(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientResponse{
			Error: &s,
		})
		return
	}

	var recipient models.Recipient
	err = models.DB.First(&recipient, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecipientEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientResponse{
			Error: &s,
		})
		return
	}

	var data RecipientEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&recipient).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecipientResponse{
			Error: &s,
		})
		return
	}

	apiResource := newRecipient(c, recipient)
	c.JSON(http.StatusOK, RecipientResponse{Data: &apiResource})
}

// @Summary		Delete grant recipient
// @Description	Deletes a grant recipient
// @Tags			Recipients
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recipients/{id} [delete]
func DeleteRecipient(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var recipient models.Recipient
	err = models.DB.First(&recipient, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&recipient).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
