package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterSystemConfigRoutes registers the routes for system configuration
// entries with the RouterGroup that is passed.
func RegisterSystemConfigRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSystemConfigList)
		r.GET("", GetSystemConfigs)
		r.POST("", CreateSystemConfigs)
	}

	// SystemConfig with ID
	{
		r.OPTIONS("/:id", OptionsSystemConfigDetail)
		r.GET("/:id", GetSystemConfig)
		r.PATCH("/:id", UpdateSystemConfig)
		r.DELETE("/:id", DeleteSystemConfig)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SystemConfig
// @Success		204
// @Router			/v1/system-config [options]
func OptionsSystemConfigList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SystemConfig
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/system-config/{id} [options]
func OptionsSystemConfigDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.SystemConfig{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create configuration entry
// @Description	Creates a new configuration entry
// @Tags			SystemConfig
// @Produce		json
// @Success		201		{object}	SystemConfigCreateResponse
// @Failure		400		{object}	SystemConfigCreateResponse
// @Failure		500		{object}	SystemConfigCreateResponse
// @Param			entries	body		[]v1.SystemConfigEditable	true	"Configuration entries"
// @Router			/v1/system-config [post]
func CreateSystemConfigs(c *gin.Context) {
	var entries []SystemConfigEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &entries)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SystemConfigCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SystemConfigCreateResponse{}

	for _, editable := range entries {
		entry := editable.model()
		err = models.DB.Create(&entry).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSystemConfig(c, entry)
		r.Data = append(r.Data, SystemConfigResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get configuration entries
// @Description	Returns a list of configuration entries
// @Tags			SystemConfig
// @Produce		json
// @Success		200	{object}	SystemConfigListResponse
// @Failure		500	{object}	SystemConfigListResponse
// @Router			/v1/system-config [get]
// @Param			key		query	string	false	"Filter by key"
// @Param			offset	query	uint	false	"The offset of the first entry returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of entries to return. Defaults to 50."
func GetSystemConfigs(c *gin.Context) {
	var filter SystemConfigQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SystemConfigListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("key ASC").
		Where(&model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 entries and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var entries []models.SystemConfig
	err = q.Find(&entries).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SystemConfigListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SystemConfigListResponse{
			Error: &e,
		})
		return
	}

	data := make([]SystemConfig, 0, len(entries))
	for _, entry := range entries {
		data = append(data, newSystemConfig(c, entry))
	}

	c.JSON(http.StatusOK, SystemConfigListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get configuration entry
// @Description	Returns a specific configuration entry
// @Tags			SystemConfig
// @Produce		json
// @Success		200	{object}	SystemConfigResponse
// @Failure		400	{object}	SystemConfigResponse
// @Failure		404	{object}	SystemConfigResponse
// @Failure		500	{object}	SystemConfigResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/system-config/{id} [get]
func GetSystemConfig(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SystemConfigResponse{
			Error: &s,
		})
		return
	}

	var entry models.SystemConfig
	err = models.DB.First(&entry, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SystemConfigResponse{
			Error: &s,
		})
		return
	}

	data := newSystemConfig(c, entry)
	c.JSON(http.StatusOK, SystemConfigResponse{Data: &data})
}

// @Summary		Update configuration entry
// @Description	Updates an existing configuration entry. Only values to be updated need to be specified.
// @Tags			SystemConfig
// @Accept			json
// @Produce		json
// @Success		200		{object}	SystemConfigResponse
// @Failure		400		{object}	SystemConfigResponse
// @Failure		404		{object}	SystemConfigResponse
// @Failure		500		{object}	SystemConfigResponse
// @Param			id		path		string					true	"ID formatted as string"
// @Param			entry	body		v1.SystemConfigEditable	true	"Configuration entry"
// @Router			/v1/system-config/{id} [patch]
func UpdateSystemConfig(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SystemConfigResponse{
			Error: &s,
		})
		return
	}

	var entry models.SystemConfig
	err = models.DB.First(&entry, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SystemConfigResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SystemConfigEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SystemConfigResponse{
			Error: &s,
		})
		return
	}

	var data SystemConfigEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SystemConfigResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&entry).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SystemConfigResponse{
			Error: &s,
		})
		return
	}

	apiResource := newSystemConfig(c, entry)
	c.JSON(http.StatusOK, SystemConfigResponse{Data: &apiResource})
}

// @Summary		Delete configuration entry
// @Description	Deletes a configuration entry
// @Tags			SystemConfig
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/system-config/{id} [delete]
func DeleteSystemConfig(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var entry models.SystemConfig
	err = models.DB.First(&entry, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&entry).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
