package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterActivityRoutes registers the routes for activities with
// the RouterGroup that is passed.
func RegisterActivityRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsActivityList)
		r.GET("", GetActivities)
		r.POST("", RequireAdmin(), CreateActivities)
	}

	// Activity with ID
	{
		r.OPTIONS("/:id", OptionsActivityDetail)
		r.GET("/:id", GetActivity)
		r.PATCH("/:id", RequireAdmin(), UpdateActivity)
		r.DELETE("/:id", RequireAdmin(), DeleteActivity)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Activities
// @Success		204
// @Router			/v1/activities [options]
func OptionsActivityList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Activities
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/activities/{id} [options]
func OptionsActivityDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Activity{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create activity
// @Description	Creates a new activity
// @Tags			Activities
// @Produce		json
// @Success		201		{object}	ActivityCreateResponse
// @Failure		400		{object}	ActivityCreateResponse
// @Failure		404		{object}	ActivityCreateResponse
// @Failure		500		{object}	ActivityCreateResponse
// @Param			activities	body		[]v1.ActivityEditable	true	"Activities"
// @Router			/v1/activities [post]
func CreateActivities(c *gin.Context) {
	var activities []ActivityEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &activities)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ActivityCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ActivityCreateResponse{}

	for _, editable := range activities {
		activity := editable.model()
		err = models.DB.Create(&activity).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newActivity(c, activity)
		r.Data = append(r.Data, ActivityResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get activities
// @Description	Returns a list of activities
// @Tags			Activities
// @Produce		json
// @Success		200	{object}	ActivityListResponse
// @Failure		400	{object}	ActivityListResponse
// @Failure		500	{object}	ActivityListResponse
// @Router			/v1/activities [get]
// @Param			name			query	string	false	"Filter by name"
// @Param			note			query	string	false	"Filter by note"
// @Param			goal	query	string	false	"Filter by goal ID"
// @Param			search			query	string	false	"Search for this text in name and note"
// @Param			offset			query	uint	false	"The offset of the first activity returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of activities to return. Defaults to 50."
func GetActivities(c *gin.Context) {
	var filter ActivityQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityListResponse{
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

	// Default to 50 activities and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var activities []models.Activity
	err = q.Find(&activities).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ActivityListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Activity, 0, len(activities))
	for _, activity := range activities {
		data = append(data, newActivity(c, activity))
	}

	c.JSON(http.StatusOK, ActivityListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get activity
// @Description	Returns a specific activity
// @Tags			Activities
// @Produce		json
// @Success		200	{object}	ActivityResponse
// @Failure		400	{object}	ActivityResponse
// @Failure		404	{object}	ActivityResponse
// @Failure		500	{object}	ActivityResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/activities/{id} [get]
func GetActivity(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityResponse{
			Error: &s,
		})
		return
	}

	var activity models.Activity
	err = models.DB.First(&activity, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityResponse{
			Error: &s,
		})
		return
	}

	data := newActivity(c, activity)
	c.JSON(http.StatusOK, ActivityResponse{Data: &data})
}

// @Summary		Update activity
// @Description	Updates an existing activity. Only values to be updated need to be specified.
// @Tags			Activities
// @Accept			json
// @Produce		json
// @Success		200		{object}	ActivityResponse
// @Failure		400		{object}	ActivityResponse
// @Failure		404		{object}	ActivityResponse
// @Failure		500		{object}	ActivityResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			activity	body		v1.ActivityEditable	true	"Activity"
// @Router			/v1/activities/{id} [patch]
func UpdateActivity(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityResponse{
			Error: &s,
		})
		return
	}

	var activity models.Activity
	err = models.DB.First(&activity, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ActivityEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityResponse{
			Error: &s,
		})
		return
	}

	var data ActivityEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&activity).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ActivityResponse{
			Error: &s,
		})
		return
	}

	apiResource := newActivity(c, activity)
	c.JSON(http.StatusOK, ActivityResponse{Data: &apiResource})
}

// @Summary		Delete activity
// @Description	Deletes a activity
// @Tags			Activities
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/activities/{id} [delete]
func DeleteActivity(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var activity models.Activity
	err = models.DB.First(&activity, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&activity).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
