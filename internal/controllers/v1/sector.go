package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterSectorRoutes registers the routes for sectors with
// the RouterGroup that is passed.
func RegisterSectorRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSectorList)
		r.GET("", GetSectors)
		r.POST("", RequireAdmin(), CreateSectors)
	}

	// Sector with ID
	{
		r.OPTIONS("/:id", OptionsSectorDetail)
		r.GET("/:id", GetSector)
		r.PATCH("/:id", RequireAdmin(), UpdateSector)
		r.DELETE("/:id", RequireAdmin(), DeleteSector)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sectors
// @Success		204
// @Router			/v1/sectors [options]
func OptionsSectorList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sectors
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/sectors/{id} [options]
func OptionsSectorDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Sector{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create sector
// @Description	Creates a new sector
// @Tags			Sectors
// @Produce		json
// @Success		201		{object}	SectorCreateResponse
// @Failure		400		{object}	SectorCreateResponse
// @Failure		404		{object}	SectorCreateResponse
// @Failure		500		{object}	SectorCreateResponse
// @Param			sectors	body		[]v1.SectorEditable	true	"Sectors"
// @Router			/v1/sectors [post]
func CreateSectors(c *gin.Context) {
	var sectors []SectorEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &sectors)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SectorCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SectorCreateResponse{}

	for _, editable := range sectors {
		sector := editable.model()
		err = models.DB.Create(&sector).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSector(c, sector)
		r.Data = append(r.Data, SectorResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get sectors
// @Description	Returns a list of sectors
// @Tags			Sectors
// @Produce		json
// @Success		200	{object}	SectorListResponse
// @Failure		400	{object}	SectorListResponse
// @Failure		500	{object}	SectorListResponse
// @Router			/v1/sectors [get]
// @Param			name			query	string	false	"Filter by name"
// @Param			note			query	string	false	"Filter by note"
// @Param			responsibleUser	query	string	false	"Filter by the responsible user ID"
// @Param			search			query	string	false	"Search for this text in name and note"
// @Param			offset			query	uint	false	"The offset of the first sector returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of sectors to return. Defaults to 50."
func GetSectors(c *gin.Context) {
	var filter SectorQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SectorListResponse{
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

	// Default to 50 sectors and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var sectors []models.Sector
	err = q.Find(&sectors).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SectorListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SectorListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Sector, 0, len(sectors))
	for _, sector := range sectors {
		data = append(data, newSector(c, sector))
	}

	c.JSON(http.StatusOK, SectorListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get sector
// @Description	Returns a specific sector
// @Tags			Sectors
// @Produce		json
// @Success		200	{object}	SectorResponse
// @Failure		400	{object}	SectorResponse
// @Failure		404	{object}	SectorResponse
// @Failure		500	{object}	SectorResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/sectors/{id} [get]
func GetSector(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SectorResponse{
			Error: &s,
		})
		return
	}

	var sector models.Sector
	err = models.DB.First(&sector, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SectorResponse{
			Error: &s,
		})
		return
	}

	data := newSector(c, sector)
	c.JSON(http.StatusOK, SectorResponse{Data: &data})
}

// @Summary		Update sector
// @Description	Updates an existing sector. Only values to be updated need to be specified.
// @Tags			Sectors
// @Accept			json
// @Produce		json
// @Success		200		{object}	SectorResponse
// @Failure		400		{object}	SectorResponse
// @Failure		404		{object}	SectorResponse
// @Failure		500		{object}	SectorResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			sector	body		v1.SectorEditable	true	"Sector"
// @Router			/v1/sectors/{id} [patch]
func UpdateSector(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SectorResponse{
			Error: &s,
		})
		return
	}

	var sector models.Sector
	err = models.DB.First(&sector, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SectorResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SectorEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SectorResponse{
			Error: &s,
		})
		return
	}

	var data SectorEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SectorResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&sector).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SectorResponse{
			Error: &s,
		})
		return
	}

	apiResource := newSector(c, sector)
	c.JSON(http.StatusOK, SectorResponse{Data: &apiResource})
}

// @Summary		Delete sector
// @Description	Deletes a sector
// @Tags			Sectors
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/sectors/{id} [delete]
func DeleteSector(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var sector models.Sector
	err = models.DB.First(&sector, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&sector).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
