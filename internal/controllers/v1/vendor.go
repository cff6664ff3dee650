package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterVendorRoutes registers the routes for vendors with
// the RouterGroup that is passed.
func RegisterVendorRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsVendorList)
		r.GET("", GetVendors)
		r.POST("", RequireAdmin(), CreateVendors)
	}

	// Vendor with ID
	{
		r.OPTIONS("/:id", OptionsVendorDetail)
		r.GET("/:id", GetVendor)
		r.PATCH("/:id", RequireAdmin(), UpdateVendor)
		r.DELETE("/:id", RequireAdmin(), DeleteVendor)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Vendors
// @Success		204
// @Router			/v1/vendors [options]
func OptionsVendorList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Vendors
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/vendors/{id} [options]
func OptionsVendorDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Vendor{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create vendor
// @Description	Creates a new vendor
// @Tags			Vendors
// @Produce		json
// @Success		201		{object}	VendorCreateResponse
// @Failure		400		{object}	VendorCreateResponse
// @Failure		404		{object}	VendorCreateResponse
// @Failure		500		{object}	VendorCreateResponse
// @Param			vendors	body		[]v1.VendorEditable	true	"Vendors"
// @Router			/v1/vendors [post]
func CreateVendors(c *gin.Context) {
	var vendors []VendorEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &vendors)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := VendorCreateResponse{}

	for _, editable := range vendors {
		vendor := editable.model()
		err = models.DB.Create(&vendor).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newVendor(c, vendor)
		r.Data = append(r.Data, VendorResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get vendors
// @Description	Returns a list of vendors
// @Tags			Vendors
// @Produce		json
// @Success		200	{object}	VendorListResponse
// @Failure		400	{object}	VendorListResponse
// @Failure		500	{object}	VendorListResponse
// @Router			/v1/vendors [get]
// @Param			name			query	string	false	"Filter by name"
// @Param			note			query	string	false	"Filter by note"
// @Param			taxId	query	string	false	"Filter by tax ID"
// @Param			search			query	string	false	"Search for this text in name and note"
// @Param			offset			query	uint	false	"The offset of the first vendor returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of vendors to return. Defaults to 50."
func GetVendors(c *gin.Context) {
	var filter VendorQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorListResponse{
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

	// Default to 50 vendors and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var vendors []models.Vendor
	err = q.Find(&vendors).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VendorListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Vendor, 0, len(vendors))
	for _, vendor := range vendors {
		data = append(data, newVendor(c, vendor))
	}

	c.JSON(http.StatusOK, VendorListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get vendor
// @Description	Returns a specific vendor
// @Tags			Vendors
// @Produce		json
// @Success		200	{object}	VendorResponse
// @Failure		400	{object}	VendorResponse
// @Failure		404	{object}	VendorResponse
// @Failure		500	{object}	VendorResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/vendors/{id} [get]
func GetVendor(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorResponse{
			Error: &s,
		})
		return
	}

	var vendor models.Vendor
	err = models.DB.First(&vendor, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorResponse{
			Error: &s,
		})
		return
	}

	var computed VendorComputed
	err = models.DB.
		Model(&models.Contract{}).
		Where("vendor_id = ?", vendor.ID).
		Count(&computed.Contracts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorResponse{
			Error: &s,
		})
		return
	}

	computed.TotalValue, err = sumColumn(
		models.DB.Model(&models.Contract{}).Where("vendor_id = ?", vendor.ID),
		"total_value",
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorResponse{
			Error: &s,
		})
		return
	}

	computed.TotalPaid, err = sumColumn(
		models.DB.Model(&models.Contract{}).Where("vendor_id = ?", vendor.ID),
		"total_paid",
	)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorResponse{
			Error: &s,
		})
		return
	}

	data := newVendor(c, vendor)
	data.Computed = &computed

	c.JSON(http.StatusOK, VendorResponse{Data: &data})
}

// @Summary		Update vendor
// @Description	Updates an existing vendor. Only values to be updated need to be specified.
// @Tags			Vendors
// @Accept			json
// @Produce		json
// @Success		200		{object}	VendorResponse
// @Failure		400		{object}	VendorResponse
// @Failure		404		{object}	VendorResponse
// @Failure		500		{object}	VendorResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			vendor	body		v1.VendorEditable	true	"Vendor"
// @Router			/v1/vendors/{id} [patch]
func UpdateVendor(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorResponse{
			Error: &s,
		})
		return
	}

	var vendor models.Vendor
	err = models.DB.First(&vendor, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, VendorEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorResponse{
			Error: &s,
		})
		return
	}

	var data VendorEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&vendor).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), VendorResponse{
			Error: &s,
		})
		return
	}

	apiResource := newVendor(c, vendor)
	c.JSON(http.StatusOK, VendorResponse{Data: &apiResource})
}

// @Summary		Delete vendor
// @Description	Deletes a vendor
// @Tags			Vendors
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/vendors/{id} [delete]
func DeleteVendor(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var vendor models.Vendor
	err = models.DB.First(&vendor, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&vendor).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
