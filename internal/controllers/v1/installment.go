package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterInstallmentRoutes registers the routes for installments with
// the RouterGroup that is passed. Installments are created together with
// their contract, so there is no create route.
func RegisterInstallmentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsInstallmentList)
		r.GET("", GetInstallments)
	}

	// Installment with ID
	{
		r.OPTIONS("/:id", OptionsInstallmentDetail)
		r.GET("/:id", GetInstallment)
		r.PATCH("/:id", UpdateInstallment)
		r.DELETE("/:id", DeleteInstallment)
		r.POST("/:id/register-payment", RegisterInstallmentPayment)
		r.POST("/:id/cancel-payment", CancelInstallmentPayment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Router			/v1/installments [options]
func OptionsInstallmentList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Installments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/installments/{id} [options]
func OptionsInstallmentDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Installment{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get installments
// @Description	Returns a list of installments
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	InstallmentListResponse
// @Failure		400	{object}	InstallmentListResponse
// @Failure		500	{object}	InstallmentListResponse
// @Router			/v1/installments [get]
// @Param			contract	query	string	false	"Filter by contract ID"
// @Param			paid		query	bool	false	"Filter by paid flag"
// @Param			offset		query	uint	false	"The offset of the first installment returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of installments to return. Defaults to 50."
func GetInstallments(c *gin.Context) {
	var filter InstallmentQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("due_date ASC, number ASC").
		Where(&model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 installments and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var installments []models.Installment
	err = q.Find(&installments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InstallmentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Installment, 0, len(installments))
	for _, installment := range installments {
		data = append(data, newInstallment(c, installment))
	}

	c.JSON(http.StatusOK, InstallmentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get installment
// @Description	Returns a specific installment
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	InstallmentResponse
// @Failure		400	{object}	InstallmentResponse
// @Failure		404	{object}	InstallmentResponse
// @Failure		500	{object}	InstallmentResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/installments/{id} [get]
func GetInstallment(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	var installment models.Installment
	err = models.DB.First(&installment, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	data := newInstallment(c, installment)
	c.JSON(http.StatusOK, InstallmentResponse{Data: &data})
}

// @Summary		Update installment
// @Description	Updates the schedule of an existing installment. Only values to be updated need to be specified. The payment state is changed with the register-payment and cancel-payment endpoints.
// @Tags			Installments
// @Accept			json
// @Produce		json
// @Success		200			{object}	InstallmentResponse
// @Failure		400			{object}	InstallmentResponse
// @Failure		404			{object}	InstallmentResponse
// @Failure		500			{object}	InstallmentResponse
// @Param			id			path		string					true	"ID formatted as string"
// @Param			installment	body		v1.InstallmentEditable	true	"Installment"
// @Router			/v1/installments/{id} [patch]
func UpdateInstallment(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	var installment models.Installment
	err = models.DB.First(&installment, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, InstallmentEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	var data InstallmentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&installment).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	apiResource := newInstallment(c, installment)
	c.JSON(http.StatusOK, InstallmentResponse{Data: &apiResource})
}

// @Summary		Delete installment
// @Description	Deletes an installment and recalculates the contract's paid total
// @Tags			Installments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/installments/{id} [delete]
func DeleteInstallment(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var installment models.Installment
	err = models.DB.First(&installment, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&installment).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Register payment
// @Description	Marks the installment as paid, records an outflow movement and updates the contract's paid total
// @Tags			Installments
// @Accept			json
// @Produce		json
// @Success		200		{object}	InstallmentResponse
// @Failure		400		{object}	InstallmentResponse
// @Failure		404		{object}	InstallmentResponse
// @Failure		409		{object}	InstallmentResponse
// @Failure		500		{object}	InstallmentResponse
// @Param			id		path		string					true	"ID formatted as string"
// @Param			payment	body		v1.PaymentRegistration	false	"Payment"
// @Router			/v1/installments/{id}/register-payment [post]
func RegisterInstallmentPayment(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	var installment models.Installment
	err = models.DB.First(&installment, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	// The body is optional, registering without one pays today
	var payment PaymentRegistration
	if c.Request.ContentLength > 0 {
		err = httputil.BindData(c, &payment)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), InstallmentResponse{
				Error: &s,
			})
			return
		}
	}

	err = models.RegisterPayment(models.DB, &installment, payment.PaidDate, payment.ProofReference, actorID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	data := newInstallment(c, installment)
	c.JSON(http.StatusOK, InstallmentResponse{Data: &data})
}

// @Summary		Cancel payment
// @Description	Reverts a registered payment, deletes its movement and updates the contract's paid total
// @Tags			Installments
// @Produce		json
// @Success		200	{object}	InstallmentResponse
// @Failure		400	{object}	InstallmentResponse
// @Failure		404	{object}	InstallmentResponse
// @Failure		409	{object}	InstallmentResponse
// @Failure		500	{object}	InstallmentResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/installments/{id}/cancel-payment [post]
func CancelInstallmentPayment(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	var installment models.Installment
	err = models.DB.First(&installment, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	err = models.CancelPayment(models.DB, &installment)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InstallmentResponse{
			Error: &s,
		})
		return
	}

	data := newInstallment(c, installment)
	c.JSON(http.StatusOK, InstallmentResponse{Data: &data})
}
