package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// RegisterTransferRoutes registers the routes for transfers with
// the RouterGroup that is passed.
func RegisterTransferRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransferList)
		r.GET("", GetTransfers)
		r.POST("", CreateTransfers)
	}

	// Transfer with ID
	{
		r.OPTIONS("/:id", OptionsTransferDetail)
		r.GET("/:id", GetTransfer)
		r.PATCH("/:id", UpdateTransfer)
		r.DELETE("/:id", DeleteTransfer)
		r.POST("/:id/approve", ApproveTransfer)
		r.POST("/:id/reject", RejectTransfer)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transfers
// @Success		204
// @Router			/v1/transfers [options]
func OptionsTransferList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transfers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transfers/{id} [options]
func OptionsTransferDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Transfer{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transfer
// @Description	Creates a new transfer request in pending state
// @Tags			Transfers
// @Produce		json
// @Success		201			{object}	TransferCreateResponse
// @Failure		400			{object}	TransferCreateResponse
// @Failure		404			{object}	TransferCreateResponse
// @Failure		500			{object}	TransferCreateResponse
// @Param			transfers	body		[]v1.TransferEditable	true	"Transfers"
// @Router			/v1/transfers [post]
func CreateTransfers(c *gin.Context) {
	var transfers []TransferEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &transfers)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransferCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransferCreateResponse{}

	for _, editable := range transfers {
		transfer := editable.model()

		if actor := actorID(c); actor != uuid.Nil {
			transfer.RequestedByID = &actor
		}

		err = models.DB.Create(&transfer).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransfer(c, transfer)
		r.Data = append(r.Data, TransferResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get transfers
// @Description	Returns a list of transfers
// @Tags			Transfers
// @Produce		json
// @Success		200	{object}	TransferListResponse
// @Failure		400	{object}	TransferListResponse
// @Failure		500	{object}	TransferListResponse
// @Router			/v1/transfers [get]
// @Param			sourceSector		query	string	false	"Filter by source sector ID"
// @Param			destinationSector	query	string	false	"Filter by destination sector ID"
// @Param			lineItem			query	string	false	"Filter by line item ID"
// @Param			status				query	string	false	"Filter by status"
// @Param			offset				query	uint	false	"The offset of the first transfer returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of transfers to return. Defaults to 50."
func GetTransfers(c *gin.Context) {
	var filter TransferQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("created_at DESC").
		Where(&model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 transfers and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transfers []models.Transfer
	err = q.Find(&transfers).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransferListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transfer, 0, len(transfers))
	for _, transfer := range transfers {
		data = append(data, newTransfer(c, transfer))
	}

	c.JSON(http.StatusOK, TransferListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transfer
// @Description	Returns a specific transfer
// @Tags			Transfers
// @Produce		json
// @Success		200	{object}	TransferResponse
// @Failure		400	{object}	TransferResponse
// @Failure		404	{object}	TransferResponse
// @Failure		500	{object}	TransferResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transfers/{id} [get]
func GetTransfer(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	var transfer models.Transfer
	err = models.DB.First(&transfer, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	data := newTransfer(c, transfer)
	c.JSON(http.StatusOK, TransferResponse{Data: &data})
}

// @Summary		Update transfer
// @Description	Updates an existing transfer. Only pending transfers can be changed.
// @Tags			Transfers
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransferResponse
// @Failure		400			{object}	TransferResponse
// @Failure		404			{object}	TransferResponse
// @Failure		409			{object}	TransferResponse
// @Failure		500			{object}	TransferResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			transfer	body		v1.TransferEditable	true	"Transfer"
// @Router			/v1/transfers/{id} [patch]
func UpdateTransfer(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	var transfer models.Transfer
	err = models.DB.First(&transfer, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	// Approved and rejected transfers are immutable
	if transfer.Status != models.TransferStatusPending {
		s := models.ErrTransferAlreadyProcessed.Error()
		c.JSON(status(models.ErrTransferAlreadyProcessed), TransferResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransferEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	var data TransferEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&transfer).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	apiResource := newTransfer(c, transfer)
	c.JSON(http.StatusOK, TransferResponse{Data: &apiResource})
}

// @Summary		Delete transfer
// @Description	Deletes a transfer. Only pending transfers can be deleted.
// @Tags			Transfers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		409	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transfers/{id} [delete]
func DeleteTransfer(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transfer models.Transfer
	err = models.DB.First(&transfer, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Processed transfers stay as an audit record
	if transfer.Status != models.TransferStatusPending {
		c.JSON(status(models.ErrTransferAlreadyProcessed), httpError{
			Error: models.ErrTransferAlreadyProcessed.Error(),
		})
		return
	}

	err = models.DB.Delete(&transfer).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Approve transfer
// @Description	Approves a pending transfer and moves the amount between the sector allocations. Only the responsible user of the source sector can approve.
// @Tags			Transfers
// @Produce		json
// @Success		200	{object}	TransferResponse
// @Failure		400	{object}	TransferResponse
// @Failure		403	{object}	TransferResponse
// @Failure		404	{object}	TransferResponse
// @Failure		409	{object}	TransferResponse
// @Failure		500	{object}	TransferResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transfers/{id}/approve [post]
func ApproveTransfer(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	var transfer models.Transfer
	err = models.DB.First(&transfer, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	err = models.ApproveTransfer(models.DB, &transfer, actorID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	data := newTransfer(c, transfer)
	c.JSON(http.StatusOK, TransferResponse{Data: &data})
}

// @Summary		Reject transfer
// @Description	Rejects a pending transfer without touching any allocation. Only the responsible user of the source sector can reject.
// @Tags			Transfers
// @Produce		json
// @Success		200	{object}	TransferResponse
// @Failure		400	{object}	TransferResponse
// @Failure		403	{object}	TransferResponse
// @Failure		404	{object}	TransferResponse
// @Failure		409	{object}	TransferResponse
// @Failure		500	{object}	TransferResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transfers/{id}/reject [post]
func RejectTransfer(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	var transfer models.Transfer
	err = models.DB.First(&transfer, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	err = models.RejectTransfer(models.DB, &transfer, actorID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransferResponse{
			Error: &s,
		})
		return
	}

	data := newTransfer(c, transfer)
	c.JSON(http.StatusOK, TransferResponse{Data: &data})
}
