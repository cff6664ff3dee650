package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterMovementRoutes registers the routes for movements with the
// RouterGroup that is passed. The ledger is append-only and written by
// payment and transfer operations, so the routes are read-only.
func RegisterMovementRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMovementList)
		r.GET("", GetMovements)
	}

	// Movement with ID
	{
		r.OPTIONS("/:id", OptionsMovementDetail)
		r.GET("/:id", GetMovement)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Movements
// @Success		204
// @Router			/v1/movements [options]
func OptionsMovementList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Movements
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/movements/{id} [options]
func OptionsMovementDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Movement{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get movements
// @Description	Returns a list of financial movements, newest first
// @Tags			Movements
// @Produce		json
// @Success		200	{object}	MovementListResponse
// @Failure		400	{object}	MovementListResponse
// @Failure		500	{object}	MovementListResponse
// @Router			/v1/movements [get]
// @Param			type			query	string	false	"Filter by type"
// @Param			fundingSource	query	string	false	"Filter by funding source ID"
// @Param			sector			query	string	false	"Filter by sector ID"
// @Param			lineItem		query	string	false	"Filter by line item ID"
// @Param			contract		query	string	false	"Filter by contract ID"
// @Param			installment		query	string	false	"Filter by installment ID"
// @Param			offset			query	uint	false	"The offset of the first movement returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of movements to return. Defaults to 50."
func GetMovements(c *gin.Context) {
	var filter MovementQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MovementListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("date DESC, created_at DESC").
		Where(&model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 movements and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var movements []models.Movement
	err = q.Find(&movements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MovementListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MovementListResponse{
			Error: &e,
		})
		return
	}

	data := make([]MovementEntry, 0, len(movements))
	for _, movement := range movements {
		data = append(data, newMovementEntry(c, movement))
	}

	c.JSON(http.StatusOK, MovementListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get movement
// @Description	Returns a specific movement
// @Tags			Movements
// @Produce		json
// @Success		200	{object}	MovementResponse
// @Failure		400	{object}	MovementResponse
// @Failure		404	{object}	MovementResponse
// @Failure		500	{object}	MovementResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/movements/{id} [get]
func GetMovement(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MovementResponse{
			Error: &s,
		})
		return
	}

	var movement models.Movement
	err = models.DB.First(&movement, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MovementResponse{
			Error: &s,
		})
		return
	}

	data := newMovementEntry(c, movement)
	c.JSON(http.StatusOK, MovementResponse{Data: &data})
}
