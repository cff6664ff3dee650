package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterStatusHistoryRoutes registers the routes for status history
// entries with the RouterGroup that is passed. The history is append-only
// and written by contract operations, so the routes are read-only.
func RegisterStatusHistoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsStatusHistoryList)
		r.GET("", GetStatusHistory)
	}

	// StatusHistory with ID
	{
		r.OPTIONS("/:id", OptionsStatusHistoryDetail)
		r.GET("/:id", GetStatusHistoryEntry)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			StatusHistory
// @Success		204
// @Router			/v1/status-history [options]
func OptionsStatusHistoryList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			StatusHistory
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/status-history/{id} [options]
func OptionsStatusHistoryDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.StatusHistory{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get status history
// @Description	Returns a list of contract status changes, oldest first
// @Tags			StatusHistory
// @Produce		json
// @Success		200	{object}	StatusHistoryListResponse
// @Failure		400	{object}	StatusHistoryListResponse
// @Failure		500	{object}	StatusHistoryListResponse
// @Router			/v1/status-history [get]
// @Param			contract	query	string	false	"Filter by contract ID"
// @Param			offset		query	uint	false	"The offset of the first entry returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of entries to return. Defaults to 50."
func GetStatusHistory(c *gin.Context) {
	var filter StatusHistoryQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatusHistoryListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("created_at ASC").
		Where(&model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 entries and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var entries []models.StatusHistory
	err = q.Find(&entries).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatusHistoryListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatusHistoryListResponse{
			Error: &e,
		})
		return
	}

	data := make([]StatusHistoryEntry, 0, len(entries))
	for _, entry := range entries {
		data = append(data, newStatusHistoryEntry(c, entry))
	}

	c.JSON(http.StatusOK, StatusHistoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get status history entry
// @Description	Returns a specific status history entry
// @Tags			StatusHistory
// @Produce		json
// @Success		200	{object}	StatusHistoryResponse
// @Failure		400	{object}	StatusHistoryResponse
// @Failure		404	{object}	StatusHistoryResponse
// @Failure		500	{object}	StatusHistoryResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/status-history/{id} [get]
func GetStatusHistoryEntry(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatusHistoryResponse{
			Error: &s,
		})
		return
	}

	var entry models.StatusHistory
	err = models.DB.First(&entry, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatusHistoryResponse{
			Error: &s,
		})
		return
	}

	data := newStatusHistoryEntry(c, entry)
	c.JSON(http.StatusOK, StatusHistoryResponse{Data: &data})
}
