package v1

import (
	"net/http"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterNotificationRoutes registers the routes for notifications with
// the RouterGroup that is passed.
func RegisterNotificationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsNotificationList)
		r.GET("", GetNotifications)
		r.POST("", CreateNotifications)
		r.POST("/mark-all-read", MarkAllNotificationsRead)
	}

	// Notification with ID
	{
		r.OPTIONS("/:id", OptionsNotificationDetail)
		r.GET("/:id", GetNotification)
		r.DELETE("/:id", DeleteNotification)
		r.POST("/:id/mark-read", MarkNotificationRead)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Router			/v1/notifications [options]
func OptionsNotificationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Notifications
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/notifications/{id} [options]
func OptionsNotificationDetail(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Notification{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create notification
// @Description	Creates a new unread notification
// @Tags			Notifications
// @Produce		json
// @Success		201				{object}	NotificationCreateResponse
// @Failure		400				{object}	NotificationCreateResponse
// @Failure		404				{object}	NotificationCreateResponse
// @Failure		500				{object}	NotificationCreateResponse
// @Param			notifications	body		[]v1.NotificationEditable	true	"Notifications"
// @Router			/v1/notifications [post]
func CreateNotifications(c *gin.Context) {
	var notifications []NotificationEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &notifications)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NotificationCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := NotificationCreateResponse{}

	for _, editable := range notifications {
		notification := editable.model()
		err = models.DB.Create(&notification).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newNotification(c, notification)
		r.Data = append(r.Data, NotificationResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get notifications
// @Description	Returns a list of notifications, newest first
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationListResponse
// @Failure		400	{object}	NotificationListResponse
// @Failure		500	{object}	NotificationListResponse
// @Router			/v1/notifications [get]
// @Param			user	query	string	false	"Filter by user ID"
// @Param			type	query	string	false	"Filter by type"
// @Param			read	query	bool	false	"Filter by read flag"
// @Param			offset	query	uint	false	"The offset of the first notification returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of notifications to return. Defaults to 50."
func GetNotifications(c *gin.Context) {
	var filter NotificationQueryFilter

	// The filters contain only strings, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("created_at DESC").
		Where(&model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 notifications and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var notifications []models.Notification
	err = q.Find(&notifications).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), NotificationListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Notification, 0, len(notifications))
	for _, notification := range notifications {
		data = append(data, newNotification(c, notification))
	}

	c.JSON(http.StatusOK, NotificationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get notification
// @Description	Returns a specific notification
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationResponse
// @Failure		400	{object}	NotificationResponse
// @Failure		404	{object}	NotificationResponse
// @Failure		500	{object}	NotificationResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/notifications/{id} [get]
func GetNotification(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	var notification models.Notification
	err = models.DB.First(&notification, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	data := newNotification(c, notification)
	c.JSON(http.StatusOK, NotificationResponse{Data: &data})
}

// @Summary		Delete notification
// @Description	Deletes a notification
// @Tags			Notifications
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/notifications/{id} [delete]
func DeleteNotification(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var notification models.Notification
	err = models.DB.First(&notification, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&notification).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Mark notification as read
// @Description	Sets the read flag on the notification. Marking a read notification again is a conflict.
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationResponse
// @Failure		400	{object}	NotificationResponse
// @Failure		404	{object}	NotificationResponse
// @Failure		409	{object}	NotificationResponse
// @Failure		500	{object}	NotificationResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/notifications/{id}/mark-read [post]
func MarkNotificationRead(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	var notification models.Notification
	err = models.DB.First(&notification, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	err = models.MarkRead(models.DB, &notification)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationResponse{
			Error: &s,
		})
		return
	}

	data := newNotification(c, notification)
	c.JSON(http.StatusOK, NotificationResponse{Data: &data})
}

// @Summary		Mark all notifications as read
// @Description	Sets the read flag on all unread notifications of the requesting user and returns how many were updated
// @Tags			Notifications
// @Produce		json
// @Success		200	{object}	NotificationMarkAllReadResponse
// @Failure		500	{object}	NotificationMarkAllReadResponse
// @Router			/v1/notifications/mark-all-read [post]
func MarkAllNotificationsRead(c *gin.Context) {
	count, err := models.MarkAllRead(models.DB, actorID(c))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), NotificationMarkAllReadResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, NotificationMarkAllReadResponse{Data: count})
}
