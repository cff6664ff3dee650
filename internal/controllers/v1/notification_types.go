package v1

import (
	"fmt"
	"time"

	"github.com/culturabase/backend/internal/httputil"
	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationEditable represents all user configurable parameters
type NotificationEditable struct {
	UserID  uuid.UUID               `json:"userId" example:"d1292f60-7ab4-4a0d-b89e-f4c6b6d73a1d"`            // ID of the user the notification is for
	Title   string                  `json:"title" example:"Contract overdue" default:""`                      // Short title of the notification
	Message string                  `json:"message" example:"Contract 2024/0131 has an overdue installment" default:""` // Body of the notification
	Type    models.NotificationType `json:"type" example:"warning" default:"info"`                            // Type of the notification
}

// model transforms the API representation into the model representation
func (e NotificationEditable) model() models.Notification {
	return models.Notification{
		UserID:  e.UserID,
		Title:   e.Title,
		Message: e.Message,
		Type:    e.Type,
	}
}

type NotificationLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/notifications/9a2f08c4-3c56-4cf3-8b17-f0fd0e0a4f9c"`          // The notification itself
	MarkRead string `json:"markRead" example:"https://example.com/api/v1/notifications/9a2f08c4-3c56-4cf3-8b17-f0fd0e0a4f9c/mark-read"` // Endpoint to mark the notification as read
}

type Notification struct {
	models.DefaultModel
	NotificationEditable
	Read   bool              `json:"read" example:"false"` // Whether the notification has been read
	ReadAt *time.Time        `json:"readAt"`               // When the notification was marked as read
	Links  NotificationLinks `json:"links"`                // Links to related resources
}

func newNotification(c *gin.Context, model models.Notification) Notification {
	url := c.GetString(string(models.DBContextURL))

	return Notification{
		DefaultModel: model.DefaultModel,
		NotificationEditable: NotificationEditable{
			UserID:  model.UserID,
			Title:   model.Title,
			Message: model.Message,
			Type:    model.Type,
		},
		Read:   model.Read,
		ReadAt: model.ReadAt,
		Links: NotificationLinks{
			Self:     fmt.Sprintf("%s/v1/notifications/%s", url, model.ID),
			MarkRead: fmt.Sprintf("%s/v1/notifications/%s/mark-read", url, model.ID),
		},
	}
}

type NotificationListResponse struct {
	Data       []Notification `json:"data"`                                                          // List of notifications
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type NotificationCreateResponse struct {
	Data  []NotificationResponse `json:"data"`                                                          // Data for the notification
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *NotificationCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, NotificationResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type NotificationResponse struct {
	Data  *Notification `json:"data"`                                                          // Data for the notification
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// NotificationMarkAllReadResponse reports how many notifications were
// marked as read.
type NotificationMarkAllReadResponse struct {
	Data  int64   `json:"data" example:"3"`                                              // Number of notifications that were marked as read
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type NotificationQueryFilter struct {
	User   string `form:"user"`                       // By the ID of the user
	Type   string `form:"type"`                       // By the type
	Read   bool   `form:"read"`                       // By the read flag
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first notification returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of notifications to return. Defaults to 50.
}

func (f NotificationQueryFilter) model() (models.Notification, error) {
	userID, err := httputil.UUIDFromString(f.User)
	if err != nil {
		return models.Notification{}, err
	}

	return models.Notification{
		UserID: userID,
		Type:   models.NotificationType(f.Type),
		Read:   f.Read,
	}, nil
}
