package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType classifies a notification for display purposes.
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
	NotificationTypeSuccess NotificationType = "success"
)

func (t NotificationType) Valid() bool {
	return t == NotificationTypeInfo || t == NotificationTypeWarning ||
		t == NotificationTypeError || t == NotificationTypeSuccess
}

// Notification is an in-app message for a user. Delivery semantics are a
// boolean read flag, nothing more.
type Notification struct {
	DefaultModel
	UserID  uuid.UUID
	User    User `json:"-"`
	Title   string
	Message string
	Type    NotificationType
	Read    bool
	ReadAt  *time.Time
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	_ = n.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Notification)
	return tx.First(&User{}, toSave.UserID).Error
}

func (n *Notification) BeforeSave(_ *gorm.DB) error {
	n.Title = strings.TrimSpace(n.Title)
	n.Message = strings.TrimSpace(n.Message)

	if n.Type == "" {
		n.Type = NotificationTypeInfo
	}

	if !n.Type.Valid() {
		return ErrNotificationTypeInvalid
	}

	return nil
}

// MarkRead sets the read flag. Marking a read notification again is a
// conflict.
func MarkRead(db *gorm.DB, notification *Notification) error {
	if notification.Read {
		return ErrNotificationAlreadyRead
	}

	now := time.Now().In(time.UTC)
	notification.Read = true
	notification.ReadAt = &now

	return db.Model(notification).
		Select("Read", "ReadAt").
		Updates(*notification).
		Error
}

// MarkAllRead sets the read flag on all unread notifications of the user
// and returns how many were updated.
func MarkAllRead(db *gorm.DB, userID uuid.UUID) (int64, error) {
	now := time.Now().In(time.UTC)

	result := db.Model(&Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": &now})

	return result.RowsAffected, result.Error
}
