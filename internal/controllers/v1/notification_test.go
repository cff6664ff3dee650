package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestNotificationsCreate() {
	notification := suite.createTestNotification(v1.NotificationEditable{
		Title:   "Contract overdue",
		Message: "Contract 2025/0042 has an overdue installment",
		Type:    models.NotificationTypeWarning,
	})

	require.NotNil(suite.T(), notification.Data)
	assert.Equal(suite.T(), models.NotificationTypeWarning, notification.Data.Type)
	assert.False(suite.T(), notification.Data.Read)
}

func (suite *TestSuiteStandard) TestNotificationsCreateUnknownUser() {
	suite.createTestNotification(v1.NotificationEditable{UserID: uuid.New()}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestNotificationsCreateInvalidType() {
	suite.createTestNotification(v1.NotificationEditable{Type: "carrier-pigeon"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestNotificationsMarkRead() {
	notification := suite.createTestNotification(v1.NotificationEditable{})

	r := suite.request(http.MethodPost, notification.Data.Links.MarkRead, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NotificationResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Read)
	assert.NotNil(suite.T(), response.Data.ReadAt)

	// Marking a read notification again is a conflict
	r = suite.request(http.MethodPost, notification.Data.Links.MarkRead, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

// TestNotificationsMarkAllRead verifies that only the authenticated
// user's notifications are marked.
func (suite *TestSuiteStandard) TestNotificationsMarkAllRead() {
	other := suite.createTestUser(v1.UserEditable{})

	suite.createTestNotification(v1.NotificationEditable{})
	suite.createTestNotification(v1.NotificationEditable{})
	suite.createTestNotification(v1.NotificationEditable{UserID: other.Data.ID})

	r := suite.request(http.MethodPost, "http://example.com/v1/notifications/mark-all-read", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.NotificationMarkAllReadResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), int64(2), response.Data)

	// Running it again has nothing left to mark
	r = suite.request(http.MethodPost, "http://example.com/v1/notifications/mark-all-read", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), int64(0), response.Data)
}

func (suite *TestSuiteStandard) TestNotificationsGetFiltered() {
	other := suite.createTestUser(v1.UserEditable{})

	read := suite.createTestNotification(v1.NotificationEditable{})
	suite.createTestNotification(v1.NotificationEditable{UserID: other.Data.ID})

	r := suite.request(http.MethodPost, read.Data.Links.MarkRead, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"By user", "user=" + suite.user.ID.String(), 1},
		{"Read", "read=true", 1},
		{"Unread", "read=false", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodGet, "http://example.com/v1/notifications?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.NotificationListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestNotificationsDelete() {
	notification := suite.createTestNotification(v1.NotificationEditable{})

	r := suite.request(http.MethodDelete, notification.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, notification.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
