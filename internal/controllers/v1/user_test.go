package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestUsersCreate() {
	user := suite.createTestUser(v1.UserEditable{
		Name:  "Ana Souza",
		Email: "ana.souza@example.com",
		Role:  models.RoleManager,
	})

	require.NotNil(suite.T(), user.Data)
	assert.Equal(suite.T(), "Ana Souza", user.Data.Name)
	assert.Equal(suite.T(), models.RoleManager, user.Data.Role)

	// The created user can log in right away
	suite.login("ana.souza@example.com", testPassword, http.StatusOK)
}

// TestUsersCreateWithoutPassword verifies that a user cannot be created
// without a password.
func (suite *TestSuiteStandard) TestUsersCreateWithoutPassword() {
	r := suite.request(http.MethodPost, "http://example.com/v1/users", []v1.UserEditable{
		{Name: "No Password", Email: "nopassword@example.com"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "a password must be set", *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestUsersCreateDuplicateEmail() {
	suite.createTestUser(v1.UserEditable{Email: "twice@example.com"})
	suite.createTestUser(v1.UserEditable{Email: "twice@example.com"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUsersCreateInvalidRole() {
	suite.createTestUser(v1.UserEditable{Role: "superuser"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUsersGetFiltered() {
	suite.createTestUser(v1.UserEditable{Name: "Ana Souza", Email: "ana@example.com"})
	suite.createTestUser(v1.UserEditable{Name: "Carlos Lima", Role: models.RoleViewer})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"By name", "name=Ana", 1},
		{"By email", "email=ana@example.com", 1},
		{"By role", "role=viewer", 1},
		{"Search matches email", "search=example.com", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodGet, "http://example.com/v1/users?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.UserListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Len(t, response.Data, tt.count)
		})
	}
}

// TestUsersUpdatePassword verifies that a password set via PATCH is
// hashed and usable for the next login.
func (suite *TestSuiteStandard) TestUsersUpdatePassword() {
	user := suite.createTestUser(v1.UserEditable{Email: "patched@example.com"})

	r := suite.request(http.MethodPatch, user.Data.Links.Self, map[string]any{
		"password": "a brand new passphrase",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.login("patched@example.com", testPassword, http.StatusUnauthorized)
	suite.login("patched@example.com", "a brand new passphrase", http.StatusOK)
}

func (suite *TestSuiteStandard) TestUsersDeactivate() {
	user := suite.createTestUser(v1.UserEditable{Email: "leaving@example.com"})

	r := suite.request(http.MethodPatch, user.Data.Links.Self, map[string]any{
		"active": false,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.login("leaving@example.com", testPassword, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestUsersDelete() {
	user := suite.createTestUser(v1.UserEditable{})

	r := suite.request(http.MethodDelete, user.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, user.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestAdminOnlyRoutes verifies that user management, system
// configuration and reference data mutation require the admin role.
func (suite *TestSuiteStandard) TestAdminOnlyRoutes() {
	manager := suite.createTestUser(v1.UserEditable{Role: models.RoleManager})

	var managerUser models.User
	err := models.DB.First(&managerUser, manager.Data.ID).Error
	require.NoError(suite.T(), err)

	headers := suite.headersFor(managerUser)

	tests := []struct {
		name   string
		method string
		url    string
	}{
		{"List users", http.MethodGet, "http://example.com/v1/users"},
		{"Create users", http.MethodPost, "http://example.com/v1/users"},
		{"List system config", http.MethodGet, "http://example.com/v1/system-config"},
		{"Create sectors", http.MethodPost, "http://example.com/v1/sectors"},
		{"Update vendors", http.MethodPatch, fmt.Sprintf("http://example.com/v1/vendors/%s", uuid.New())},
		{"Delete funding sources", http.MethodDelete, fmt.Sprintf("http://example.com/v1/funding-sources/%s", uuid.New())},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, tt.url, "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusForbidden)
		})
	}

	// Routes outside of the admin group still work for the manager
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/sectors", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}
