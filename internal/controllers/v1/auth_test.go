package v1_test

import (
	"net/http"
	"strings"
	"testing"

	v1 "github.com/culturabase/backend/internal/controllers/v1"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) login(email, password string, expectedStatus int) v1.LoginResponse {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/login", v1.LoginRequest{
		Email:    email,
		Password: password,
	})
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus)

	var response v1.LoginResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestLogin() {
	response := suite.login(suite.user.Email, testPassword, http.StatusOK)

	require.NotNil(suite.T(), response.Data)
	assert.NotEmpty(suite.T(), response.Data.Tokens.Access)
	assert.NotEmpty(suite.T(), response.Data.Tokens.Refresh)
	assert.Equal(suite.T(), suite.user.ID, response.Data.User.ID)
	assert.Equal(suite.T(), suite.user.Email, response.Data.User.Email)
}

// TestLoginEmailCaseInsensitive verifies that the email address is
// normalized before the lookup.
func (suite *TestSuiteStandard) TestLoginEmailCaseInsensitive() {
	response := suite.login("  "+strings.ToUpper(suite.user.Email)+" ", testPassword, http.StatusOK)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), suite.user.ID, response.Data.User.ID)
}

func (suite *TestSuiteStandard) TestLoginInvalidCredentials() {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"Unknown email", "nobody@example.com", testPassword},
		{"Wrong password", "", "not the password"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			email := tt.email
			if email == "" {
				email = suite.user.Email
			}

			r := test.Request(t, http.MethodPost, "http://example.com/v1/auth/login", v1.LoginRequest{
				Email:    email,
				Password: tt.password,
			})
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)

			var response v1.LoginResponse
			test.DecodeResponse(t, &r, &response)

			// Unknown email and wrong password are indistinguishable
			assert.Equal(t, "the credentials are invalid", *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestLoginInactiveUser() {
	err := models.DB.Model(&suite.user).Update("active", false).Error
	require.NoError(suite.T(), err)

	response := suite.login(suite.user.Email, testPassword, http.StatusUnauthorized)
	assert.Equal(suite.T(), "this user account is deactivated", *response.Error)
}

func (suite *TestSuiteStandard) TestLoginInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/login", `{ "email": `)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRefresh() {
	login := suite.login(suite.user.Email, testPassword, http.StatusOK)
	require.NotNil(suite.T(), login.Data)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/refresh", v1.RefreshRequest{
		Refresh: login.Data.Tokens.Refresh,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TokenPairResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.NotEmpty(suite.T(), response.Data.Access)
	assert.NotEmpty(suite.T(), response.Data.Refresh)
}

// TestRefreshRejectsAccessToken verifies that an access token cannot be
// used in place of a refresh token.
func (suite *TestSuiteStandard) TestRefreshRejectsAccessToken() {
	login := suite.login(suite.user.Email, testPassword, http.StatusOK)
	require.NotNil(suite.T(), login.Data)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/refresh", v1.RefreshRequest{
		Refresh: login.Data.Tokens.Access,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

// TestRefreshInactiveUser verifies that a refresh token stops working
// when the user is deactivated.
func (suite *TestSuiteStandard) TestRefreshInactiveUser() {
	login := suite.login(suite.user.Email, testPassword, http.StatusOK)
	require.NotNil(suite.T(), login.Data)

	err := models.DB.Model(&suite.user).Update("active", false).Error
	require.NoError(suite.T(), err)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/refresh", v1.RefreshRequest{
		Refresh: login.Data.Tokens.Refresh,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestMe() {
	r := suite.request(http.MethodGet, "http://example.com/v1/auth/me", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), suite.user.ID, response.Data.ID)
	assert.Equal(suite.T(), models.RoleAdmin, response.Data.Role)
}

func (suite *TestSuiteStandard) TestChangePassword() {
	r := suite.request(http.MethodPost, "http://example.com/v1/auth/change-password", v1.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "an-even-better-passphrase",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The old password no longer works, the new one does
	suite.login(suite.user.Email, testPassword, http.StatusUnauthorized)
	suite.login(suite.user.Email, "an-even-better-passphrase", http.StatusOK)
}

func (suite *TestSuiteStandard) TestChangePasswordWrongCurrent() {
	r := suite.request(http.MethodPost, "http://example.com/v1/auth/change-password", v1.ChangePasswordRequest{
		CurrentPassword: "not the password",
		NewPassword:     "irrelevant",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestAuthOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"login", "POST"},
		{"refresh", "POST"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, "http://example.com/v1/auth/"+tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}
