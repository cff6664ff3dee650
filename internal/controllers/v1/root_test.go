package v1_test

import (
	"net/http"
	"testing"

	"github.com/culturabase/backend/internal/router"
	"github.com/culturabase/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetRoot() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response router.RootResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "http://example.com/v1", response.Links.V1)
	assert.Equal(suite.T(), "http://example.com/healthz", response.Links.Healthz)
	assert.Equal(suite.T(), "http://example.com/version", response.Links.Version)
	assert.Equal(suite.T(), "http://example.com/docs/index.html", response.Links.Docs)
}

func (suite *TestSuiteStandard) TestGetVersion() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/version", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response router.VersionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "0.0.0", response.Data.Version)
}

func (suite *TestSuiteStandard) TestGetHealthz() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestGetHealthzDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/healthz", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestGetV1() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

// TestAuthenticationRequired verifies that the resource routes reject
// requests without a valid access token.
func (suite *TestSuiteStandard) TestAuthenticationRequired() {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"No Authorization header", nil},
		{"Malformed header", map[string]string{"Authorization": "Token abcdef"}},
		{"Invalid token", map[string]string{"Authorization": "Bearer not.a.token"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/sectors", "", tt.headers)
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
		})
	}
}

// TestMethodNotAllowed verifies that unsupported methods are answered
// with 405.
func (suite *TestSuiteStandard) TestMethodNotAllowed() {
	r := suite.request(http.MethodDelete, "http://example.com/v1/sectors", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
}
