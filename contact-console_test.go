package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// initializeDemo sets up the demo on a fresh in-memory database.
func initializeDemo(t *testing.T) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router, closeDemo, err := setupDemo(context.Background(), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(closeDemo)
	return router
}

// runTest executes the HTTP request with the specified arguments and returns the response.
func runTest(router *gin.Engine, method string, url string, body *strings.Reader) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	if body == nil {
		body = strings.NewReader("")
	}
	request, _ := http.NewRequest(method, url, body)
	router.ServeHTTP(recorder, request)
	return recorder
}

// TestGetAll expects the seeded submissions in the order they were received.
func TestGetAll(t *testing.T) {
	router := initializeDemo(t)

	recorder := runTest(router, "GET", "/submissions", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	var submissions []map[string]interface{}
	json.Unmarshal(recorder.Body.Bytes(), &submissions)
	require.Len(t, submissions, 3)
	assert.Equal(t, "John Smith", submissions[0]["fullName"])
	assert.Equal(t, "Sarah Johnson", submissions[1]["fullName"])
	assert.Equal(t, "David Chen", submissions[2]["fullName"])
	assert.Equal(t, "2024-01-15T10:30:00Z", submissions[0]["submittedAt"])
}

// TestView views the new submission. It expects that it is read afterwards.
func TestView(t *testing.T) {
	router := initializeDemo(t)

	recorder := runTest(router, "PUT", "/selection/1", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = runTest(router, "GET", "/submissions/1", nil)
	var getBody map[string]interface{}
	json.Unmarshal(recorder.Body.Bytes(), &getBody)
	assert.Equal(t, "read", getBody["status"])
}

// TestContactInfo expects the seeded contact record.
func TestContactInfo(t *testing.T) {
	router := initializeDemo(t)

	recorder := runTest(router, "GET", "/contact-info", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "info@ciedri.org")
	assert.Contains(t, recorder.Body.String(), "https://linkedin.com/company/ciedri")
}
