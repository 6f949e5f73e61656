package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pub "gitlab.com/dirk.krummacker/contact-console/pkg/model"
)

func TestClientDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/submissions/1/status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var request pub.StatusRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "replied", request.Status)
		w.Write([]byte(`{"message": "Submission status updated!", "submission": {"id": "1", "status": "replied"}}`))
	}))
	defer server.Close()

	client := &apiClient{base: server.URL, http: server.Client()}
	var result submissionResult
	err := client.do(http.MethodPut, "/submissions/1/status", pub.StatusRequest{Status: "replied"}, &result)
	require.NoError(t, err)
	assert.Equal(t, "Submission status updated!", result.Message)
	assert.Equal(t, "replied", result.Submission.Status)
}

func TestClientReportsServiceMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "submission not found"}`))
	}))
	defer server.Close()

	client := &apiClient{base: server.URL, http: server.Client()}
	err := client.do(http.MethodGet, "/submissions/9999", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submission not found")
	assert.Contains(t, err.Error(), "404")
}

func TestClientWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := &apiClient{base: server.URL, http: server.Client()}
	err := client.do(http.MethodGet, "/stats", nil, nil)
	assert.EqualError(t, err, "GET /stats: status 502")
}
