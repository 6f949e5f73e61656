package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/submissions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	found := httpRequestsTotal.WithLabelValues("GET", "/submissions/:id", "200")
	unmatched := httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")
	foundBefore := testutil.ToFloat64(found)
	unmatchedBefore := testutil.ToFloat64(unmatched)

	for _, url := range []string{"/submissions/1", "/submissions/2", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", url, nil))
	}

	assert.Equal(t, foundBefore+2, testutil.ToFloat64(found))
	assert.Equal(t, unmatchedBefore+1, testutil.ToFloat64(unmatched))
}

func TestBusinessCounters(t *testing.T) {
	submissions := testutil.ToFloat64(contactSubmissionsTotal)
	transitions := testutil.ToFloat64(statusTransitionsTotal.WithLabelValues("new", "read"))
	commits := testutil.ToFloat64(contactInfoCommitsTotal)

	RecordContactSubmission()
	RecordStatusTransition("new", "read")
	RecordStatusTransition("new", "read")
	RecordContactInfoCommit()

	assert.Equal(t, submissions+1, testutil.ToFloat64(contactSubmissionsTotal))
	assert.Equal(t, transitions+2, testutil.ToFloat64(statusTransitionsTotal.WithLabelValues("new", "read")))
	assert.Equal(t, commits+1, testutil.ToFloat64(contactInfoCommitsTotal))
}
