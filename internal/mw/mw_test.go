package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func userHeader(c *gin.Context) string { return c.GetHeader("X-User") }

func do(r http.Handler, method, path, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if user != "" {
		req.Header.Set("X-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResponseCache(t *testing.T) {
	rc := NewResponseCache(time.Minute, userHeader)
	hits := 0

	r := gin.New()
	r.Use(rc.Middleware())
	r.GET("/clients", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	r.POST("/clients", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/fail", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	first := do(r, http.MethodGet, "/clients", "ana")
	require.Equal(t, http.StatusOK, first.Code)
	second := do(r, http.MethodGet, "/clients", "ana")
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, hits)

	do(r, http.MethodGet, "/clients", "luis")
	assert.Equal(t, 2, hits, "scopes do not share entries")

	do(r, http.MethodPost, "/fail", "ana")
	assert.Equal(t, 2, rc.Len(), "failed mutations keep the cache")

	do(r, http.MethodPost, "/clients", "ana")
	assert.Zero(t, rc.Len())
	do(r, http.MethodGet, "/clients", "ana")
	assert.Equal(t, 3, hits)

	do(r, http.MethodGet, "/clients", "luis")
	rc.InvalidateScope("ana")
	assert.Equal(t, 1, rc.Len())

	do(r, http.MethodGet, "/clients", "")
	do(r, http.MethodGet, "/clients", "")
	assert.Equal(t, 6, hits, "anonymous requests are never cached")
}

func TestResponseCache_SkipsResponsesOverlappingAFlush(t *testing.T) {
	rc := NewResponseCache(time.Minute, userHeader)
	hits := 0

	r := gin.New()
	r.Use(rc.Middleware())
	r.POST("/orders", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/orders", func(c *gin.Context) {
		hits++
		if hits == 1 {
			// Another user creates an order while this read is in flight.
			do(r, http.MethodPost, "/orders", "luis")
		}
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})

	do(r, http.MethodGet, "/orders", "ana")
	assert.Zero(t, rc.Len(), "a read that overlapped a mutation is not cached")

	do(r, http.MethodGet, "/orders", "ana")
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, rc.Len())
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(1, 2, userHeader))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "ana").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "ana").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/", "ana").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "luis").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "").Code)
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RequestLogger(log, userHeader))
	r.GET("/orders/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	do(r, http.MethodGet, "/orders/42", "ana")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "/orders/:id", entry.Data["path"])
	assert.Equal(t, "ana", entry.Data["user_id"])

	do(r, http.MethodGet, "/boom", "")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	_, ok := hook.LastEntry().Data["user_id"]
	assert.False(t, ok)
}
