package mw

import (
	"bytes"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache keeps successful GET responses per caller. Any successful
// mutation flushes every entry, so the next read refetches from the store.
// A GET that was running while a flush happened is not stored.
type ResponseCache struct {
	store *cache.Cache
	ttl   time.Duration
	scope func(*gin.Context) string

	mu  sync.Mutex
	gen uint64
}

// NewResponseCache returns a cache whose keys are prefixed with scope(c),
// typically the id of the authenticated user.
func NewResponseCache(ttl time.Duration, scope func(*gin.Context) string) *ResponseCache {
	return &ResponseCache{
		store: cache.New(ttl, 2*ttl),
		ttl:   ttl,
		scope: scope,
	}
}

func (rc *ResponseCache) key(scope, uri string) string {
	return scope + "|" + uri
}

// Middleware serves cached GET responses and invalidates after mutations.
func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			if s := c.Writer.Status(); s >= 200 && s < 300 {
				rc.flush()
			}
			return
		}

		scope := rc.scope(c)
		if scope == "" {
			c.Next()
			return
		}
		key := rc.key(scope, c.Request.RequestURI)
		if resp, found := rc.store.Get(key); found {
			cached := resp.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.Header().Set("X-Cache", "HIT")
			c.Writer.WriteHeader(cached.status)
			_, _ = c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		gen := rc.generation()
		c.Next()

		if blw.Status() >= 200 && blw.Status() < 300 {
			rc.setIfGeneration(gen, key, cachedResponse{
				status:  blw.Status(),
				headers: blw.Header().Clone(),
				body:    blw.body.Bytes(),
			})
		}
	}
}

func (rc *ResponseCache) generation() uint64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.gen
}

func (rc *ResponseCache) flush() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.gen++
	rc.store.Flush()
}

// setIfGeneration stores resp unless a flush happened since gen was read.
func (rc *ResponseCache) setIfGeneration(gen uint64, key string, resp cachedResponse) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.gen != gen {
		return
	}
	rc.store.Set(key, resp, rc.ttl)
}

// InvalidateScope drops every entry cached for scope, e.g. on logout.
func (rc *ResponseCache) InvalidateScope(scope string) {
	prefix := rc.key(scope, "")
	for k := range rc.store.Items() {
		if strings.HasPrefix(k, prefix) {
			rc.store.Delete(k)
		}
	}
}

// Len reports the number of live entries.
func (rc *ResponseCache) Len() int {
	return rc.store.ItemCount()
}
