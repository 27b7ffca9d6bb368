package middleware

import (
	"fmt"
	"net/http"
)

// CacheControl marks successful GET responses as publicly cacheable for
// maxAge seconds. Other methods and non-2xx responses are left untouched.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	return cacheControl("public", maxAge, false)
}

// PrivateCacheControl is CacheControl for responses that depend on the
// caller's credentials: only the client's own cache may keep them, and
// responses vary by Authorization.
func PrivateCacheControl(maxAge int) func(http.Handler) http.Handler {
	return cacheControl("private", maxAge, true)
}

func cacheControl(scope string, maxAge int, varyAuth bool) func(http.Handler) http.Handler {
	value := fmt.Sprintf("%s, max-age=%d", scope, maxAge)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || maxAge <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(&cacheHeaderWriter{ResponseWriter: w, value: value, varyAuth: varyAuth}, r)
		})
	}
}

// cacheHeaderWriter sets Cache-Control just before a 2xx status is written.
type cacheHeaderWriter struct {
	http.ResponseWriter
	value       string
	varyAuth    bool
	wroteHeader bool
}

func (c *cacheHeaderWriter) WriteHeader(status int) {
	if !c.wroteHeader {
		c.wroteHeader = true
		if status >= 200 && status < 300 {
			c.Header().Set("Cache-Control", c.value)
			if c.varyAuth {
				c.Header().Add("Vary", "Authorization")
			}
		}
	}
	c.ResponseWriter.WriteHeader(status)
}

func (c *cacheHeaderWriter) Write(b []byte) (int, error) {
	if !c.wroteHeader {
		c.WriteHeader(http.StatusOK)
	}
	return c.ResponseWriter.Write(b)
}
