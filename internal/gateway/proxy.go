package gateway

import (
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sibe/identity/internal/obs"
)

// serviceProxy forwards requests to one upstream service, rewriting the
// public path prefix to the upstream's own prefix.
type serviceProxy struct {
	name  string
	proxy *httputil.ReverseProxy
}

// newServiceProxy builds a reverse proxy for one upstream. publicPrefix is
// the path the gateway exposes, upstreamPrefix what the service itself
// serves. Request bodies and headers, including Idempotency-Key, pass
// through untouched.
func newServiceProxy(name, rawURL, publicPrefix, upstreamPrefix string) (*serviceProxy, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	defaultDirector := proxy.Director
	proxy.Director = func(req *http.Request) {
		defaultDirector(req)
		if rest, ok := strings.CutPrefix(req.URL.Path, publicPrefix); ok {
			req.URL.Path = upstreamPrefix + rest
		}
		req.Host = target.Host
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("ERROR: proxy to %s failed: %v", name, err)
		obs.CountProxyError(name)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"message":"upstream service unavailable"}`))
	}

	return &serviceProxy{name: name, proxy: proxy}, nil
}

// Handler adapts the proxy to a gin route.
func (p *serviceProxy) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		p.proxy.ServeHTTP(c.Writer, c.Request)
	}
}
