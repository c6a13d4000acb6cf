package mcp

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader    = "X-Request-Id"
	maxRequestIDLength = 64
)

// httpHandler routes /metrics to the Prometheus handler and everything else
// to the MCP transport, behind request id, rate limit and metrics middleware.
func (s *Server) httpHandler(transport http.Handler) http.Handler {
	mux := http.NewServeMux()

	var mcpHandler http.Handler = transport
	if s.config.RateLimit > 0 {
		mcpHandler = rateLimitMiddleware(mcpHandler, s.config.RateLimit, s.config.RateBurst)
	}
	mux.Handle("/", mcpHandler)

	var handler http.Handler = mux
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
		handler = s.metrics.Middleware(handler)
	}

	return requestIDMiddleware(handler)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}

		r.Header.Set(requestIDHeader, requestID)
		w.Header().Set(requestIDHeader, requestID)

		next.ServeHTTP(w, r)
	})
}

// validRequestID accepts ids of up to 64 printable ASCII characters without
// spaces. Anything else is replaced by a generated id.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}
	return true
}

// rateLimitMiddleware applies one token bucket to all requests and answers
// 429 with a Retry-After hint once it is drained
func rateLimitMiddleware(next http.Handler, rps float64, burst int) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(1/rps))))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", retryAfter)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
