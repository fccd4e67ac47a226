package api

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
)

// leadRateLimit throttles lead submissions per client address and answers
// 429 with Retry-After once a client runs out of tokens.
func (s *Server) leadRateLimit(ctx huma.Context, next func(huma.Context)) {
	if s.leadLimiter == nil {
		next(ctx)
		return
	}

	r, _ := humachi.Unwrap(ctx)
	key := clientKey(r)
	ok, wait := s.leadLimiter.Reserve(key)
	if ok {
		next(ctx)
		return
	}

	s.logger.Warn("lead submissions throttled", "client", key, "retry_after", wait)
	if wait > 0 {
		ctx.SetHeader("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
	}
	_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, "Too many requests. Please try again later.") //nolint:errcheck // response already committed
}

// clientKey identifies the caller by address. The RealIP middleware has
// already folded X-Forwarded-For and X-Real-IP into RemoteAddr.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
