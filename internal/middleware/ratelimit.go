package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/formpulse/formpulse/internal/dto"
	"github.com/formpulse/formpulse/internal/ratelimit"
)

// SubmissionRateLimit throttles anonymous submissions per client IP. Over the
// limit the request is answered with 429 and the window's reset time; allowed
// requests carry the remaining quota in response headers.
func SubmissionRateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ClientIP(c)
		decision := limiter.Check(c.Request.Context(), ip)

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetTime.UnixMilli(), 10))

		if !decision.Allowed {
			log.Warn().Str("ip", ip).Str("path", c.FullPath()).Msg("Submission rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.RateLimitedResponse{
				Message:   "Too many submissions. Please try again later.",
				ResetTime: decision.ResetTime.UnixMilli(),
			})
			return
		}
		c.Next()
	}
}

// ClientIP resolves the caller's address behind proxies: first hop of
// X-Forwarded-For, then X-Real-IP, then the socket peer. The rate limiter
// and the submission recorder both key on this value.
func ClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return real
	}
	return c.ClientIP()
}
