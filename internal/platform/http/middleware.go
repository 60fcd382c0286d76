package http

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apexmotors/dealership-api/internal/platform/metrics"
	"github.com/apexmotors/dealership-api/pkg/model"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const profileContextKey = "profile"

// requireAuth verifies the Bearer ID token, resolves (or auto-creates) the
// staff profile, and stores it on the request context.
func (r *Router) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.authn == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "auth is not configured"})
			return
		}
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := r.authn.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if v, ok := r.profiles.Get(token.UID); ok {
			c.Set(profileContextKey, v.(model.UserProfile))
			c.Next()
			return
		}

		email, _ := token.Claims["email"].(string)
		profile, err := r.accounts.Ensure(c.Request.Context(), token.UID, email)
		if err != nil {
			r.respondError(c, err)
			c.Abort()
			return
		}
		r.profiles.SetDefault(token.UID, profile)
		c.Set(profileContextKey, profile)
		c.Next()
	}
}

// requireAdmin gates routes to profiles with the admin role.
func (r *Router) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := currentProfileFrom(c)
		if !ok || profile.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

func currentProfileFrom(c *gin.Context) (model.UserProfile, bool) {
	v, ok := c.Get(profileContextKey)
	if !ok {
		return model.UserProfile{}, false
	}
	profile, ok := v.(model.UserProfile)
	return profile, ok
}

// rateLimitMiddleware keeps one token bucket per client IP.
func rateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 5
	}
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[ip]; ok {
			return l
		}
		l := rate.NewLimiter(rate.Limit(rps), burst)
		limiters[ip] = l
		return l
	}
	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// metricsMiddleware records request totals, latency and in-flight gauges.
func metricsMiddleware(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		reg.HTTPRequestsInFlight.WithLabelValues(endpoint).Inc()
		defer reg.HTTPRequestsInFlight.WithLabelValues(endpoint).Dec()

		start := time.Now()
		c.Next()

		reg.HTTPRequestsTotal.WithLabelValues(
			endpoint,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		reg.HTTPRequestDuration.WithLabelValues(endpoint, c.Request.Method).
			Observe(time.Since(start).Seconds())
	}
}
