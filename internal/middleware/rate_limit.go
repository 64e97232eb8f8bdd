// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/fastpurchase/backend/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
	message  string
	detail   string
}

func NewRateLimiter(r rate.Limit, b int, message, detail string) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
		message:  message,
		detail:   detail,
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors()

	return rl
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		rl.mtx.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mtx.Unlock()
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getVisitor(c.ClientIP())

		if !limiter.Allow() {
			utils.ErrorResponse(c, http.StatusTooManyRequests, rl.message, []string{rl.detail})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Limiter tiers: stricter buckets on auth and write endpoints, a looser one
// for reads, mirroring the per-endpoint windows of the public API.
var (
	generalLimiter = NewRateLimiter(rate.Every(9*time.Second), 100,
		"Too many requests from this IP, please try again later.",
		"Rate limit exceeded. Please wait before making more requests.")
	authLimiter = NewRateLimiter(rate.Every(3*time.Minute), 5,
		"Too many authentication attempts, please try again later.",
		"Too many login/register attempts. Please wait before trying again.")
	createLimiter = NewRateLimiter(rate.Every(90*time.Second), 10,
		"Too many product creation requests, please try again later.",
		"Rate limit exceeded for product creation. Please wait before creating more products.")
	orderLimiter = NewRateLimiter(rate.Every(45*time.Second), 20,
		"Too many order requests, please try again later.",
		"Rate limit exceeded for order creation. Please wait before placing more orders.")
	readLimiter = NewRateLimiter(rate.Every(4500*time.Millisecond), 200,
		"Too many requests, please try again later.",
		"Rate limit exceeded for read operations. Please slow down your requests.")
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.Middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.Middleware()
}

func CreateRateLimit() gin.HandlerFunc {
	return createLimiter.Middleware()
}

func OrderRateLimit() gin.HandlerFunc {
	return orderLimiter.Middleware()
}

func ReadRateLimit() gin.HandlerFunc {
	return readLimiter.Middleware()
}
