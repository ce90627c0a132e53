package security

import (
	"context"
	"cyberar_admin_backend/internal/config"
	"cyberar_admin_backend/internal/util"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const tooManyRequests = "Too many requests"

var (
	defaultMethods = []string{http.MethodGet, http.MethodOptions}
	defaultHeaders = []string{"Authorization", "Content-Type", "Accept", "Origin", "Cache-Control", "X-Requested-With"}
)

// CORS 中间件 仅允许白名单中的Origin，支持Credentials
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	originSet := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		originSet[o] = true
	}

	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = defaultMethods
	}
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = defaultHeaders
	}
	allowMethods := strings.Join(methods, ", ")
	allowHeaders := strings.Join(headers, ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && originSet[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", allowMethods)
			c.Header("Access-Control-Allow-Headers", allowHeaders)
			if cfg.MaxAgeSeconds > 0 {
				c.Header("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAgeSeconds))
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Secure 中间件
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		// dashboard responses are per account and must not be cached by proxies
		c.Header("Cache-Control", "no-store")
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// rejectTooMany answers 429 with the standard response envelope.
func rejectTooMany(c *gin.Context, retryAfter time.Duration) {
	if retryAfter > 0 {
		secs := int((retryAfter + time.Second - 1) / time.Second)
		c.Header("Retry-After", strconv.Itoa(secs))
	}
	util.Error(c, http.StatusTooManyRequests, tooManyRequests)
	c.Abort()
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors holds one token bucket per client IP.
type visitors struct {
	mu     sync.Mutex
	byIP   map[string]*visitor
	limit  rate.Limit
	burst  int
	expiry time.Duration
}

func newVisitors(maxRequests int, window time.Duration) *visitors {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	expiry := window * 3
	if expiry < time.Minute {
		expiry = time.Minute
	}
	return &visitors{
		byIP:   make(map[string]*visitor),
		limit:  rate.Every(window / time.Duration(maxRequests)),
		burst:  maxRequests,
		expiry: expiry,
	}
}

func (v *visitors) get(ip string, now time.Time) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	vis, ok := v.byIP[ip]
	if !ok {
		vis = &visitor{limiter: rate.NewLimiter(v.limit, v.burst)}
		v.byIP[ip] = vis
	}
	vis.lastSeen = now
	return vis.limiter
}

// prune drops visitors idle for longer than the expiry.
func (v *visitors) prune(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for ip, vis := range v.byIP {
		if now.Sub(vis.lastSeen) > v.expiry {
			delete(v.byIP, ip)
		}
	}
}

func (v *visitors) size() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.byIP)
}

func (v *visitors) cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			v.prune(now)
		}
	}
}

// RateLimiter 限流中间件 按IP限流。Idle entries are pruned every minute
// until ctx is done.
func RateLimiter(ctx context.Context, maxRequests int, window time.Duration) gin.HandlerFunc {
	v := newVisitors(maxRequests, window)
	go v.cleanup(ctx, time.Minute)

	return func(c *gin.Context) {
		limiter := v.get(c.ClientIP(), time.Now())

		r := limiter.Reserve()
		if !r.OK() {
			rejectTooMany(c, 0)
			return
		}
		if delay := r.Delay(); delay > 0 {
			r.Cancel()
			rejectTooMany(c, delay)
			return
		}

		c.Next()
	}
}
