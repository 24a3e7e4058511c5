package security

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"wealth_builder_backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CORSPolicy 维护允许的 Origin 白名单，支持配置热更新
type CORSPolicy struct {
	mu      sync.RWMutex
	origins map[string]bool
}

func NewCORSPolicy(allowedOrigins []string) *CORSPolicy {
	p := &CORSPolicy{}
	p.SetOrigins(allowedOrigins)
	return p
}

func (p *CORSPolicy) SetOrigins(allowedOrigins []string) {
	set := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		set[o] = true
	}
	p.mu.Lock()
	p.origins = set
	p.mu.Unlock()
}

func (p *CORSPolicy) Allowed(origin string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.origins[origin]
}

// Middleware 仅允许白名单中的 Origin，支持 Credentials
func (p *CORSPolicy) Middleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  p.Allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length", "RateLimit-Limit", "RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// Secure 中间件
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 防止MIME嗅探
		c.Header("X-Content-Type-Options", "nosniff")
		// 防止点击劫持
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "0")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cross-Origin-Opener-Policy", "same-origin")
		c.Header("X-DNS-Prefetch-Control", "off")
		// HSTS
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// visitor 包装限流器和最后活跃时间，用于定期清理
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyFunc 决定限流维度，默认按客户端 IP
type KeyFunc func(c *gin.Context) string

func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// UserOrIPKey 已登录请求按用户限流，否则按 IP
func UserOrIPKey(c *gin.Context) string {
	if claims := util.GetUserFromContext(c); claims != nil {
		return "user:" + claims.UserID
	}
	return "ip:" + c.ClientIP()
}

// RateLimiter 令牌桶限流，窗口内最多 max 次请求，自动清理过期条目
type RateLimiter struct {
	Message string
	// SkipSuccessful 为 true 时成功的请求（状态码 < 400）不计入额度
	SkipSuccessful bool
	Key            KeyFunc

	mu      sync.Mutex
	store   map[string]*visitor
	max     int
	window  time.Duration
	stop    chan struct{}
	stopped sync.Once
}

func NewRateLimiter(maxRequests int, window time.Duration, message string) *RateLimiter {
	rl := &RateLimiter{
		Message: message,
		Key:     ClientIPKey,
		store:   make(map[string]*visitor),
		stop:    make(chan struct{}),
	}
	rl.SetLimit(maxRequests, window)
	go rl.janitor()
	return rl
}

// SetLimit 更新额度，已有的访问者按新额度重新计数
func (rl *RateLimiter) SetLimit(maxRequests int, window time.Duration) {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	rl.mu.Lock()
	rl.max = maxRequests
	rl.window = window
	rl.store = make(map[string]*visitor)
	rl.mu.Unlock()
}

func (rl *RateLimiter) Close() {
	rl.stopped.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			expiry := rl.window * 3
			if expiry < time.Minute {
				expiry = time.Minute
			}
			for key, v := range rl.store {
				if time.Since(v.lastSeen) > expiry {
					delete(rl.store, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) visitor(key string) (*rate.Limiter, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, exists := rl.store[key]
	if !exists {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.max)), rl.max),
		}
		rl.store[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter, rl.max
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		keyFn := rl.Key
		if keyFn == nil {
			keyFn = ClientIPKey
		}
		limiter, limit := rl.visitor(keyFn(c))
		c.Header("RateLimit-Limit", strconv.Itoa(limit))

		if rl.SkipSuccessful {
			// 先检查额度，只有失败的请求才扣减
			if limiter.Tokens() < 1 {
				rl.reject(c)
				return
			}
			c.Next()
			if c.Writer.Status() >= http.StatusBadRequest {
				limiter.Allow()
			}
			return
		}

		if !limiter.Allow() {
			rl.reject(c)
			return
		}
		c.Header("RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}

func (rl *RateLimiter) reject(c *gin.Context) {
	c.Header("RateLimit-Remaining", "0")
	util.Error(c, http.StatusTooManyRequests, rl.Message)
	c.Abort()
}
