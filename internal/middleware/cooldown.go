package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yigit/researchconnect/internal/app/models/dto"
)

// Cooldown lets each user through at most once per window
type Cooldown struct {
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewCooldown returns nil for a non-positive window; a nil Cooldown lets everything through
func NewCooldown(window time.Duration) *Cooldown {
	if window <= 0 {
		return nil
	}
	return &Cooldown{
		window:   window,
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether key may proceed now. When it may not, wait is the time left.
func (c *Cooldown) Allow(key string) (ok bool, wait time.Duration) {
	if c == nil {
		return true, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	lim, found := c.limiters[key]
	if !found {
		c.prune(now)
		lim = rate.NewLimiter(rate.Every(c.window), 1)
		c.limiters[key] = lim
	}

	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// prune drops limiters that have fully recovered. Called with mu held.
func (c *Cooldown) prune(now time.Time) {
	for key, lim := range c.limiters {
		if lim.TokensAt(now) >= 1 {
			delete(c.limiters, key)
		}
	}
}

// Handler rejects a user's request with 429 while their cooldown runs. It must follow JWTAuth.
func (c *Cooldown) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uid, _ := CurrentUser(ctx)
		ok, wait := c.Allow(uid)
		if ok {
			ctx.Next()
			return
		}

		seconds := int(math.Ceil(wait.Seconds()))
		ctx.Header("Retry-After", strconv.Itoa(seconds))
		ctx.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Error:      fmt.Sprintf("Please wait %d seconds before generating another roadmap", seconds),
			Code:       dto.ErrorCodeRateLimited,
			RetryAfter: seconds,
		})
	}
}
