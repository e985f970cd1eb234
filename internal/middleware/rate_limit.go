package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitByIP 按客户端 IP 限流（登录、注册、网店下单）
func RateLimitByIP(limiter *KeyedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.FullPath() + "|" + c.ClientIP()) {
			abort(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			return
		}
		c.Next()
	}
}

// CooldownPerPharmacy 同一药房在 interval 内只允许一次（导出等重操作）
func CooldownPerPharmacy(cd *Cooldown, name string, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("pharmacy:%d:%s", GetPharmacyID(c), name)
		result := cd.Check(key, interval)
		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": fmt.Sprintf("操作过于频繁，请 %d 秒后重试", int(result.RetryAfter.Seconds())+1),
				"data":    gin.H{"retry_after": int(result.RetryAfter.Seconds()) + 1},
			})
			return
		}
		c.Next()
	}
}
