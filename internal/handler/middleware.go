package handler

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/honkaku-tattoo/backend/internal/model"
	"github.com/honkaku-tattoo/backend/internal/ratelimit"
	"github.com/honkaku-tattoo/backend/internal/service"
	"github.com/honkaku-tattoo/backend/internal/storage"
)

const authUserKey = "auth_user"

// RequireSession validates the session cookie against the store on every
// request and attaches the identity. Anything short of a live session is
// a 401; validity is never cached across requests.
func RequireSession(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token, _ := c.Cookie(auth.CookieConfig().Name)
		user, err := auth.GetSession(c.Request.Context(), token)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
			c.Abort()
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *model.AdminUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AdminUser); ok {
			return user
		}
	}
	return nil
}

// RateLimit throttles one action per client identifier. It runs before
// any auth or database work and answers denials with 429 plus the
// seconds left in the window.
func RateLimit(limiter *ratelimit.Limiter, action string, maxRequests int) gin.HandlerFunc {
	return func(c *gin.Context) {
		enforceLimit(c, limiter, action, maxRequests)
	}
}

// uploadActions gives every admin upload folder its own budget.
var uploadActions = map[string]string{
	storage.FolderArtistAvatars: "avatar-upload",
	storage.FolderBlogImages:    "blog-upload",
	storage.FolderPortfolio:     "portfolio-upload",
}

// RateLimitUploadFolder throttles admin uploads per folder, so avatar,
// blog and portfolio uploads each keep an independent budget. Unknown
// folders count against a shared action; the handler rejects them after.
func RateLimitUploadFolder(limiter *ratelimit.Limiter, maxRequests int) gin.HandlerFunc {
	return func(c *gin.Context) {
		action, ok := uploadActions[c.Param("folder")]
		if !ok {
			action = "upload"
		}
		enforceLimit(c, limiter, action, maxRequests)
	}
}

func enforceLimit(c *gin.Context, limiter *ratelimit.Limiter, action string, maxRequests int) {
	res := limiter.Check(ClientIdentifier(c), action, maxRequests)
	if !res.Allowed {
		c.Header("Retry-After", strconv.Itoa(res.RetryAfter))
		c.JSON(http.StatusTooManyRequests, model.RateLimitedResponse{
			Error:      "too many requests",
			RetryAfter: res.RetryAfter,
		})
		c.Abort()
		return
	}
	c.Next()
}

// ClientIdentifier buckets rate-limit counters: first hop of the
// forwarded-for chain, else the direct peer address, else "unknown"
// (collisions under "unknown" are accepted).
func ClientIdentifier(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil && host != "" {
		return host
	}
	if c.Request.RemoteAddr != "" {
		return c.Request.RemoteAddr
	}
	return "unknown"
}

// isSecureRequest reports whether the session cookie may carry the
// Secure flag: TLS on the connection itself or a trusted proxy saying so.
func isSecureRequest(c *gin.Context) bool {
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Headers", "Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
