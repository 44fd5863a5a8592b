package middleware

import (
	"os"
	"strconv"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"ethiowork-backend/internal/utilities"
)

func keyFunc(c *gin.Context) string {
	acc, err := utilities.ExtractAccount(c)
	if err != nil {
		return "ip: " + c.ClientIP()
	}
	return "account: " + acc.ID.String()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.AbortWithStatusJSON(429, utilities.ErrorResponse{
		Error: "Too many requests. Please try again later.",
	})
}

// RateLimiterMiddleware limits each caller to reqPerSec requests,
// keyed by account id when authenticated and client IP otherwise.
func RateLimiterMiddleware(reqPerSec uint) gin.HandlerFunc {

	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: reqPerSec,
	})

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc:      keyFunc,
		ErrorHandler: errorHandler,
	})
}

// EnvRateLimitMiddleware reads RATE_LIMIT_REQUESTS_PER_SECOND, falling
// back to 5 when unset or invalid.
func EnvRateLimitMiddleware() gin.HandlerFunc {

	rateLimitString := os.Getenv("RATE_LIMIT_REQUESTS_PER_SECOND")
	rateLimitInt, err := strconv.Atoi(rateLimitString)

	if err != nil || rateLimitInt <= 0 {
		rateLimitInt = 5
	}

	return RateLimiterMiddleware(uint(rateLimitInt))
}
