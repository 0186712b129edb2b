package middleware

import (
	"log"
	"net/http"

	"agency_billing/pkg"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const defaultRate = "10-M"

var errTooManyRequests = pkg.NewDomainErrorSimple("TOO_MANY_REQUESTS", "Too many requests, try again later", http.StatusTooManyRequests)

// RateLimit throttles per client IP using a limiter formatted rate such as "10-M".
func RateLimit(formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		log.Printf("[http][ratelimit] invalid rate=%q, using %s err=%v", formatted, defaultRate, err)
		rate, _ = limiter.NewRateFromFormatted(defaultRate)
	}

	instance := limiter.New(memory.NewStore(), rate)
	// The JSON error body is written below once the limiter declines the request.
	limiterMiddleware := stdlib.NewMiddleware(instance, stdlib.WithLimitReachedHandler(func(http.ResponseWriter, *http.Request) {}))

	return func(c *gin.Context) {
		passed := false
		limiterMiddleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.AbortWithStatusJSON(errTooManyRequests.HTTPStatus, errTooManyRequests.ToHTTPError())
		}
	}
}
