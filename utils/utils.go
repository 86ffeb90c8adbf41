// Package utils provides helpers shared by the taskwire service binary:
// credential flag parsing and request middleware.
package utils

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ParseAllowedUsers parses a comma-separated list of "username:password"
// pairs into gin basic-auth accounts.
func ParseAllowedUsers(users string) (gin.Accounts, error) {
	accounts := gin.Accounts{}
	for _, user := range strings.Split(users, ",") {
		parts := strings.SplitN(user, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid user format %q, expected 'username:password'", user)
		}
		accounts[parts[0]] = parts[1]
	}
	return accounts, nil
}

// RedactedUserNames returns the account names for logging, passwords elided.
func RedactedUserNames(accounts gin.Accounts) string {
	names := make([]string, 0, len(accounts))
	for name := range accounts {
		names = append(names, name+":<hidden>")
	}
	return strings.Join(names, ", ")
}

// RateLimitMiddleware limits the group it is attached to, allowing at most
// `limit` requests per `window` across all clients.
func RateLimitMiddleware(limit int, window time.Duration) gin.HandlerFunc {
	var mu sync.Mutex
	requestCount := 0
	resetTime := time.Now().Add(window)

	return func(c *gin.Context) {
		mu.Lock()
		defer mu.Unlock()

		if time.Now().After(resetTime) {
			requestCount = 0
			resetTime = time.Now().Add(window)
		}

		if requestCount >= limit {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "too many requests, please wait for the next window",
			})
			c.Abort()
			return
		}

		requestCount++
		c.Next()
	}
}
