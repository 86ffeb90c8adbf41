package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAllowedUsers(t *testing.T) {
	t.Run("single user", func(t *testing.T) {
		accounts, err := ParseAllowedUsers("alice:secret")
		require.NoError(t, err)
		assert.Equal(t, gin.Accounts{"alice": "secret"}, accounts)
	})

	t.Run("multiple users", func(t *testing.T) {
		accounts, err := ParseAllowedUsers("alice:secret,bob:hunter2")
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
		assert.Equal(t, "hunter2", accounts["bob"])
	})

	t.Run("password containing a colon", func(t *testing.T) {
		accounts, err := ParseAllowedUsers("alice:se:cret")
		require.NoError(t, err)
		assert.Equal(t, "se:cret", accounts["alice"])
	})

	t.Run("malformed entries fail", func(t *testing.T) {
		for _, input := range []string{"", "alice", "alice:", ":secret", "alice:secret,bob"} {
			_, err := ParseAllowedUsers(input)
			assert.Error(t, err, "input %q should fail", input)
		}
	})
}

func TestRedactedUserNames(t *testing.T) {
	redacted := RedactedUserNames(gin.Accounts{"alice": "secret"})
	assert.Contains(t, redacted, "alice:<hidden>")
	assert.NotContains(t, redacted, "secret")
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app := gin.New()
	app.GET("/ping", RateLimitMiddleware(2, time.Minute), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		app.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusServiceUnavailable}, statuses)
}
