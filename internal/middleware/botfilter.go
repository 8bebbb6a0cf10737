package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// isBotKey is the gin context key set for flagged requests.
const isBotKey = "is_bot"

// botPatterns are known bot User-Agent substrings (lowercase).
var botPatterns = []string{
	"googlebot", "bingbot", "slurp", "duckduckbot",
	"baiduspider", "yandexbot", "facebookexternalhit",
	"twitterbot", "rogerbot", "linkedinbot", "embedly",
	"quora link preview", "showyoubot", "outbrain",
	"pinterest", "applebot", "semrushbot", "ahrefsbot",
	"mj12bot", "dotbot", "petalbot", "bytespider",
}

// BotFilter flags requests from known crawlers and empty user agents.
// Engagement recording checks the flag so crawler traffic never inflates
// trending counts.
func BotFilter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ua := strings.ToLower(c.Request.UserAgent())
		if ua == "" || isBot(ua) {
			c.Set(isBotKey, true)
		}
		c.Next()
	}
}

// IsBot reports whether the request was flagged by BotFilter.
func IsBot(c *gin.Context) bool {
	flagged, exists := c.Get(isBotKey)
	return exists && flagged == true
}

func isBot(ua string) bool {
	for _, pattern := range botPatterns {
		if strings.Contains(ua, pattern) {
			return true
		}
	}
	return false
}
