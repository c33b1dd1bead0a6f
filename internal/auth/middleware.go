package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// BotKeyHeader carries the shared bot API key.
	BotKeyHeader = "X-Bot-API-Key"

	contextUserID = "auth_user_id"
	contextEmail  = "auth_email"
	contextBot    = "auth_bot"
)

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func abortUnauthorized(c *gin.Context, message string) {
	var body errorBody
	body.Error.Code = "UNAUTHORIZED"
	body.Error.Message = message
	c.AbortWithStatusJSON(http.StatusUnauthorized, body)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func (i *Issuer) authenticate(c *gin.Context) bool {
	raw, ok := bearerToken(c)
	if !ok {
		abortUnauthorized(c, "authorization header required")
		return false
	}
	claims, err := i.Parse(raw)
	if err != nil {
		abortUnauthorized(c, "invalid or expired token")
		return false
	}
	SetUserID(c, claims.UserID)
	c.Set(contextEmail, claims.Email)
	return true
}

// RequireUser rejects requests without a valid bearer token.
func RequireUser(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !issuer.authenticate(c) {
			return
		}
		c.Next()
	}
}

// RequireUserOrBot accepts either a valid bearer token or the bot API key.
// An empty botKey disables bot access.
func RequireUserOrBot(issuer *Issuer, botKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(BotKeyHeader); key != "" && botKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(botKey)) == 1 {
			c.Set(contextBot, true)
			c.Next()
			return
		}
		if !issuer.authenticate(c) {
			return
		}
		c.Next()
	}
}

// SetUserID marks the request as made by userID.
func SetUserID(c *gin.Context, userID string) {
	c.Set(contextUserID, userID)
}

// UserID returns the authenticated user id, if the request carried a token.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(contextUserID)
	return id, id != ""
}

// IsBot reports whether the request was authenticated with the bot API key.
func IsBot(c *gin.Context) bool {
	return c.GetBool(contextBot)
}
