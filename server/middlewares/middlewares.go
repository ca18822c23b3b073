package middlewares

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Luismorlan/postboard/auth"
	"github.com/Luismorlan/postboard/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// userKey is the gin context key the request user is stored under.
	userKey = "request_user"

	// SessionCookie carries the page-flow credential: the same opaque token
	// the API accepts, set by the login UI after token issuance.
	SessionCookie = "session_token"

	// LoginURL is where unauthenticated page mutations are redirected. The
	// login UI itself is owned by the identity subsystem.
	LoginURL = "/auth/login/"
)

// SetCurrentUser stores the acting user on the request context. Exposed for
// handler tests.
func SetCurrentUser(c *gin.Context, user *model.User) {
	c.Set(userKey, user)
}

// CurrentUser returns the acting user, or nil for an anonymous request.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// Session resolves the session cookie to a user for page flows. Anonymous
// requests pass through with no user set: reads are open to everyone, the
// write handlers gate on RequireLogin.
func Session(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil {
			if user, err := auth.UserForToken(db, token); err == nil {
				SetCurrentUser(c, user)
			}
		}
		c.Next()
	}
}

// RequireLogin redirects anonymous page requests to the login page, carrying
// the original path so the login flow can return the user afterwards.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, LoginURL+"?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// TokenAuth guards the API routes. It reads the "Authorization: Token <key>"
// header and rejects the request with 401 before any handler logic runs when
// the token is missing or unknown.
func TokenAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Token "))

		if header == "" || token == header {
			c.JSON(http.StatusUnauthorized, gin.H{
				"msg": "authentication credentials were not provided",
			})
			c.Abort()
			return
		}

		user, err := auth.UserForToken(db, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"msg": "invalid token",
			})
			c.Abort()
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}
