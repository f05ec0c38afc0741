package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SetAuthCookies stores both paseto tokens as HTTP-only cookies so the front
// end does not have to keep them in script-readable storage.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	setCookie(c, "accessToken", accessToken, AccessTokenExpiry)
	setCookie(c, "refreshToken", refreshToken, RefreshTokenExpiry)
}

// ClearAuthCookies expires both token cookies on logoff.
func ClearAuthCookies(c *gin.Context) {
	setCookie(c, "accessToken", "", -time.Second)
	setCookie(c, "refreshToken", "", -time.Second)
}

func setCookie(c *gin.Context, name, value string, expiry time.Duration) {
	// The Secure flag is dropped in debug mode so local development over
	// plain HTTP keeps working.
	secure := gin.Mode() != gin.DebugMode
	c.SetCookie(name, value, int(expiry.Seconds()), "/", "", secure, true)
}
