package middlewares

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartCookieName      = "cart_session"
	cartSessionKey      = "cartSessionId"
	cartCookieMaxAgeSec = 72 * 60 * 60
)

// CartSession makes sure every request carries a cart session id, issuing a
// new cookie when the request has none.
func CartSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionID, err := ctx.Cookie(CartCookieName)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
			setCartCookie(ctx, sessionID, cartCookieMaxAgeSec)
		}

		ctx.Set(cartSessionKey, sessionID)
		ctx.Next()
	}
}

func CartSessionID(ctx *gin.Context) string {
	return ctx.GetString(cartSessionKey)
}

// ExpireCartSession tells the browser to drop the cart cookie.
func ExpireCartSession(ctx *gin.Context) {
	setCartCookie(ctx, "", -1)
}

func setCartCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(CartCookieName, value, maxAge, "/", "", os.Getenv("COOKIE_SECURE") == "true", true)
}
