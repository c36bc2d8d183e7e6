package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SetAuthCookie stores the session token in an httpOnly cookie that lives as long as the token.
func SetAuthCookie(ctx *fiber.Ctx, name, token string, ttl time.Duration, secure bool) {
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearAuthCookie(ctx *fiber.Ctx, name string, secure bool) {
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
