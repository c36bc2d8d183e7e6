package controller

import (
	"notekeeper-be/internal/pkg/serverutils"
	internalWS "notekeeper-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IWebSocketController interface {
	RegisterRoutes(r fiber.Router)
	ServeWs(ctx *fiber.Ctx) error
}

type webSocketController struct {
	auth       serverutils.Authenticator
	hub        *internalWS.Hub
	cookieName string
}

func NewWebSocketController(auth serverutils.Authenticator, hub *internalWS.Hub, cookieName string) IWebSocketController {
	return &webSocketController{auth: auth, hub: hub, cookieName: cookieName}
}

func (c *webSocketController) RegisterRoutes(r fiber.Router) {
	r.Get("/ws", c.ServeWs)
}

// ServeWs authenticates the handshake and upgrades. Browsers cannot set headers on a
// websocket, so the token may also come from the "token" query parameter.
func (c *webSocketController) ServeWs(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		tokenStr = serverutils.ExtractToken(ctx, c.cookieName)
	}

	session, err := c.auth.Authenticate(ctx.UserContext(), tokenStr)
	if err != nil {
		return err
	}

	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	userID := session.User.Id
	return websocket.New(func(conn *websocket.Conn) {
		internalWS.ServeWs(c.hub, conn, userID)
	})(ctx)
}
