// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"context"
	"strings"

	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localUserID  = "user_id"
	localUser    = "user"
	localSession = "session"
)

// Authenticator verifies a raw session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*service.Session, error)
}

// ExtractToken reads the session token from "Authorization: Bearer <t>", a raw
// Authorization value, or the auth cookie, in that order.
func ExtractToken(ctx *fiber.Ctx, cookieName string) string {
	if authHeader := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization)); authHeader != "" {
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			return strings.TrimSpace(authHeader[7:])
		}
		return authHeader
	}
	return ctx.Cookies(cookieName)
}

// NewJwtMiddleware rejects the request with 401 unless it carries a valid session.
func NewJwtMiddleware(auth Authenticator, cookieName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		session, err := auth.Authenticate(ctx.UserContext(), ExtractToken(ctx, cookieName))
		if err != nil {
			return err
		}
		SetSession(ctx, session)
		return ctx.Next()
	}
}

func SetSession(ctx *fiber.Ctx, session *service.Session) {
	ctx.Locals(localSession, session)
	ctx.Locals(localUser, session.User)
	ctx.Locals(localUserID, session.User.Id)
}

// UserID returns the authenticated owner id set by the middleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := ctx.Locals(localUserID).(uuid.UUID)
	if !ok || userId == uuid.Nil {
		return uuid.Nil, apperror.Unauthenticated("Authentication required")
	}
	return userId, nil
}

func CurrentSession(ctx *fiber.Ctx) (*service.Session, error) {
	session, ok := ctx.Locals(localSession).(*service.Session)
	if !ok || session == nil {
		return nil, apperror.Unauthenticated("Authentication required")
	}
	return session, nil
}

// PathID parses the :id route param. A malformed id cannot name anything, so it is NotFound.
func PathID(ctx *fiber.Ctx, notFoundMessage string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound(notFoundMessage)
	}
	return id, nil
}
