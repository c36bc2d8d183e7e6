// FILE: internal/controller/auth_controller.go
package controller

import (
	"notekeeper-be/internal/config"
	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, protected fiber.Handler)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
	cookie  config.AuthConfig
}

func NewAuthController(service service.IAuthService, cookie config.AuthConfig) IAuthController {
	return &authController{service: service, cookie: cookie}
}

func (c *authController) RegisterRoutes(r fiber.Router, protected fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Get("/me", protected, c.Me)
	h.Get("/logout", protected, c.Logout)
	h.Post("/logout", protected, c.Logout)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	req.Normalize()

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	serverutils.SetAuthCookie(ctx, c.cookie.CookieName, res.Token, c.service.TokenTTL(), c.cookie.CookieSecure)
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	req.Normalize()

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	serverutils.SetAuthCookie(ctx, c.cookie.CookieName, res.Token, c.service.TokenTTL(), c.cookie.CookieSecure)
	return ctx.JSON(res)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Me(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	session, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Logout(ctx.UserContext(), session); err != nil {
		return err
	}

	serverutils.ClearAuthCookie(ctx, c.cookie.CookieName, c.cookie.CookieSecure)
	return ctx.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
