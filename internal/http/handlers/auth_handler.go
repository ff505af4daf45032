package handlers

import (
	"errors"

	applog "kriya/internal/log"
	"kriya/internal/services"
	"kriya/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerRequest struct {
	Name        string `json:"name" form:"name" validate:"max=100"`
	Email       string `json:"email" form:"email" validate:"max=254"`
	Phone       string `json:"phone" form:"phone" validate:"max=20"`
	Password    string `json:"password" form:"password" validate:"max=72"`
	AcceptTerms bool   `json:"acceptTerms" form:"acceptTerms"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,max=254"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	sid := ensureSID(c)
	u, err := h.Auth.Register(sid, services.Registration{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
		AcceptTerms: req.AcceptTerms,
	})
	if err != nil {
		applog.Security(c, "auth.register.fail", map[string]any{"email": req.Email, "reason": err.Error()})
		return fail(c, err)
	}
	c.Locals("user_id", u.ID)
	applog.Audit(c, "auth.register.success", map[string]any{"email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	sid := ensureSID(c)
	deny := func(reason string) error {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": reason})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrBadCreds.Error()})
	}
	if _, ok := validate.Email(req.Email); !ok {
		return deny("bad_format")
	}
	if !validate.Password(req.Password) {
		return deny("bad_password_format")
	}

	u, err := h.Auth.Login(sid, req.Email, req.Password)
	if errors.Is(err, services.ErrBadCreds) {
		return deny("bad_credentials")
	}
	if err != nil {
		return err
	}
	c.Locals("user_id", u.ID)
	applog.Audit(c, "auth.login.success", map[string]any{"email": req.Email})
	return c.JSON(u)
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies(sidCookie)
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	expireSID(c)
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}
