package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/auth"
	"github.com/harenatech/harena-api/internal/application/dto"
)

// AuthHandler routes d'authentification.
type AuthHandler struct {
	uc *auth.Usecase
}

func NewAuthHandler(uc *auth.Usecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	user, err := h.uc.Register(c.UserContext(), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("compte créé, en attente de validation", auth.ToUserResponse(user)))
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("connexion réussie", out))
}

// Refresh POST /auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	pair, err := h.uc.Refresh(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("jetons renouvelés", pair))
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := h.uc.Logout(c.UserContext(), in.RefreshToken); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("déconnexion réussie", nil))
}

// VerifyEmail POST /auth/verify/:id — marque l'adresse vérifiée (admin).
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	if err := h.uc.VerifyEmail(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("adresse vérifiée", nil))
}

// Activate POST /auth/activate/:id — valide le compte (admin).
func (h *AuthHandler) Activate(c *fiber.Ctx) error {
	if err := h.uc.Activate(c.UserContext(), GetUserID(c), c.Params("id"), auditMeta(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("compte activé", nil))
}
