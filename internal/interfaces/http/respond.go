package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain"
)

// respondError traduit une erreur de domaine en statut HTTP et enveloppe
// normalisée. Toute erreur non reconnue devient un 500 au message générique :
// le détail reste dans les journaux, jamais dans la réponse.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSiteNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Error(dto.StatusFail, err.Error()))
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidCoordinates):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(dto.StatusFail, err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Error(dto.StatusFail, err.Error()))
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrAccountNotVerified):
		return c.Status(fiber.StatusForbidden).JSON(dto.Error(dto.StatusFail, err.Error()))
	case errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.Error(dto.StatusFail, err.Error()))
	case errors.Is(err, domain.ErrInsufficientQuantity),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrProductNotValidated):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Error(dto.StatusFail, err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error(dto.StatusError, "erreur interne"))
	}
}

// respondValidation réponse 400 pour une entrée rejetée par la validation.
func respondValidation(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Error(dto.StatusFail, err.Error()))
}

// respondBadBody réponse 400 pour un corps illisible.
func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Error(dto.StatusFail, "corps de requête invalide"))
}
