package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/ledger"
	"github.com/harenatech/harena-api/internal/domain/entity"
)

// ActifHandler routes du grand livre des actifs.
type ActifHandler struct {
	uc *ledger.ActifUsecase
}

func NewActifHandler(uc *ledger.ActifUsecase) *ActifHandler {
	return &ActifHandler{uc: uc}
}

func toActifResponse(a *entity.Actif) dto.ActifResponse {
	return dto.ActifResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		UserNom:      a.UserNom,
		SiteID:       a.SiteID,
		SiteNom:      a.SiteNom,
		ProductID:    a.ProductID,
		ProductNom:   a.ProductNom,
		Quantite:     a.Quantite,
		PrixUnitaire: a.PrixUnitaire,
		IsActive:     a.IsActive,
		ArchivedAt:   a.ArchivedAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// Add POST /actifs — crédite la position du demandeur.
func (h *ActifHandler) Add(c *fiber.Ctx) error {
	var in dto.ActifAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	actif, err := h.uc.AddOrIncrease(c.UserContext(), GetUserID(c), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("actif crédité", toActifResponse(actif)))
}

// Decrease POST /actifs/decrease — débite la position du demandeur.
func (h *ActifHandler) Decrease(c *fiber.Ctx) error {
	var in dto.ActifAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	actif, err := h.uc.Decrease(c.UserContext(), GetUserID(c), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("actif débité", toActifResponse(actif)))
}

// List GET /actifs — positions du demandeur.
func (h *ActifHandler) List(c *fiber.Ctx) error {
	var in dto.ActifListRequest
	if err := c.QueryParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	in.Normalize()
	items, total, err := h.uc.List(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ActifResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toActifResponse(a))
	}
	return c.JSON(dto.OKPage("actifs", out, total, in.Page, in.Limit))
}
