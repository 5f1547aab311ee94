package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/ledger"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

// PassifHandler routes du grand livre des passifs.
type PassifHandler struct {
	uc *ledger.PassifUsecase
}

func NewPassifHandler(uc *ledger.PassifUsecase) *PassifHandler {
	return &PassifHandler{uc: uc}
}

func toPassifResponse(p *entity.Passif) dto.PassifResponse {
	return dto.PassifResponse{
		ID:            p.ID,
		DetentaireID:  p.DetentaireID,
		DetentaireNom: p.DetentaireNom,
		SiteID:        p.SiteID,
		SiteNom:       p.SiteNom,
		ProductID:     p.ProductID,
		ProductNom:    p.ProductNom,
		AyantDroitID:  p.AyantDroitID,
		AyantDroitNom: p.AyantDroitNom,
		Quantite:      p.Quantite,
		PrixUnitaire:  p.PrixUnitaire,
		Raison:        p.Raison,
		IsActive:      p.IsActive,
		ArchivedAt:    p.ArchivedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// Add POST /passifs — le demandeur est le détenteur.
func (h *PassifHandler) Add(c *fiber.Ctx) error {
	var in dto.PassifAddRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	passif, err := h.uc.Add(c.UserContext(), GetUserID(c), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("passif crédité", toPassifResponse(passif)))
}

// GetOne GET /passifs/one — lecture ponctuelle par clé 4-uplet en query.
func (h *PassifHandler) GetOne(c *fiber.Ctx) error {
	var in dto.PassifFindRequest
	if err := c.QueryParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	passif, err := h.uc.GetOne(c.UserContext(), repository.PassifKey{
		DetentaireID: in.DetentaireID,
		SiteID:       in.SiteID,
		ProductID:    in.ProductID,
		AyantDroitID: in.AyantDroitID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("passif", toPassifResponse(passif)))
}

// ListBySite GET /passifs/site/:siteId
func (h *PassifHandler) ListBySite(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	page.Normalize()
	includeArchived := c.QueryBool("include_archived", false)
	items, total, err := h.uc.ListBySite(c.UserContext(), c.Params("siteId"), page, includeArchived)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PassifResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPassifResponse(p))
	}
	return c.JSON(dto.OKPage("passifs", out, total, page.Page, page.Limit))
}
