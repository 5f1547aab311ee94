package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/usecase"
	"github.com/harenatech/harena-api/internal/domain/entity"
)

// SiteHandler routes des sites de stockage.
type SiteHandler struct {
	uc *usecase.SiteUsecase
}

func NewSiteHandler(uc *usecase.SiteUsecase) *SiteHandler {
	return &SiteHandler{uc: uc}
}

func toSiteResponse(s *entity.Site) dto.SiteResponse {
	return dto.SiteResponse{
		ID:        s.ID,
		Nom:       s.Nom,
		Adresse:   s.Adresse,
		Lat:       s.Lat,
		Lng:       s.Lng,
		Location:  s.Location,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Create POST /sites
func (h *SiteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	site, err := h.uc.Create(c.UserContext(), GetUserID(c), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("site créé", toSiteResponse(site)))
}

// GetByID GET /sites/:id
func (h *SiteHandler) GetByID(c *fiber.Ctx) error {
	site, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("site", toSiteResponse(site)))
}

// Update PUT /sites/:id
func (h *SiteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSiteRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	site, err := h.uc.Update(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("site mis à jour", toSiteResponse(site)))
}

// Delete DELETE /sites/:id
func (h *SiteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"), auditMeta(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("site supprimé", nil))
}

// List GET /sites — sites du demandeur.
func (h *SiteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	page.Normalize()
	sites, total, err := h.uc.ListByOwner(c.UserContext(), GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SiteResponse, 0, len(sites))
	for _, s := range sites {
		out = append(out, toSiteResponse(s))
	}
	return c.JSON(dto.OKPage("sites", out, total, page.Page, page.Limit))
}
