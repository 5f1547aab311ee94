package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/ledger"
	"github.com/harenatech/harena-api/internal/domain/entity"
)

// DepotItemHandler routes des lignes de stock par dépôt (surface v2).
type DepotItemHandler struct {
	uc *ledger.DepotItemUsecase
}

func NewDepotItemHandler(uc *ledger.DepotItemUsecase) *DepotItemHandler {
	return &DepotItemHandler{uc: uc}
}

func toDepotItemResponse(d *entity.DepotItem) dto.DepotItemResponse {
	return dto.DepotItemResponse{
		ID:           d.ID,
		OwnerID:      d.OwnerID,
		DepotID:      d.DepotID,
		ProductID:    d.ProductID,
		Quantite:     d.Quantite,
		PrixUnitaire: d.PrixUnitaire,
		LastUpdate:   d.LastUpdate,
		CreatedAt:    d.CreatedAt,
	}
}

// Adjust POST /stock/adjust — delta signé sur une ligne du demandeur.
func (h *DepotItemHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	item, err := h.uc.AdjustStock(c.UserContext(), GetUserID(c), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("stock ajusté", toDepotItemResponse(item)))
}

// Transfer POST /stock/transfer — déplacement atomique entre deux dépôts.
func (h *DepotItemHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	if err := h.uc.Transfer(c.UserContext(), GetUserID(c), in, auditMeta(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("transfert effectué", nil))
}

// List GET /depot-items — lignes du demandeur.
func (h *DepotItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	page.Normalize()
	items, total, err := h.uc.List(c.UserContext(), GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DepotItemResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDepotItemResponse(d))
	}
	return c.JSON(dto.OKPage("lignes de dépôt", out, total, page.Page, page.Limit))
}
