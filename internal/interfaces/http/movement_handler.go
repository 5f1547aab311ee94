package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/ledger"
	"github.com/harenatech/harena-api/internal/domain/entity"
)

// MovementHandler routes du grand livre des mouvements.
type MovementHandler struct {
	uc *ledger.MovementUsecase
}

func NewMovementHandler(uc *ledger.MovementUsecase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		OperatorID:    m.OperatorID,
		OriginSiteID:  m.OriginSiteID,
		OriginSiteNom: m.OriginSiteNom,
		DestSiteID:    m.DestSiteID,
		DestSiteNom:   m.DestSiteNom,
		ProductID:     m.ProductID,
		Quantite:      m.Quantite,
		PrixUnitaire:  m.PrixUnitaire,
		Type:          m.Type,
		Observation:   m.Observation,
		CreatedAt:     m.CreatedAt,
	}
}

// Create POST /movements
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	movement, err := h.uc.Create(c.UserContext(), GetUserID(c), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("mouvement enregistré", toMovementResponse(movement)))
}

// GetMyAssets GET /movements/my-assets — historique paginé du demandeur, avec
// le solde par produit calculé sur tout l'historique en summary.
func (h *MovementHandler) GetMyAssets(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	in.Normalize()
	items, total, balances, err := h.uc.GetMyAssets(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.MovementResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toMovementResponse(m))
	}
	summary := make([]dto.BalanceEntry, 0, len(balances))
	for _, b := range balances {
		summary = append(summary, dto.BalanceEntry{
			ProductID:  b.ProductID,
			ProductNom: b.ProductNom,
			Balance:    b.Balance,
		})
	}

	resp := dto.OKPage("mouvements", out, total, in.Page, in.Limit)
	resp.Summary = summary
	return c.JSON(resp)
}
