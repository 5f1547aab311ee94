package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/usecase"
	"github.com/harenatech/harena-api/internal/domain/entity"
)

// AuditHandler consultation du journal d'audit (admin).
type AuditHandler struct {
	uc *usecase.AuditUsecase
}

func NewAuditHandler(uc *usecase.AuditUsecase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

func toAuditResponse(l *entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:         l.ID,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		UserID:     l.UserID,
		PrevState:  rawToAny(l.PrevState),
		NewState:   rawToAny(l.NewState),
		IP:         l.IP,
		UserAgent:  l.UserAgent,
		CreatedAt:  l.CreatedAt,
	}
}

func rawToAny(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// List GET /audit
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	page.Normalize()
	logs, total, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toAuditResponse(l))
	}
	return c.JSON(dto.OKPage("journal d'audit", out, total, page.Page, page.Limit))
}
