package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/usecase"
	"github.com/harenatech/harena-api/internal/domain/entity"
)

// CPCHandler routes du référentiel de classification.
type CPCHandler struct {
	uc *usecase.CPCUsecase
}

func NewCPCHandler(uc *usecase.CPCUsecase) *CPCHandler {
	return &CPCHandler{uc: uc}
}

func toCPCResponse(c *entity.CPCCode) dto.CPCCodeResponse {
	return dto.CPCCodeResponse{
		Code:            c.Code,
		Nom:             c.Nom,
		Niveau:          c.Niveau,
		ParentCode:      c.ParentCode,
		Correspondances: c.Correspondances,
	}
}

// List GET /cpc
func (h *CPCHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	page.Normalize()
	codes, total, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CPCCodeResponse, 0, len(codes))
	for _, code := range codes {
		out = append(out, toCPCResponse(code))
	}
	return c.JSON(dto.OKPage("codes CPC", out, total, page.Page, page.Limit))
}

// GetByCode GET /cpc/:code
func (h *CPCHandler) GetByCode(c *fiber.Ctx) error {
	code, err := h.uc.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("code CPC", toCPCResponse(code)))
}

// Import POST /cpc/import — multipart "file", admin. Les codes déjà présents
// sont sautés ; le bilan est retourné en partial_success si des lignes ont été
// rejetées.
func (h *CPCHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(dto.StatusFail, "fichier CSV requis (champ file)"))
	}
	f, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	result, err := h.uc.ImportCSV(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	status := dto.StatusSuccess
	if len(result.Errors) > 0 {
		status = dto.StatusPartialSuccess
	}
	return c.JSON(dto.Response{Status: status, Message: "import terminé", Data: result})
}

// Export GET /cpc/export — tout le référentiel en CSV.
func (h *CPCHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.UserContext(), &buf); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cpc_codes.csv"`)
	return c.Send(buf.Bytes())
}
