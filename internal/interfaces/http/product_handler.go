package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/usecase"
	"github.com/harenatech/harena-api/internal/domain/entity"
)

// ProductHandler routes du catalogue produits.
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                p.ID,
		CPCCode:           p.CPCCode,
		Nom:               p.Nom,
		Etat:              p.Etat,
		OwnerID:           p.OwnerID,
		ProductValidation: p.ProductValidation,
		IsStocker:         p.IsStocker,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// Create POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	product, err := h.uc.Create(c.UserContext(), GetUserID(c), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("produit créé", toProductResponse(product)))
}

// GetByID GET /products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("produit", toProductResponse(product)))
}

// Update PUT /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	product, err := h.uc.Update(c.UserContext(), GetUserID(c), GetRole(c), c.Params("id"), in, auditMeta(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("produit mis à jour", toProductResponse(product)))
}

// Validate PATCH /products/:id/validate — admin.
func (h *ProductHandler) Validate(c *fiber.Ctx) error {
	var in struct {
		Validated bool `json:"validated"`
	}
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := h.uc.Validate(c.UserContext(), GetUserID(c), c.Params("id"), in.Validated, auditMeta(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("validation mise à jour", nil))
}

// List GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductListRequest
	if err := c.QueryParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return respondValidation(c, err)
	}
	in.Normalize()
	products, total, err := h.uc.List(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(dto.OKPage("produits", out, total, in.Page, in.Limit))
}
