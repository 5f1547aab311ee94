package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

// ProductUsecase gestion du catalogue produits.
type ProductUsecase struct {
	products repository.ProductRepository
	cpc      repository.CPCRepository
	audit    *audit.Recorder
}

func NewProductUsecase(products repository.ProductRepository, cpc repository.CPCRepository, auditRec *audit.Recorder) *ProductUsecase {
	return &ProductUsecase{products: products, cpc: cpc, audit: auditRec}
}

// Create enregistre un produit non validé. Le code CPC doit exister dans le
// référentiel.
func (u *ProductUsecase) Create(ctx context.Context, ownerID string, req dto.CreateProductRequest, meta audit.Meta) (*entity.Product, error) {
	if !entity.ValidEtat(req.Etat) {
		return nil, domain.ErrInvalidInput
	}
	code, err := u.cpc.GetByCode(ctx, req.CPCCode)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CPCCode:   req.CPCCode,
		Nom:       req.Nom,
		Etat:      req.Etat,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.products.Create(ctx, product); err != nil {
		return nil, err
	}
	u.audit.Record(ctx, entity.AuditActionCreate, entity.AuditEntityProduct, product.ID, &ownerID, nil, product, meta)
	return product, nil
}

// GetByID charge un produit.
func (u *ProductUsecase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update modifie un produit du propriétaire. Un changement de code CPC est
// revérifié contre le référentiel.
func (u *ProductUsecase) Update(ctx context.Context, callerID, callerRole, id string, req dto.UpdateProductRequest, meta audit.Meta) (*entity.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.OwnerID != callerID && callerRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	prev := *product
	if req.CPCCode != nil && *req.CPCCode != product.CPCCode {
		code, err := u.cpc.GetByCode(ctx, *req.CPCCode)
		if err != nil {
			return nil, err
		}
		if code == nil {
			return nil, domain.ErrNotFound
		}
		product.CPCCode = *req.CPCCode
	}
	if req.Nom != nil {
		product.Nom = *req.Nom
	}
	if req.Etat != nil {
		if !entity.ValidEtat(*req.Etat) {
			return nil, domain.ErrInvalidInput
		}
		product.Etat = *req.Etat
	}

	product.UpdatedAt = time.Now().UTC()
	if err := u.products.Update(ctx, product); err != nil {
		return nil, err
	}
	u.audit.Record(ctx, entity.AuditActionUpdate, entity.AuditEntityProduct, product.ID, &callerID, &prev, product, meta)
	return product, nil
}

// Validate pose le drapeau de validation admin, prérequis à toute entrée du
// produit dans le grand livre des mouvements.
func (u *ProductUsecase) Validate(ctx context.Context, adminID, id string, validated bool, meta audit.Meta) error {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := u.products.SetValidation(ctx, id, validated); err != nil {
		return err
	}
	u.audit.Record(ctx, entity.AuditActionUpdate, entity.AuditEntityProduct, id, &adminID,
		map[string]any{"product_validation": product.ProductValidation},
		map[string]any{"product_validation": validated}, meta)
	return nil
}

// List retourne la page filtrée du catalogue avec le total. Mine restreint aux
// produits du demandeur.
func (u *ProductUsecase) List(ctx context.Context, callerID string, req dto.ProductListRequest) ([]*entity.Product, int, error) {
	req.Normalize()
	opts := repository.ProductListOptions{
		Etat:   req.Etat,
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset(),
	}
	if req.Mine {
		opts.OwnerID = callerID
	}
	items, err := u.products.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.products.Count(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
