package ledger

import (
	"context"
	"time"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

// ActifUsecase opérations sur le grand livre des actifs.
type ActifUsecase struct {
	actifs   repository.ActifRepository
	products repository.ProductRepository
	sites    repository.SiteRepository
	tx       TxRunner
	audit    *audit.Recorder
}

func NewActifUsecase(
	actifs repository.ActifRepository,
	products repository.ProductRepository,
	sites repository.SiteRepository,
	tx TxRunner,
	auditRec *audit.Recorder,
) *ActifUsecase {
	return &ActifUsecase{
		actifs:   actifs,
		products: products,
		sites:    sites,
		tx:       tx,
		audit:    auditRec,
	}
}

// AddOrIncrease crédite la position (callerID, site, produit) de la quantité
// demandée en un seul incrément atomique : la ligne est créée au besoin, et
// réactivée si elle était archivée. Le prix unitaire transmis écrase le
// précédent. La quantité doit être strictement positive.
func (u *ActifUsecase) AddOrIncrease(ctx context.Context, callerID string, req dto.ActifAdjustRequest, meta audit.Meta) (*entity.Actif, error) {
	if !req.Quantite.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	product, err := u.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	site, err := u.sites.GetByID(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrSiteNotFound
	}

	key := repository.ActifKey{UserID: callerID, SiteID: req.SiteID, ProductID: req.ProductID}
	actif, err := u.actifs.UpsertIncrement(ctx, key, req.Quantite, req.PrixUnitaire)
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, entity.AuditActionAdjust, entity.AuditEntityActif, actif.ID, &callerID,
		nil, actif, meta)
	return actif, nil
}

// Decrease débite la position de la quantité demandée, sous verrou ligne dans
// une transaction. Ligne absente, archivée, ou quantité demandée supérieure au
// disponible : refus ErrInsufficientQuantity, sans écriture. Quantité
// résiduelle exactement nulle : la ligne est archivée (IsActive à faux,
// ArchivedAt posé), jamais supprimée.
func (u *ActifUsecase) Decrease(ctx context.Context, callerID string, req dto.ActifAdjustRequest, meta audit.Meta) (*entity.Actif, error) {
	if !req.Quantite.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	key := repository.ActifKey{UserID: callerID, SiteID: req.SiteID, ProductID: req.ProductID}
	var prev, next *entity.Actif
	err := u.tx.Run(ctx, func(repos TxRepos) error {
		actif, err := repos.Actifs.GetForUpdate(ctx, key)
		if err != nil {
			return err
		}
		if actif == nil || !actif.IsActive {
			return domain.ErrInsufficientQuantity
		}
		if req.Quantite.GreaterThan(actif.Quantite) {
			return domain.ErrInsufficientQuantity
		}

		snapshot := *actif
		prev = &snapshot

		actif.Quantite = actif.Quantite.Sub(req.Quantite)
		if actif.Quantite.IsZero() {
			now := time.Now().UTC()
			actif.IsActive = false
			actif.ArchivedAt = &now
		}
		if err := repos.Actifs.Update(ctx, actif); err != nil {
			return err
		}
		next = actif
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, entity.AuditActionAdjust, entity.AuditEntityActif, next.ID, &callerID,
		prev, next, meta)
	return next, nil
}

// List retourne la page des actifs de l'utilisateur avec le total. Par défaut
// les lignes archivées sont exclues.
func (u *ActifUsecase) List(ctx context.Context, userID string, req dto.ActifListRequest) ([]*entity.Actif, int, error) {
	req.Normalize()
	opts := repository.ActifListOptions{
		SiteID:          req.SiteID,
		Search:          req.Search,
		IncludeArchived: req.IncludeArchived,
		Limit:           req.Limit,
		Offset:          req.Offset(),
	}
	items, err := u.actifs.ListByUser(ctx, userID, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.actifs.CountByUser(ctx, userID, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
