package ledger

import (
	"context"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

// DepotItemUsecase opérations sur les lignes de stock par dépôt.
type DepotItemUsecase struct {
	items repository.DepotItemRepository
	tx    TxRunner
	audit *audit.Recorder
}

func NewDepotItemUsecase(items repository.DepotItemRepository, tx TxRunner, auditRec *audit.Recorder) *DepotItemUsecase {
	return &DepotItemUsecase{items: items, tx: tx, audit: auditRec}
}

// AdjustStock applique un delta signé sur la ligne (ownerID, dépôt, produit).
// Delta positif : incrément atomique, ligne créée au besoin. Delta négatif :
// décrément conditionnel en une seule instruction — la ligne absente ou trop
// basse fait échouer l'opération sans écriture. Delta nul : refusé.
func (u *DepotItemUsecase) AdjustStock(ctx context.Context, ownerID string, req dto.AdjustStockRequest, meta audit.Meta) (*entity.DepotItem, error) {
	if req.Quantite.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	key := repository.DepotItemKey{OwnerID: ownerID, DepotID: req.DepotID, ProductID: req.ProductID}
	var item *entity.DepotItem
	var err error
	if req.Quantite.IsPositive() {
		item, err = u.items.UpsertIncrement(ctx, key, req.Quantite, req.PrixUnitaire)
	} else {
		item, err = u.items.DecrementIfAvailable(ctx, key, req.Quantite.Neg(), req.PrixUnitaire)
	}
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, entity.AuditActionAdjust, entity.AuditEntityDepotItem, item.ID, &ownerID,
		nil, item, meta)
	return item, nil
}

// Transfer déplace une quantité entre deux dépôts du même propriétaire, dans
// une seule transaction : soit les deux lignes bougent, soit aucune. La ligne
// de destination hérite du prix unitaire de la source.
func (u *DepotItemUsecase) Transfer(ctx context.Context, ownerID string, req dto.TransferRequest, meta audit.Meta) error {
	if !req.Quantite.IsPositive() {
		return domain.ErrInvalidInput
	}
	if req.FromSiteID == req.ToSiteID {
		return domain.ErrInvalidInput
	}

	srcKey := repository.DepotItemKey{OwnerID: ownerID, DepotID: req.FromSiteID, ProductID: req.ProductID}
	dstKey := repository.DepotItemKey{OwnerID: ownerID, DepotID: req.ToSiteID, ProductID: req.ProductID}

	var src, dst *entity.DepotItem
	err := u.tx.Run(ctx, func(repos TxRepos) error {
		locked, err := repos.DepotItems.GetForUpdate(ctx, srcKey)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrInsufficientStock
		}
		src, err = repos.DepotItems.DecrementIfAvailable(ctx, srcKey, req.Quantite, nil)
		if err != nil {
			return err
		}
		dst, err = repos.DepotItems.UpsertIncrement(ctx, dstKey, req.Quantite, &locked.PrixUnitaire)
		return err
	})
	if err != nil {
		return err
	}

	u.audit.Record(ctx, entity.AuditActionTransfer, entity.AuditEntityDepotItem, src.ID, &ownerID,
		src, dst, meta)
	return nil
}

// List retourne la page des lignes de dépôt du propriétaire avec le total.
func (u *DepotItemUsecase) List(ctx context.Context, ownerID string, page dto.PageRequest) ([]*entity.DepotItem, int, error) {
	page.Normalize()
	items, err := u.items.ListByOwner(ctx, ownerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := u.items.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
