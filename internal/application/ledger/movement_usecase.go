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

// MovementUsecase opérations sur le grand livre des mouvements de stock.
type MovementUsecase struct {
	movements repository.StockMovementRepository
	products  repository.ProductRepository
	sites     repository.SiteRepository
	tx        TxRunner
	audit     *audit.Recorder
	notifier  Notifier
}

func NewMovementUsecase(
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	sites repository.SiteRepository,
	tx TxRunner,
	auditRec *audit.Recorder,
	notifier Notifier,
) *MovementUsecase {
	return &MovementUsecase{
		movements: movements,
		products:  products,
		sites:     sites,
		tx:        tx,
		audit:     auditRec,
		notifier:  notifier,
	}
}

// Create enregistre un mouvement immuable. Le produit doit avoir été validé
// par un admin : sans validation, aucune ligne n'est écrite. Les noms des
// sites d'origine et de destination sont dénormalisés dans la ligne au moment
// de l'écriture. Un dépôt pose le verrou "stocké" du produit dans la même
// transaction que l'insertion. L'audit et la notification admin sont au mieux.
func (u *MovementUsecase) Create(ctx context.Context, operatorID string, req dto.CreateMovementRequest, meta audit.Meta) (*entity.StockMovement, error) {
	if !req.Quantite.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(req.Type) {
		return nil, domain.ErrInvalidInput
	}

	product, err := u.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.ProductValidation {
		return nil, domain.ErrProductNotValidated
	}
	origin, err := u.sites.GetByID(ctx, req.OriginSiteID)
	if err != nil {
		return nil, err
	}
	dest, err := u.sites.GetByID(ctx, req.DestSiteID)
	if err != nil {
		return nil, err
	}
	if origin == nil || dest == nil {
		return nil, domain.ErrSiteNotFound
	}

	movement := &entity.StockMovement{
		OperatorID:    operatorID,
		OriginSiteID:  origin.ID,
		OriginSiteNom: origin.Nom,
		DestSiteID:    dest.ID,
		DestSiteNom:   dest.Nom,
		ProductID:     product.ID,
		Quantite:      req.Quantite,
		PrixUnitaire:  req.PrixUnitaire,
		Type:          req.Type,
		Observation:   req.Observation,
		CreatedAt:     time.Now().UTC(),
	}

	err = u.tx.Run(ctx, func(repos TxRepos) error {
		if err := repos.Movements.Create(ctx, movement); err != nil {
			return err
		}
		if movement.Type == entity.MovementTypeDepot && !product.IsStocker {
			return repos.Products.SetStocker(ctx, product.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, entity.AuditActionMovement, entity.AuditEntityMovement, movement.ID, &operatorID,
		nil, movement, meta)
	u.notifier.NotifyAllAdmins(
		"Mouvement de stock",
		"Mouvement "+movement.Type+" sur "+origin.Nom+" → "+dest.Nom+".",
		map[string]any{
			"movement_id": movement.ID,
			"type":        movement.Type,
			"product_id":  movement.ProductID,
			"quantite":    movement.Quantite.String(),
		})
	return movement, nil
}

// GetMyAssets retourne la page filtrée de l'historique de l'opérateur, plus
// récent d'abord, accompagnée du solde par produit. Le solde est toujours
// calculé sur l'historique complet : les filtres de la page ne s'y appliquent
// pas.
func (u *MovementUsecase) GetMyAssets(ctx context.Context, operatorID string, req dto.MovementListRequest) ([]*entity.StockMovement, int, []*entity.ProductBalance, error) {
	req.Normalize()
	opts := repository.MovementListOptions{
		SiteID:    req.SiteID,
		ProductID: req.ProductID,
		From:      req.From,
		To:        req.To,
		Limit:     req.Limit,
		Offset:    req.Offset(),
	}
	items, err := u.movements.ListByOperator(ctx, operatorID, opts)
	if err != nil {
		return nil, 0, nil, err
	}
	total, err := u.movements.CountByOperator(ctx, operatorID, opts)
	if err != nil {
		return nil, 0, nil, err
	}
	balances, err := u.movements.SumBalancesByOperator(ctx, operatorID)
	if err != nil {
		return nil, 0, nil, err
	}
	return items, total, balances, nil
}
