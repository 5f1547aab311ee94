package repository

import (
	"context"
	"time"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// MovementListOptions filtres explicites de l'historique des mouvements.
// Ces filtres ne s'appliquent qu'à la page : le résumé de solde est toujours calculé
// sur l'historique complet de l'opérateur.
type MovementListOptions struct {
	SiteID    string // site d'origine ou de destination
	ProductID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository port du grand livre des mouvements. Les lignes sont
// immuables : aucune méthode de mise à jour ni de suppression n'existe.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByOperator(ctx context.Context, operatorID string, opts MovementListOptions) ([]*entity.StockMovement, error)
	CountByOperator(ctx context.Context, operatorID string, opts MovementListOptions) (int, error)
	// SumBalancesByOperator agrège l'historique complet de l'opérateur par produit :
	// +quantité pour un dépôt, -quantité pour tout autre type.
	SumBalancesByOperator(ctx context.Context, operatorID string) ([]*entity.ProductBalance, error)
}
