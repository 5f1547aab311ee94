package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// DepotItemKey clé unique d'une ligne de dépôt.
type DepotItemKey struct {
	OwnerID   string
	DepotID   string
	ProductID string
}

// DepotItemRepository port des lignes de stock par dépôt.
type DepotItemRepository interface {
	Get(ctx context.Context, key DepotItemKey) (*entity.DepotItem, error)
	// GetForUpdate verrouille la ligne (SELECT FOR UPDATE) ; (nil, nil) si absente.
	GetForUpdate(ctx context.Context, key DepotItemKey) (*entity.DepotItem, error)
	// UpsertIncrement ajoute delta (positif) à la quantité en une seule instruction
	// atomique ; prix non nil écrase le prix unitaire.
	UpsertIncrement(ctx context.Context, key DepotItemKey, delta decimal.Decimal, prix *decimal.Decimal) (*entity.DepotItem, error)
	// DecrementIfAvailable retranche qty en une seule instruction conditionnelle ;
	// retourne (nil, domain.ErrInsufficientStock) si la ligne manque ou est trop basse.
	DecrementIfAvailable(ctx context.Context, key DepotItemKey, qty decimal.Decimal, prix *decimal.Decimal) (*entity.DepotItem, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.DepotItem, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
