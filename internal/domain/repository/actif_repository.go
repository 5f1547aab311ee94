package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// ActifKey clé naturelle d'une position d'actif.
type ActifKey struct {
	UserID    string
	SiteID    string
	ProductID string
}

// ActifListOptions filtres explicites du listing des actifs d'un utilisateur.
// IncludeArchived à faux (défaut) exclut les lignes archivées.
type ActifListOptions struct {
	SiteID          string
	Search          string // sous-chaîne sur le nom du produit
	IncludeArchived bool
	Limit           int
	Offset          int
}

// ActifRepository port de persistance du grand livre des actifs.
type ActifRepository interface {
	// UpsertIncrement incrémente atomiquement la quantité sur la clé naturelle,
	// créant la ligne au besoin et la réactivant si elle était archivée.
	UpsertIncrement(ctx context.Context, key ActifKey, qty, prixUnitaire decimal.Decimal) (*entity.Actif, error)
	// GetForUpdate charge la ligne en la verrouillant (SELECT FOR UPDATE).
	// Retourne (nil, nil) si la ligne n'existe pas.
	GetForUpdate(ctx context.Context, key ActifKey) (*entity.Actif, error)
	Update(ctx context.Context, actif *entity.Actif) error
	ListByUser(ctx context.Context, userID string, opts ActifListOptions) ([]*entity.Actif, error)
	CountByUser(ctx context.Context, userID string, opts ActifListOptions) (int, error)
}
