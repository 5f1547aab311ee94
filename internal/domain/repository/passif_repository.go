package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// PassifKey clé naturelle d'un passif : détenteur, site, produit, ayant droit.
type PassifKey struct {
	DetentaireID string
	SiteID       string
	ProductID    string
	AyantDroitID string
}

// PassifListOptions filtres du listing des passifs d'un site.
type PassifListOptions struct {
	IncludeArchived bool
	Limit           int
	Offset          int
}

// PassifRepository port de persistance du grand livre des passifs.
type PassifRepository interface {
	// UpsertIncrement incrémente atomiquement la quantité sur la clé 4-uplet,
	// réactive la ligne et écrase la raison (la dernière raison l'emporte).
	// PrixUnitaire n'est posé qu'à la création de la ligne.
	UpsertIncrement(ctx context.Context, key PassifKey, qty, prixUnitaire decimal.Decimal, raison string) (*entity.Passif, error)
	FindOne(ctx context.Context, key PassifKey) (*entity.Passif, error)
	ListBySite(ctx context.Context, siteID string, opts PassifListOptions) ([]*entity.Passif, error)
	CountBySite(ctx context.Context, siteID string, opts PassifListOptions) (int, error)
}
