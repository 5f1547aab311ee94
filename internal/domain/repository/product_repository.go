package repository

import (
	"context"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// ProductListOptions filtres explicites du listing produits.
type ProductListOptions struct {
	OwnerID string
	Etat    string
	Search  string // sous-chaîne sur le nom
	Limit   int
	Offset  int
}

// ProductRepository port de persistance des produits.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, opts ProductListOptions) ([]*entity.Product, error)
	Count(ctx context.Context, opts ProductListOptions) (int, error)
	// SetValidation pose le drapeau de validation admin.
	SetValidation(ctx context.Context, id string, validated bool) error
	// SetStocker pose le verrou "stocké" (à sens unique, jamais remis à faux ici).
	SetStocker(ctx context.Context, id string) error
}
