package repository

import (
	"context"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// SiteRepository port de persistance des sites (entrepôts/dépôts).
type SiteRepository interface {
	Create(ctx context.Context, site *entity.Site) error
	GetByID(ctx context.Context, id string) (*entity.Site, error)
	Update(ctx context.Context, site *entity.Site) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Site, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
