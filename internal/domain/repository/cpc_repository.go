package repository

import (
	"context"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// CPCRepository port de persistance des codes de classification CPC.
// Create retourne domain.ErrDuplicate sur un code déjà présent.
type CPCRepository interface {
	Create(ctx context.Context, code *entity.CPCCode) error
	GetByCode(ctx context.Context, code string) (*entity.CPCCode, error)
	List(ctx context.Context, limit, offset int) ([]*entity.CPCCode, error)
	// ListAll retourne tout le référentiel, trié par code (export CSV).
	ListAll(ctx context.Context) ([]*entity.CPCCode, error)
	Count(ctx context.Context) (int, error)
}
