package repository

import (
	"context"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// UserRepository port de persistance des utilisateurs.
// Les lectures excluent les comptes supprimés (DeletedAt non nul) ; GetByID retourne
// (nil, nil) si introuvable.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
}
