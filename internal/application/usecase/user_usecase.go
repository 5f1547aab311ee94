package usecase

import (
	"context"
	"time"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

// UserUsecase gestion des comptes. La suppression est logique : le compte
// disparaît des lectures mais la ligne reste.
type UserUsecase struct {
	users repository.UserRepository
	audit *audit.Recorder
}

func NewUserUsecase(users repository.UserRepository, auditRec *audit.Recorder) *UserUsecase {
	return &UserUsecase{users: users, audit: auditRec}
}

// GetByID charge un utilisateur actif.
func (u *UserUsecase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile modifie le profil d'un utilisateur. Un non-admin ne peut
// modifier que le sien.
func (u *UserUsecase) UpdateProfile(ctx context.Context, callerID, callerRole, id string, req dto.UpdateUserRequest, meta audit.Meta) (*entity.User, error) {
	if id != callerID && callerRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	prev := *user
	if req.Nom != nil {
		user.Nom = *req.Nom
	}
	if req.Prenom != nil {
		user.Prenom = *req.Prenom
	}
	user.UpdatedAt = time.Now().UTC()
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	u.audit.Record(ctx, entity.AuditActionUpdate, entity.AuditEntityUser, user.ID, &callerID,
		map[string]any{"nom": prev.Nom, "prenom": prev.Prenom},
		map[string]any{"nom": user.Nom, "prenom": user.Prenom}, meta)
	return user, nil
}

// Delete désactive le compte (suppression logique). Un non-admin ne peut
// supprimer que le sien.
func (u *UserUsecase) Delete(ctx context.Context, callerID, callerRole, id string, meta audit.Meta) error {
	if id != callerID && callerRole != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := u.users.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.audit.Record(ctx, entity.AuditActionDelete, entity.AuditEntityUser, id, &callerID, user.Email, nil, meta)
	return nil
}

// List retourne la page des comptes actifs avec le total (opération admin).
func (u *UserUsecase) List(ctx context.Context, page dto.PageRequest) ([]*entity.User, int, error) {
	page.Normalize()
	items, err := u.users.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := u.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// AuditUsecase consultation du journal d'audit (opération admin).
type AuditUsecase struct {
	logs repository.AuditLogRepository
}

func NewAuditUsecase(logs repository.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{logs: logs}
}

// List retourne la page du journal, plus récent d'abord, avec le total.
func (u *AuditUsecase) List(ctx context.Context, page dto.PageRequest) ([]*entity.AuditLog, int, error) {
	page.Normalize()
	items, err := u.logs.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := u.logs.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
