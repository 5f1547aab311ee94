package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

// SiteUsecase gestion des sites de stockage. Le point GeoJSON est recalculé à
// chaque écriture : Location vaut toujours [Lng, Lat].
type SiteUsecase struct {
	sites repository.SiteRepository
	audit *audit.Recorder
}

func NewSiteUsecase(sites repository.SiteRepository, auditRec *audit.Recorder) *SiteUsecase {
	return &SiteUsecase{sites: sites, audit: auditRec}
}

// Create enregistre un site pour le propriétaire donné.
func (u *SiteUsecase) Create(ctx context.Context, ownerID string, req dto.CreateSiteRequest, meta audit.Meta) (*entity.Site, error) {
	if !entity.ValidCoordinates(req.Lat, req.Lng) {
		return nil, domain.ErrInvalidCoordinates
	}
	now := time.Now().UTC()
	site := &entity.Site{
		ID:        uuid.New().String(),
		Nom:       req.Nom,
		Adresse:   req.Adresse,
		Lat:       req.Lat,
		Lng:       req.Lng,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	site.SyncLocation()
	if err := u.sites.Create(ctx, site); err != nil {
		return nil, err
	}
	u.audit.Record(ctx, entity.AuditActionCreate, entity.AuditEntitySite, site.ID, &ownerID, nil, site, meta)
	return site, nil
}

// GetByID charge un site.
func (u *SiteUsecase) GetByID(ctx context.Context, id string) (*entity.Site, error) {
	site, err := u.sites.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrSiteNotFound
	}
	return site, nil
}

// Update modifie un site. Seul le propriétaire (ou un admin) peut modifier.
func (u *SiteUsecase) Update(ctx context.Context, callerID, callerRole, id string, req dto.UpdateSiteRequest, meta audit.Meta) (*entity.Site, error) {
	site, err := u.sites.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrSiteNotFound
	}
	if site.OwnerID != callerID && callerRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	prev := *site
	if req.Nom != nil {
		site.Nom = *req.Nom
	}
	if req.Adresse != nil {
		site.Adresse = *req.Adresse
	}
	if req.Lat != nil {
		site.Lat = *req.Lat
	}
	if req.Lng != nil {
		site.Lng = *req.Lng
	}
	if !entity.ValidCoordinates(site.Lat, site.Lng) {
		return nil, domain.ErrInvalidCoordinates
	}
	site.SyncLocation()
	site.UpdatedAt = time.Now().UTC()

	if err := u.sites.Update(ctx, site); err != nil {
		return nil, err
	}
	u.audit.Record(ctx, entity.AuditActionUpdate, entity.AuditEntitySite, site.ID, &callerID, &prev, site, meta)
	return site, nil
}

// Delete supprime un site. Seul le propriétaire (ou un admin) peut supprimer.
func (u *SiteUsecase) Delete(ctx context.Context, callerID, callerRole, id string, meta audit.Meta) error {
	site, err := u.sites.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if site == nil {
		return domain.ErrSiteNotFound
	}
	if site.OwnerID != callerID && callerRole != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := u.sites.Delete(ctx, id); err != nil {
		return err
	}
	u.audit.Record(ctx, entity.AuditActionDelete, entity.AuditEntitySite, id, &callerID, site, nil, meta)
	return nil
}

// ListByOwner retourne la page des sites du propriétaire avec le total.
func (u *SiteUsecase) ListByOwner(ctx context.Context, ownerID string, page dto.PageRequest) ([]*entity.Site, int, error) {
	page.Normalize()
	items, err := u.sites.ListByOwner(ctx, ownerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := u.sites.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
