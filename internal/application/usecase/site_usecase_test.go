package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/usecase"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/pkg/logger"
)

type memSiteRepo struct {
	byID map[string]*entity.Site
}

func newMemSiteRepo() *memSiteRepo { return &memSiteRepo{byID: make(map[string]*entity.Site)} }

// Même contrat que l'adaptateur Postgres : la ligne est insérée telle quelle,
// identifiant et horodatages compris.
func (r *memSiteRepo) Create(_ context.Context, s *entity.Site) error {
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *memSiteRepo) GetByID(_ context.Context, id string) (*entity.Site, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSiteRepo) Update(_ context.Context, s *entity.Site) error {
	cp := *s
	r.byID[s.ID] = &cp
	return nil
}

func (r *memSiteRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *memSiteRepo) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*entity.Site, error) {
	var out []*entity.Site
	for _, s := range r.byID {
		if s.OwnerID == ownerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memSiteRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	sites, _ := r.ListByOwner(ctx, ownerID, 0, 0)
	return len(sites), nil
}

type memAuditRepo struct {
	entries []*entity.AuditLog
}

func (r *memAuditRepo) Create(_ context.Context, l *entity.AuditLog) error {
	cp := *l
	r.entries = append(r.entries, &cp)
	return nil
}
func (r *memAuditRepo) List(_ context.Context, _, _ int) ([]*entity.AuditLog, error) {
	return r.entries, nil
}
func (r *memAuditRepo) Count(_ context.Context) (int, error) { return len(r.entries), nil }

func newSiteUsecase() (*usecase.SiteUsecase, *memSiteRepo) {
	repo := newMemSiteRepo()
	rec := audit.NewRecorder(&memAuditRepo{}, logger.New(logger.Config{Env: "test", Level: "error"}))
	return usecase.NewSiteUsecase(repo, rec), repo
}

func TestSiteCreate_LocationSynchronisee(t *testing.T) {
	uc, _ := newSiteUsecase()

	site, err := uc.Create(context.Background(), "owner-1", dto.CreateSiteRequest{
		Nom: "Dépôt Analakely",
		Lat: -18.8792,
		Lng: 47.5079,
	}, audit.Meta{})
	require.NoError(t, err)

	assert.Equal(t, "Point", site.Location.Type)
	assert.Equal(t, [2]float64{47.5079, -18.8792}, site.Location.Coordinates,
		"le point GeoJSON doit être [lng, lat]")
	assert.NotEmpty(t, site.ID, "l'identifiant est posé par le service, l'adaptateur l'insère tel quel")
	assert.False(t, site.CreatedAt.IsZero())
	assert.False(t, site.UpdatedAt.IsZero())
}

func TestSiteCreate_CoordonneesHorsBornes(t *testing.T) {
	uc, _ := newSiteUsecase()

	_, err := uc.Create(context.Background(), "owner-1", dto.CreateSiteRequest{
		Nom: "Nulle part",
		Lat: 95,
		Lng: 0,
	}, audit.Meta{})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}

// Déplacer un site recalcule son point GeoJSON.
func TestSiteUpdate_ResynchroniseLaLocation(t *testing.T) {
	uc, _ := newSiteUsecase()
	ctx := context.Background()

	site, err := uc.Create(ctx, "owner-1", dto.CreateSiteRequest{Nom: "Dépôt", Lat: -18.8792, Lng: 47.5079}, audit.Meta{})
	require.NoError(t, err)

	lat, lng := -21.4527, 47.0857
	updated, err := uc.Update(ctx, "owner-1", entity.RoleVendeur, site.ID,
		dto.UpdateSiteRequest{Lat: &lat, Lng: &lng}, audit.Meta{})
	require.NoError(t, err)

	assert.Equal(t, [2]float64{47.0857, -21.4527}, updated.Location.Coordinates)
}

func TestSiteUpdate_SeulLeProprietaire(t *testing.T) {
	uc, _ := newSiteUsecase()
	ctx := context.Background()

	site, err := uc.Create(ctx, "owner-1", dto.CreateSiteRequest{Nom: "Dépôt", Lat: 0, Lng: 0}, audit.Meta{})
	require.NoError(t, err)

	nom := "Volé"
	_, err = uc.Update(ctx, "intrus", entity.RoleVendeur, site.ID,
		dto.UpdateSiteRequest{Nom: &nom}, audit.Meta{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Un admin, lui, peut modifier.
	_, err = uc.Update(ctx, "admin-1", entity.RoleAdmin, site.ID,
		dto.UpdateSiteRequest{Nom: &nom}, audit.Meta{})
	assert.NoError(t, err)
}

func TestSiteDelete_Introuvable(t *testing.T) {
	uc, _ := newSiteUsecase()

	err := uc.Delete(context.Background(), "owner-1", entity.RoleVendeur, "site-fantome", audit.Meta{})
	assert.ErrorIs(t, err, domain.ErrSiteNotFound)
}
