package ledger

import (
	"context"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

// PassifUsecase opérations sur le grand livre des passifs.
type PassifUsecase struct {
	passifs  repository.PassifRepository
	products repository.ProductRepository
	sites    repository.SiteRepository
	users    repository.UserRepository
	audit    *audit.Recorder
	notifier Notifier
}

func NewPassifUsecase(
	passifs repository.PassifRepository,
	products repository.ProductRepository,
	sites repository.SiteRepository,
	users repository.UserRepository,
	auditRec *audit.Recorder,
	notifier Notifier,
) *PassifUsecase {
	return &PassifUsecase{
		passifs:  passifs,
		products: products,
		sites:    sites,
		users:    users,
		audit:    auditRec,
		notifier: notifier,
	}
}

// Add crédite le passif sur la clé (détenteur, site, produit, ayant droit) en
// un seul incrément atomique. La ligne est réactivée si archivée ; la raison
// transmise écrase la précédente (la dernière l'emporte) ; le prix unitaire
// n'est posé qu'à la création. L'ayant droit est notifié au mieux.
func (u *PassifUsecase) Add(ctx context.Context, detentaireID string, req dto.PassifAddRequest, meta audit.Meta) (*entity.Passif, error) {
	if !req.Quantite.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRaison(req.Raison) {
		return nil, domain.ErrInvalidInput
	}
	product, err := u.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	site, err := u.sites.GetByID(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, domain.ErrSiteNotFound
	}
	ayantDroit, err := u.users.GetByID(ctx, req.AyantDroitID)
	if err != nil {
		return nil, err
	}
	if ayantDroit == nil {
		return nil, domain.ErrUserNotFound
	}

	key := repository.PassifKey{
		DetentaireID: detentaireID,
		SiteID:       req.SiteID,
		ProductID:    req.ProductID,
		AyantDroitID: req.AyantDroitID,
	}
	passif, err := u.passifs.UpsertIncrement(ctx, key, req.Quantite, req.PrixUnitaire, req.Raison)
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, entity.AuditActionAdjust, entity.AuditEntityPassif, passif.ID, &detentaireID,
		nil, passif, meta)
	u.notifier.NotifyUser(ctx, ayantDroit.ID,
		"Nouveau passif enregistré",
		"Une dette vous concernant a été enregistrée ("+req.Raison+").",
		map[string]any{"passif_id": passif.ID, "quantite": req.Quantite.String()})
	return passif, nil
}

// GetOne retourne le passif désigné par sa clé 4-uplet.
func (u *PassifUsecase) GetOne(ctx context.Context, key repository.PassifKey) (*entity.Passif, error) {
	passif, err := u.passifs.FindOne(ctx, key)
	if err != nil {
		return nil, err
	}
	if passif == nil {
		return nil, domain.ErrNotFound
	}
	return passif, nil
}

// ListBySite retourne la page des passifs d'un site avec le total.
func (u *PassifUsecase) ListBySite(ctx context.Context, siteID string, page dto.PageRequest, includeArchived bool) ([]*entity.Passif, int, error) {
	page.Normalize()
	opts := repository.PassifListOptions{
		IncludeArchived: includeArchived,
		Limit:           page.Limit,
		Offset:          page.Offset(),
	}
	items, err := u.passifs.ListBySite(ctx, siteID, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.passifs.CountBySite(ctx, siteID, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
