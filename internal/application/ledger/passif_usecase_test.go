package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/ledger"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

type passifFixture struct {
	uc       *ledger.PassifUsecase
	passifs  *fakePassifRepo
	notifier *fakeNotifier
}

func newPassifFixture() *passifFixture {
	passifs := newFakePassifRepo()
	products := newFakeProductRepo(&entity.Product{ID: "prod-1", Nom: "Café", Etat: entity.EtatBrut})
	sites := newFakeSiteRepo(&entity.Site{ID: "site-1", Nom: "Dépôt central"})
	users := newFakeUserRepo(
		&entity.User{ID: "detenteur-1", Email: "d@harena.mg"},
		&entity.User{ID: "ayant-droit-1", Email: "a@harena.mg"},
	)
	notifier := &fakeNotifier{}
	return &passifFixture{
		uc:       ledger.NewPassifUsecase(passifs, products, sites, users, newTestRecorder(&fakeAuditRepo{}), notifier),
		passifs:  passifs,
		notifier: notifier,
	}
}

func passifReq(qty, prix, raison string) dto.PassifAddRequest {
	return dto.PassifAddRequest{
		SiteID:       "site-1",
		ProductID:    "prod-1",
		AyantDroitID: "ayant-droit-1",
		Quantite:     dec(qty),
		PrixUnitaire: dec(prix),
		Raison:       raison,
	}
}

// Deux crédits sur la même clé 4-uplet se cumulent sur une ligne, et la
// dernière raison écrase la précédente pour toute la ligne.
func TestPassif_DerniereRaisonLEmporte(t *testing.T) {
	f := newPassifFixture()
	ctx := context.Background()

	_, err := f.uc.Add(ctx, "detenteur-1", passifReq("10", "300", entity.RaisonVente), audit.Meta{})
	require.NoError(t, err)
	passif, err := f.uc.Add(ctx, "detenteur-1", passifReq("5", "999", entity.RaisonPerte), audit.Meta{})
	require.NoError(t, err)

	assert.True(t, passif.Quantite.Equal(dec("15")))
	assert.Equal(t, entity.RaisonPerte, passif.Raison, "la dernière raison écrase la précédente")
	assert.True(t, passif.PrixUnitaire.Equal(dec("300")), "le prix est figé à la création de la ligne")
	assert.Len(t, f.passifs.rows, 1)
}

func TestPassif_RaisonInconnueRefusee(t *testing.T) {
	f := newPassifFixture()

	_, err := f.uc.Add(context.Background(), "detenteur-1", passifReq("10", "300", "cadeau"), audit.Meta{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPassif_AyantDroitInconnuRefuse(t *testing.T) {
	f := newPassifFixture()
	req := passifReq("10", "300", entity.RaisonVente)
	req.AyantDroitID = "fantome"

	_, err := f.uc.Add(context.Background(), "detenteur-1", req, audit.Meta{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPassif_AyantDroitNotifie(t *testing.T) {
	f := newPassifFixture()

	_, err := f.uc.Add(context.Background(), "detenteur-1", passifReq("10", "300", entity.RaisonVente), audit.Meta{})
	require.NoError(t, err)

	require.Len(t, f.notifier.userCalls, 1)
	assert.Equal(t, "ayant-droit-1", f.notifier.userCalls[0].UserID)
}

func TestPassif_LectureParCle(t *testing.T) {
	f := newPassifFixture()
	ctx := context.Background()

	_, err := f.uc.Add(ctx, "detenteur-1", passifReq("10", "300", entity.RaisonVente), audit.Meta{})
	require.NoError(t, err)

	key := repository.PassifKey{
		DetentaireID: "detenteur-1",
		SiteID:       "site-1",
		ProductID:    "prod-1",
		AyantDroitID: "ayant-droit-1",
	}
	passif, err := f.uc.GetOne(ctx, key)
	require.NoError(t, err)
	assert.True(t, passif.Quantite.Equal(dec("10")))

	key.AyantDroitID = "ayant-droit-2"
	_, err = f.uc.GetOne(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Clés 4-uplet distinctes : un autre ayant droit sur le même produit et site
// ouvre une seconde ligne.
func TestPassif_CleQuadrupleDistingueLesLignes(t *testing.T) {
	f := newPassifFixture()
	ctx := context.Background()

	_, err := f.uc.Add(ctx, "detenteur-1", passifReq("10", "300", entity.RaisonVente), audit.Meta{})
	require.NoError(t, err)

	// Second ayant droit.
	users := newFakeUserRepo(
		&entity.User{ID: "detenteur-1"},
		&entity.User{ID: "ayant-droit-1"},
		&entity.User{ID: "ayant-droit-2"},
	)
	f.uc = ledger.NewPassifUsecase(f.passifs,
		newFakeProductRepo(&entity.Product{ID: "prod-1", Nom: "Café", Etat: entity.EtatBrut}),
		newFakeSiteRepo(&entity.Site{ID: "site-1", Nom: "Dépôt central"}),
		users, newTestRecorder(&fakeAuditRepo{}), f.notifier)

	req := passifReq("4", "300", entity.RaisonVente)
	req.AyantDroitID = "ayant-droit-2"
	_, err = f.uc.Add(ctx, "detenteur-1", req, audit.Meta{})
	require.NoError(t, err)

	assert.Len(t, f.passifs.rows, 2, "un ayant droit différent ouvre une autre ligne")
}
