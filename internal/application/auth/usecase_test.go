package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/auth"
	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/pkg/jwt"
	"github.com/harenatech/harena-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doubles de test
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	byID map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{byID: make(map[string]*entity.User)} }

// Même contrat que l'adaptateur Postgres : la ligne est insérée telle quelle,
// identifiant et horodatages compris.
func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email && existing.DeletedAt == nil {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUserRepo) SoftDelete(_ context.Context, id string) error {
	if u, ok := r.byID[id]; ok {
		now := time.Now()
		u.DeletedAt = &now
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		if u.DeletedAt == nil {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) Count(ctx context.Context) (int, error) {
	users, _ := r.List(ctx, 0, 0)
	return len(users), nil
}

type memTokenStore struct {
	jtis map[string]string // jti → userID
}

func newMemTokenStore() *memTokenStore { return &memTokenStore{jtis: make(map[string]string)} }

func (s *memTokenStore) Save(_ context.Context, jti, userID string) error {
	s.jtis[jti] = userID
	return nil
}

func (s *memTokenStore) IsValid(_ context.Context, jti, userID string) (bool, error) {
	owner, ok := s.jtis[jti]
	return ok && owner == userID, nil
}

func (s *memTokenStore) Revoke(_ context.Context, jti string) error {
	delete(s.jtis, jti)
	return nil
}

type memMailer struct {
	sent []string // destinataires
}

func (m *memMailer) Enabled() bool { return true }
func (m *memMailer) Send(to, _, _ string) error {
	m.sent = append(m.sent, to)
	return nil
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

type authFixture struct {
	uc     *auth.Usecase
	users  *memUserRepo
	tokens *memTokenStore
	mailer *memMailer
	audit  *memAuditRepo
}

var testJWTOpts = jwt.Options{
	Secret:            "secret-de-test",
	Issuer:            "harena-test",
	AccessExpiration:  time.Hour,
	RefreshExpiration: 24 * time.Hour,
}

func newAuthFixture() *authFixture {
	users := newMemUserRepo()
	tokens := newMemTokenStore()
	mailer := &memMailer{}
	auditRepo := &memAuditRepo{}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return &authFixture{
		uc:     auth.NewUsecase(users, tokens, mailer, testJWTOpts, audit.NewRecorder(auditRepo, log), log),
		users:  users,
		tokens: tokens,
		mailer: mailer,
		audit:  auditRepo,
	}
}

func registerReq(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    email,
		Password: "motdepasse123",
		Nom:      "Rakoto",
		Prenom:   "Jean",
	}
}

// registerActive inscrit puis active un compte, raccourci des tests de connexion.
func (f *authFixture) registerActive(t *testing.T, email string) *entity.User {
	t.Helper()
	ctx := context.Background()
	user, err := f.uc.Register(ctx, registerReq(email), audit.Meta{})
	require.NoError(t, err)
	require.NoError(t, f.uc.VerifyEmail(ctx, user.ID))
	require.NoError(t, f.uc.Activate(ctx, "admin-1", user.ID, audit.Meta{}))
	return user
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CompteCreeNonVerifie(t *testing.T) {
	f := newAuthFixture()

	user, err := f.uc.Register(context.Background(), registerReq("jean@harena.mg"), audit.Meta{})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAcheteur, user.Role, "rôle par défaut : acheteur")
	assert.False(t, user.EmailVerified)
	assert.False(t, user.Validated)
	assert.NotEqual(t, "motdepasse123", user.PasswordHash, "le mot de passe ne doit jamais être stocké en clair")
	assert.Contains(t, f.mailer.sent, "jean@harena.mg", "courriel de vérification envoyé")
}

// L'entité arrive au dépôt déjà complète : l'adaptateur insère id et
// horodatages tels quels, c'est au service de les poser.
func TestRegister_IdentifiantEtHorodatagesPoses(t *testing.T) {
	f := newAuthFixture()

	user, err := f.uc.Register(context.Background(), registerReq("jean@harena.mg"), audit.Meta{})
	require.NoError(t, err)

	require.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())

	stored, err := f.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, user.ID, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero(), "la ligne persistée porte les valeurs posées par le service")
}

func TestRegister_EmailDejaPris(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.uc.Register(ctx, registerReq("jean@harena.mg"), audit.Meta{})
	require.NoError(t, err)
	_, err = f.uc.Register(ctx, registerReq("jean@harena.mg"), audit.Meta{})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RoleAdminInterdit(t *testing.T) {
	f := newAuthFixture()
	req := registerReq("jean@harena.mg")
	req.Role = entity.RoleAdmin

	_, err := f.uc.Register(context.Background(), req, audit.Meta{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un compte non activé ne peut pas se connecter, mais la tentative est tracée
// dans le journal d'audit avec l'identité résolue.
func TestLogin_CompteNonVerifieTrace(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user, err := f.uc.Register(ctx, registerReq("jean@harena.mg"), audit.Meta{})
	require.NoError(t, err)
	auditAvant := len(f.audit.entries)

	_, err = f.uc.Login(ctx, dto.LoginRequest{Email: "jean@harena.mg", Password: "motdepasse123"},
		audit.Meta{IP: "10.0.0.9"})
	assert.ErrorIs(t, err, domain.ErrAccountNotVerified)

	require.Len(t, f.audit.entries, auditAvant+1, "la tentative doit laisser une entrée d'audit")
	entry := f.audit.entries[len(f.audit.entries)-1]
	assert.Equal(t, entity.AuditActionLogin, entry.Action)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, user.ID, *entry.UserID, "l'entrée porte l'identité résolue, pas l'anonyme")
}

func TestLogin_MauvaisMotDePasse(t *testing.T) {
	f := newAuthFixture()
	f.registerActive(t, "jean@harena.mg")

	_, err := f.uc.Login(context.Background(),
		dto.LoginRequest{Email: "jean@harena.mg", Password: "mauvais"}, audit.Meta{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmetLaPaireDeJetons(t *testing.T) {
	f := newAuthFixture()
	user := f.registerActive(t, "jean@harena.mg")

	out, err := f.uc.Login(context.Background(),
		dto.LoginRequest{Email: "jean@harena.mg", Password: "motdepasse123"}, audit.Meta{})
	require.NoError(t, err)

	claims, err := jwt.ParseAccess(testJWTOpts.Secret, out.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	refreshClaims, err := jwt.ParseRefresh(testJWTOpts.Secret, out.Tokens.RefreshToken)
	require.NoError(t, err)
	ok, err := f.tokens.IsValid(context.Background(), refreshClaims.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, ok, "le JTI du refresh doit être sur la liste blanche")
}

// Le rafraîchissement fait tourner les jetons : l'ancien JTI est révoqué, le
// nouveau inscrit.
func TestRefresh_RotationDesJetons(t *testing.T) {
	f := newAuthFixture()
	f.registerActive(t, "jean@harena.mg")
	ctx := context.Background()

	out, err := f.uc.Login(ctx, dto.LoginRequest{Email: "jean@harena.mg", Password: "motdepasse123"}, audit.Meta{})
	require.NoError(t, err)

	pair, err := f.uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: out.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// L'ancien refresh ne doit plus passer.
	_, err = f.uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: out.Tokens.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un refresh déjà consommé est refusé")

	// Le nouveau, si.
	_, err = f.uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.NoError(t, err)
}

func TestRefresh_JetonAccesRefuse(t *testing.T) {
	f := newAuthFixture()
	f.registerActive(t, "jean@harena.mg")
	ctx := context.Background()

	out, err := f.uc.Login(ctx, dto.LoginRequest{Email: "jean@harena.mg", Password: "motdepasse123"}, audit.Meta{})
	require.NoError(t, err)

	_, err = f.uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: out.Tokens.AccessToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogout_RevoqueLeJeton(t *testing.T) {
	f := newAuthFixture()
	f.registerActive(t, "jean@harena.mg")
	ctx := context.Background()

	out, err := f.uc.Login(ctx, dto.LoginRequest{Email: "jean@harena.mg", Password: "motdepasse123"}, audit.Meta{})
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(ctx, out.Tokens.RefreshToken))
	_, err = f.uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: out.Tokens.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
