package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
	"github.com/harenatech/harena-api/pkg/jwt"
	"github.com/harenatech/harena-api/pkg/logger"
)

// TokenStore liste blanche des jetons de rafraîchissement, par jti.
// Implémenté par redisstore.TokenStore.
type TokenStore interface {
	Save(ctx context.Context, jti, userID string) error
	IsValid(ctx context.Context, jti, userID string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}

// Mailer envoi de courriels transactionnels, au mieux.
type Mailer interface {
	Enabled() bool
	Send(to, subject, body string) error
}

// Usecase authentification : inscription, connexion, rotation des jetons.
type Usecase struct {
	users   repository.UserRepository
	tokens  TokenStore
	mailer  Mailer
	jwtOpts jwt.Options
	audit   *audit.Recorder
	log     *logger.Logger
}

func NewUsecase(
	users repository.UserRepository,
	tokens TokenStore,
	mailer Mailer,
	jwtOpts jwt.Options,
	auditRec *audit.Recorder,
	log *logger.Logger,
) *Usecase {
	return &Usecase{
		users:   users,
		tokens:  tokens,
		mailer:  mailer,
		jwtOpts: jwtOpts,
		audit:   auditRec,
		log:     log,
	}
}

// Register crée un compte non vérifié et non activé. Le rôle admin ne peut pas
// être demandé à l'inscription. Le courriel de vérification part au mieux : son
// échec n'annule pas l'inscription.
func (u *Usecase) Register(ctx context.Context, req dto.RegisterRequest, meta audit.Meta) (*entity.User, error) {
	role := req.Role
	if role == "" {
		role = entity.RoleAcheteur
	}
	if role == entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Nom:          req.Nom,
		Prenom:       req.Prenom,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	u.audit.Record(ctx, entity.AuditActionCreate, entity.AuditEntityUser, user.ID, &user.ID, nil, user.Email, meta)

	if u.mailer.Enabled() {
		if err := u.mailer.Send(user.Email,
			"Vérifiez votre adresse email",
			"Bienvenue ! Un administrateur doit valider votre compte avant la première connexion."); err != nil {
			u.log.Warn().Err(err).Str("email", user.Email).Msg("échec d'envoi du courriel de vérification")
		}
	}
	return user, nil
}

// Login vérifie les identifiants et émet la paire de jetons. Identifiants
// inconnus ou mot de passe faux : même erreur, sans distinction. Un compte non
// vérifié est refusé mais la tentative est tracée dans l'audit avec l'identité
// résolue.
func (u *Usecase) Login(ctx context.Context, req dto.LoginRequest, meta audit.Meta) (*dto.LoginResponse, error) {
	user, err := u.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		u.audit.Record(ctx, entity.AuditActionLogin, entity.AuditEntityUser, user.ID, &user.ID,
			nil, "tentative de connexion sur compte non vérifié", meta)
		return nil, domain.ErrAccountNotVerified
	}

	pair, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	u.audit.Record(ctx, entity.AuditActionLogin, entity.AuditEntityUser, user.ID, &user.ID, nil, nil, meta)
	return &dto.LoginResponse{
		Tokens: *pair,
		User:   ToUserResponse(user),
	}, nil
}

// Refresh fait tourner la paire de jetons : le jeton présenté doit être sur la
// liste blanche ; il en est retiré et un nouveau jti y est inscrit.
func (u *Usecase) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.TokenPair, error) {
	claims, err := jwt.ParseRefresh(u.jwtOpts.Secret, req.RefreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	ok, err := u.tokens.IsValid(ctx, claims.ID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, domain.ErrUnauthorized
	}

	if err := u.tokens.Revoke(ctx, claims.ID); err != nil {
		return nil, err
	}
	return u.issueTokens(ctx, user)
}

// Logout révoque le jeton de rafraîchissement présenté. Un jeton déjà invalide
// n'est pas une erreur.
func (u *Usecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := jwt.ParseRefresh(u.jwtOpts.Secret, refreshToken)
	if err != nil {
		return nil
	}
	return u.tokens.Revoke(ctx, claims.ID)
}

// VerifyEmail marque l'adresse comme vérifiée.
func (u *Usecase) VerifyEmail(ctx context.Context, userID string) error {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.EmailVerified = true
	user.UpdatedAt = time.Now().UTC()
	return u.users.Update(ctx, user)
}

// Activate valide le compte (opération admin). Le courriel de confirmation
// part au mieux.
func (u *Usecase) Activate(ctx context.Context, adminID, userID string, meta audit.Meta) error {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	prev := *user
	user.Validated = true
	user.UpdatedAt = time.Now().UTC()
	if err := u.users.Update(ctx, user); err != nil {
		return err
	}

	u.audit.Record(ctx, entity.AuditActionUpdate, entity.AuditEntityUser, user.ID, &adminID,
		map[string]any{"validated": prev.Validated}, map[string]any{"validated": true}, meta)

	if u.mailer.Enabled() {
		if err := u.mailer.Send(user.Email,
			"Compte activé",
			"Votre compte a été activé. Vous pouvez maintenant vous connecter."); err != nil {
			u.log.Warn().Err(err).Str("email", user.Email).Msg("échec d'envoi du courriel d'activation")
		}
	}
	return nil
}

func (u *Usecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenPair, error) {
	access, err := jwt.GenerateAccess(u.jwtOpts, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, jti, err := jwt.GenerateRefresh(u.jwtOpts, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := u.tokens.Save(ctx, jti, user.ID); err != nil {
		return nil, err
	}
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ToUserResponse projette l'utilisateur sans le hash du mot de passe.
func ToUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Nom:           user.Nom,
		Prenom:        user.Prenom,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		Validated:     user.Validated,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
