package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/harenatech/harena-api/pkg/jwt"
)

var testOpts = pkgjwt.Options{
	Secret:            "secret-de-test",
	Issuer:            "harena-test",
	AccessExpiration:  time.Hour,
	RefreshExpiration: 24 * time.Hour,
}

func TestGenerateAccess_ParseRoundTrip(t *testing.T) {
	tok, err := pkgjwt.GenerateAccess(testOpts, "user-1", "vendeur")
	require.NoError(t, err)

	claims, err := pkgjwt.ParseAccess(testOpts.Secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "vendeur", claims.Role)
	assert.Equal(t, pkgjwt.TypeAccess, claims.TokenType)
	assert.Equal(t, "harena-test", claims.Issuer)
}

func TestGenerateRefresh_JTIUnique(t *testing.T) {
	tok1, jti1, err := pkgjwt.GenerateRefresh(testOpts, "user-1", "acheteur")
	require.NoError(t, err)
	_, jti2, err := pkgjwt.GenerateRefresh(testOpts, "user-1", "acheteur")
	require.NoError(t, err)

	assert.NotEmpty(t, jti1)
	assert.NotEqual(t, jti1, jti2, "chaque jeton de rafraîchissement doit avoir son propre JTI")

	claims, err := pkgjwt.ParseRefresh(testOpts.Secret, tok1)
	require.NoError(t, err)
	assert.Equal(t, jti1, claims.ID, "le JTI doit être porté dans le claim standard ID")
}

// Un jeton de rafraîchissement présenté là où un jeton d'accès est attendu doit
// être refusé, et inversement.
func TestParse_TypeDeJetonExige(t *testing.T) {
	access, err := pkgjwt.GenerateAccess(testOpts, "user-1", "admin")
	require.NoError(t, err)
	refresh, _, err := pkgjwt.GenerateRefresh(testOpts, "user-1", "admin")
	require.NoError(t, err)

	_, err = pkgjwt.ParseAccess(testOpts.Secret, refresh)
	assert.Error(t, err, "un refresh ne doit pas passer pour un access")
	_, err = pkgjwt.ParseRefresh(testOpts.Secret, access)
	assert.Error(t, err, "un access ne doit pas passer pour un refresh")
}

func TestParse_MauvaisSecret(t *testing.T) {
	tok, err := pkgjwt.GenerateAccess(testOpts, "user-1", "admin")
	require.NoError(t, err)

	_, err = pkgjwt.ParseAccess("autre-secret", tok)
	assert.Error(t, err)
}

func TestParse_JetonExpire(t *testing.T) {
	opts := testOpts
	opts.AccessExpiration = -time.Minute
	tok, err := pkgjwt.GenerateAccess(opts, "user-1", "admin")
	require.NoError(t, err)

	_, err = pkgjwt.ParseAccess(opts.Secret, tok)
	assert.Error(t, err, "un jeton expiré doit être refusé")
}

func TestGenerate_SecretVide(t *testing.T) {
	_, err := pkgjwt.GenerateAccess(pkgjwt.Options{}, "user-1", "admin")
	assert.Error(t, err)
}
