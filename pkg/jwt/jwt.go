package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Types de jetons émis par l'application.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims inclut les claims standards JWT plus les champs propres à l'application.
// Role est embarqué pour que le middleware RBAC décide sans requête DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Role      string `json:"role"` // "acheteur" | "vendeur" | "admin"
	TokenType string `json:"token_type"`
}

// Options paramètres d'émission des jetons.
type Options struct {
	Secret            string
	Issuer            string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
}

// GenerateAccess émet un jeton d'accès signé HS256.
func GenerateAccess(opts Options, userID, role string) (string, error) {
	return generate(opts, userID, role, TypeAccess, opts.AccessExpiration)
}

// GenerateRefresh émet un jeton de rafraîchissement avec un JTI unique.
// Le JTI sert de clé dans le store de jetons (révocation au logout).
func GenerateRefresh(opts Options, userID, role string) (token, jti string, err error) {
	jti = uuid.New().String()
	token, err = generateWithID(opts, userID, role, TypeRefresh, opts.RefreshExpiration, jti)
	return token, jti, err
}

func generate(opts Options, userID, role, tokenType string, exp time.Duration) (string, error) {
	return generateWithID(opts, userID, role, tokenType, exp, "")
}

func generateWithID(opts Options, userID, role, tokenType string, exp time.Duration, jti string) (string, error) {
	if opts.Secret == "" {
		return "", fmt.Errorf("jwt: secret vide")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    opts.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
		},
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(opts.Secret))
}

// Parse valide le jeton et retourne ses claims.
// Retourne une erreur si le jeton est invalide, expiré ou mal signé.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vide")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims invalides")
	}
	return claims, nil
}

// ParseAccess valide un jeton et exige qu'il soit de type access.
func ParseAccess(secret, tokenString string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeAccess {
		return nil, fmt.Errorf("type de jeton inattendu: %s", claims.TokenType)
	}
	return claims, nil
}

// ParseRefresh valide un jeton et exige qu'il soit de type refresh.
func ParseRefresh(secret, tokenString string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeRefresh {
		return nil, fmt.Errorf("type de jeton inattendu: %s", claims.TokenType)
	}
	return claims, nil
}
