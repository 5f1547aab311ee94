package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harenatech/harena-api/pkg/config"
)

// TokenStore liste blanche des jetons de rafraîchissement dans Redis.
// Clé = JTI du jeton, valeur = user id, TTL = durée de vie du refresh.
// Un jeton absent du store est considéré révoqué même si sa signature est valide.
type TokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// New construit le store sur un client Redis.
func New(cfg config.RedisConfig, ttl time.Duration) *TokenStore {
	return &TokenStore{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: ttl,
	}
}

// NewWithClient construit le store sur un client existant (tests).
func NewWithClient(rdb *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{rdb: rdb, ttl: ttl}
}

func key(jti string) string { return "refresh:" + jti }

// Save enregistre un JTI pour un utilisateur, avec expiration.
func (s *TokenStore) Save(ctx context.Context, jti, userID string) error {
	if err := s.rdb.Set(ctx, key(jti), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// IsValid vérifie qu'un JTI est présent et appartient bien à userID.
func (s *TokenStore) IsValid(ctx context.Context, jti, userID string) (bool, error) {
	v, err := s.rdb.Get(ctx, key(jti)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get refresh token: %w", err)
	}
	return v == userID, nil
}

// Revoke supprime un JTI (logout ou rotation).
func (s *TokenStore) Revoke(ctx context.Context, jti string) error {
	if err := s.rdb.Del(ctx, key(jti)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// Ping vérifie la connexion Redis au démarrage.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
