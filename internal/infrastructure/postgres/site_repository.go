package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

// SiteRepo implémentation du port SiteRepository sur PostgreSQL.
// Seuls lat/lng sont persistés ; le point GeoJSON est recalculé à chaque lecture,
// il ne peut donc jamais être désynchronisé.
type SiteRepo struct {
	q Querier
}

// NewSiteRepository construit l'adaptateur de persistance des sites.
func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

const siteColumns = `id, nom, adresse, lat, lng, owner_id, created_at, updated_at`

// Create persiste un nouveau site.
func (r *SiteRepo) Create(ctx context.Context, s *entity.Site) error {
	query := `
		INSERT INTO sites (` + siteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Nom, s.Adresse, s.Lat, s.Lng, s.OwnerID, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

// GetByID charge un site par ID.
func (r *SiteRepo) GetByID(ctx context.Context, id string) (*entity.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = $1`
	s, err := scanSite(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return s, nil
}

// Update réécrit un site existant.
func (r *SiteRepo) Update(ctx context.Context, s *entity.Site) error {
	query := `
		UPDATE sites SET nom = $2, adresse = $3, lat = $4, lng = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.Nom, s.Adresse, s.Lat, s.Lng, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update site: %w", err)
	}
	return nil
}

// Delete supprime un site par ID.
func (r *SiteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sites WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	return nil
}

// ListByOwner liste les sites d'un propriétaire avec pagination.
func (r *SiteRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Site, error) {
	query := `
		SELECT ` + siteColumns + ` FROM sites WHERE owner_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var list []*entity.Site
	for rows.Next() {
		var s entity.Site
		if err := rows.Scan(&s.ID, &s.Nom, &s.Adresse, &s.Lat, &s.Lng, &s.OwnerID,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		s.SyncLocation()
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountByOwner compte les sites d'un propriétaire.
func (r *SiteRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sites WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count sites: %w", err)
	}
	return total, nil
}

func scanSite(row pgx.Row) (*entity.Site, error) {
	var s entity.Site
	err := row.Scan(&s.ID, &s.Nom, &s.Adresse, &s.Lat, &s.Lng, &s.OwnerID,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.SyncLocation()
	return &s, nil
}
