package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

var _ repository.PassifRepository = (*PassifRepo)(nil)

// PassifRepo implémentation du port PassifRepository sur PostgreSQL (pool ou tx).
type PassifRepo struct {
	q Querier
}

// NewPassifRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewPassifRepository(q Querier) *PassifRepo {
	return &PassifRepo{q: q}
}

const passifColumns = `id, detentaire_id, site_id, product_id, ayant_droit_id, quantite, prix_unitaire, raison, is_active, archived_at, created_at, updated_at`

// UpsertIncrement incrémente atomiquement la quantité sur la clé 4-uplet.
// La ligne est toujours réactivée et la raison écrasée (la dernière l'emporte) ;
// le prix unitaire n'est posé qu'à la création.
func (r *PassifRepo) UpsertIncrement(ctx context.Context, key repository.PassifKey, qty, prixUnitaire decimal.Decimal, raison string) (*entity.Passif, error) {
	query := `
		INSERT INTO passifs (id, detentaire_id, site_id, product_id, ayant_droit_id, quantite, prix_unitaire, raison, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, now(), now())
		ON CONFLICT (detentaire_id, site_id, product_id, ayant_droit_id)
		DO UPDATE SET quantite = passifs.quantite + EXCLUDED.quantite,
			raison = EXCLUDED.raison,
			is_active = true, archived_at = NULL, updated_at = now()
		RETURNING ` + passifColumns
	row := r.q.QueryRow(ctx, query,
		uuid.New().String(), key.DetentaireID, key.SiteID, key.ProductID, key.AyantDroitID,
		qty, prixUnitaire, raison,
	)
	p, err := scanPassif(row)
	if err != nil {
		return nil, fmt.Errorf("upsert passif: %w", err)
	}
	return p, nil
}

// FindOne charge un passif par sa clé naturelle, avec les noms joints.
func (r *PassifRepo) FindOne(ctx context.Context, key repository.PassifKey) (*entity.Passif, error) {
	query := `
		SELECT p.id, p.detentaire_id, p.site_id, p.product_id, p.ayant_droit_id,
			p.quantite, p.prix_unitaire, p.raison, p.is_active, p.archived_at,
			p.created_at, p.updated_at,
			d.nom, ad.nom, s.nom, pr.nom
		FROM passifs p
		JOIN users d ON d.id = p.detentaire_id
		JOIN users ad ON ad.id = p.ayant_droit_id
		JOIN sites s ON s.id = p.site_id
		JOIN products pr ON pr.id = p.product_id
		WHERE p.detentaire_id = $1 AND p.site_id = $2 AND p.product_id = $3 AND p.ayant_droit_id = $4`
	var p entity.Passif
	err := r.q.QueryRow(ctx, query, key.DetentaireID, key.SiteID, key.ProductID, key.AyantDroitID).Scan(
		&p.ID, &p.DetentaireID, &p.SiteID, &p.ProductID, &p.AyantDroitID,
		&p.Quantite, &p.PrixUnitaire, &p.Raison, &p.IsActive, &p.ArchivedAt,
		&p.CreatedAt, &p.UpdatedAt,
		&p.DetentaireNom, &p.AyantDroitNom, &p.SiteNom, &p.ProductNom,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find passif: %w", err)
	}
	return &p, nil
}

// ListBySite liste les passifs d'un site ; les lignes archivées sont exclues par défaut.
func (r *PassifRepo) ListBySite(ctx context.Context, siteID string, opts repository.PassifListOptions) ([]*entity.Passif, error) {
	query := `
		SELECT p.id, p.detentaire_id, p.site_id, p.product_id, p.ayant_droit_id,
			p.quantite, p.prix_unitaire, p.raison, p.is_active, p.archived_at,
			p.created_at, p.updated_at,
			d.nom, ad.nom, s.nom, pr.nom
		FROM passifs p
		JOIN users d ON d.id = p.detentaire_id
		JOIN users ad ON ad.id = p.ayant_droit_id
		JOIN sites s ON s.id = p.site_id
		JOIN products pr ON pr.id = p.product_id
		WHERE p.site_id = $1`
	args := []any{siteID}
	if !opts.IncludeArchived {
		query += " AND p.is_active = true"
	}
	query += fmt.Sprintf(" ORDER BY p.updated_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list passifs: %w", err)
	}
	defer rows.Close()

	var list []*entity.Passif
	for rows.Next() {
		var p entity.Passif
		if err := rows.Scan(&p.ID, &p.DetentaireID, &p.SiteID, &p.ProductID, &p.AyantDroitID,
			&p.Quantite, &p.PrixUnitaire, &p.Raison, &p.IsActive, &p.ArchivedAt,
			&p.CreatedAt, &p.UpdatedAt,
			&p.DetentaireNom, &p.AyantDroitNom, &p.SiteNom, &p.ProductNom); err != nil {
			return nil, fmt.Errorf("scan passif: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountBySite compte les passifs visibles d'un site.
func (r *PassifRepo) CountBySite(ctx context.Context, siteID string, opts repository.PassifListOptions) (int, error) {
	query := `SELECT COUNT(*) FROM passifs WHERE site_id = $1`
	if !opts.IncludeArchived {
		query += " AND is_active = true"
	}
	var total int
	if err := r.q.QueryRow(ctx, query, siteID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count passifs: %w", err)
	}
	return total, nil
}

func scanPassif(row pgx.Row) (*entity.Passif, error) {
	var p entity.Passif
	err := row.Scan(&p.ID, &p.DetentaireID, &p.SiteID, &p.ProductID, &p.AyantDroitID,
		&p.Quantite, &p.PrixUnitaire, &p.Raison, &p.IsActive, &p.ArchivedAt,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
