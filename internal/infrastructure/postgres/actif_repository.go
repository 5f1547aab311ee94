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

// ActifRepo implémentation du port ActifRepository sur PostgreSQL (pool ou tx).
type ActifRepo struct {
	q Querier
}

// NewActifRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewActifRepository(q Querier) *ActifRepo {
	return &ActifRepo{q: q}
}

const actifColumns = `id, user_id, site_id, product_id, quantite, prix_unitaire, is_active, archived_at, created_at, updated_at`

// UpsertIncrement incrémente atomiquement la quantité sur la clé naturelle.
// Une seule instruction : les incréments concurrents sur la même clé se sérialisent
// dans la base. Une ligne archivée est réactivée.
func (r *ActifRepo) UpsertIncrement(ctx context.Context, key repository.ActifKey, qty, prixUnitaire decimal.Decimal) (*entity.Actif, error) {
	query := `
		INSERT INTO actifs (id, user_id, site_id, product_id, quantite, prix_unitaire, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, now(), now())
		ON CONFLICT (user_id, site_id, product_id)
		DO UPDATE SET quantite = actifs.quantite + EXCLUDED.quantite,
			prix_unitaire = EXCLUDED.prix_unitaire,
			is_active = true, archived_at = NULL, updated_at = now()
		RETURNING ` + actifColumns
	row := r.q.QueryRow(ctx, query, uuid.New().String(), key.UserID, key.SiteID, key.ProductID, qty, prixUnitaire)
	a, err := scanActif(row)
	if err != nil {
		return nil, fmt.Errorf("upsert actif: %w", err)
	}
	return a, nil
}

// GetForUpdate charge la ligne en la verrouillant pour la durée de la transaction.
func (r *ActifRepo) GetForUpdate(ctx context.Context, key repository.ActifKey) (*entity.Actif, error) {
	query := `
		SELECT ` + actifColumns + `
		FROM actifs WHERE user_id = $1 AND site_id = $2 AND product_id = $3
		FOR UPDATE`
	row := r.q.QueryRow(ctx, query, key.UserID, key.SiteID, key.ProductID)
	a, err := scanActif(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get actif for update: %w", err)
	}
	return a, nil
}

// Update réécrit quantité, drapeau d'activité et date d'archivage.
func (r *ActifRepo) Update(ctx context.Context, actif *entity.Actif) error {
	query := `
		UPDATE actifs SET quantite = $2, prix_unitaire = $3, is_active = $4, archived_at = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		actif.ID, actif.Quantite, actif.PrixUnitaire, actif.IsActive, actif.ArchivedAt,
	)
	if err != nil {
		return fmt.Errorf("update actif: %w", err)
	}
	return nil
}

// ListByUser liste les actifs d'un utilisateur avec les noms joints pour affichage.
// Les lignes archivées sont exclues sauf si opts.IncludeArchived.
func (r *ActifRepo) ListByUser(ctx context.Context, userID string, opts repository.ActifListOptions) ([]*entity.Actif, error) {
	query := `
		SELECT a.id, a.user_id, a.site_id, a.product_id, a.quantite, a.prix_unitaire,
			a.is_active, a.archived_at, a.created_at, a.updated_at,
			u.nom, s.nom, p.nom
		FROM actifs a
		JOIN users u ON u.id = a.user_id
		JOIN sites s ON s.id = a.site_id
		JOIN products p ON p.id = a.product_id
		WHERE a.user_id = $1`
	args := []any{userID}
	query, args = appendActifFilters(query, args, opts)
	query += fmt.Sprintf(" ORDER BY a.updated_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list actifs: %w", err)
	}
	defer rows.Close()

	var list []*entity.Actif
	for rows.Next() {
		var a entity.Actif
		if err := rows.Scan(&a.ID, &a.UserID, &a.SiteID, &a.ProductID, &a.Quantite, &a.PrixUnitaire,
			&a.IsActive, &a.ArchivedAt, &a.CreatedAt, &a.UpdatedAt,
			&a.UserNom, &a.SiteNom, &a.ProductNom); err != nil {
			return nil, fmt.Errorf("scan actif: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CountByUser compte les actifs visibles avec les mêmes filtres que ListByUser.
func (r *ActifRepo) CountByUser(ctx context.Context, userID string, opts repository.ActifListOptions) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM actifs a
		JOIN products p ON p.id = a.product_id
		WHERE a.user_id = $1`
	args := []any{userID}
	query, args = appendActifFilters(query, args, opts)

	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count actifs: %w", err)
	}
	return total, nil
}

func appendActifFilters(query string, args []any, opts repository.ActifListOptions) (string, []any) {
	if !opts.IncludeArchived {
		query += " AND a.is_active = true"
	}
	if opts.SiteID != "" {
		args = append(args, opts.SiteID)
		query += fmt.Sprintf(" AND a.site_id = $%d", len(args))
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		query += fmt.Sprintf(" AND p.nom ILIKE $%d", len(args))
	}
	return query, args
}

func scanActif(row pgx.Row) (*entity.Actif, error) {
	var a entity.Actif
	err := row.Scan(&a.ID, &a.UserID, &a.SiteID, &a.ProductID, &a.Quantite, &a.PrixUnitaire,
		&a.IsActive, &a.ArchivedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
