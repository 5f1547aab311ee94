package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

// DepotItemRepo implémentation des lignes de stock par dépôt sur PostgreSQL.
type DepotItemRepo struct {
	q Querier
}

// NewDepotItemRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewDepotItemRepository(q Querier) *DepotItemRepo {
	return &DepotItemRepo{q: q}
}

const depotItemColumns = `id, owner_id, depot_id, product_id, quantite, prix_unitaire, last_update, created_at`

// Get charge une ligne par sa clé ; (nil, nil) si absente.
func (r *DepotItemRepo) Get(ctx context.Context, key repository.DepotItemKey) (*entity.DepotItem, error) {
	query := `
		SELECT ` + depotItemColumns + `
		FROM depot_items WHERE owner_id = $1 AND depot_id = $2 AND product_id = $3`
	d, err := scanDepotItem(r.q.QueryRow(ctx, query, key.OwnerID, key.DepotID, key.ProductID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get depot item: %w", err)
	}
	return d, nil
}

// GetForUpdate charge et verrouille la ligne (SELECT FOR UPDATE).
func (r *DepotItemRepo) GetForUpdate(ctx context.Context, key repository.DepotItemKey) (*entity.DepotItem, error) {
	query := `
		SELECT ` + depotItemColumns + `
		FROM depot_items WHERE owner_id = $1 AND depot_id = $2 AND product_id = $3
		FOR UPDATE`
	d, err := scanDepotItem(r.q.QueryRow(ctx, query, key.OwnerID, key.DepotID, key.ProductID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get depot item for update: %w", err)
	}
	return d, nil
}

// UpsertIncrement ajoute delta à la quantité en une seule instruction atomique.
// La contrainte unique sur (owner_id, depot_id, product_id) empêche les doublons ;
// les incréments concurrents se sérialisent dans la base.
func (r *DepotItemRepo) UpsertIncrement(ctx context.Context, key repository.DepotItemKey, delta decimal.Decimal, prix *decimal.Decimal) (*entity.DepotItem, error) {
	query := `
		INSERT INTO depot_items (id, owner_id, depot_id, product_id, quantite, prix_unitaire, last_update, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, 0), now(), now())
		ON CONFLICT (owner_id, depot_id, product_id)
		DO UPDATE SET quantite = depot_items.quantite + EXCLUDED.quantite,
			prix_unitaire = COALESCE($6, depot_items.prix_unitaire),
			last_update = now()
		RETURNING ` + depotItemColumns
	d, err := scanDepotItem(r.q.QueryRow(ctx, query,
		uuid.New().String(), key.OwnerID, key.DepotID, key.ProductID, delta, prix))
	if err != nil {
		return nil, fmt.Errorf("upsert depot item: %w", err)
	}
	return d, nil
}

// DecrementIfAvailable retranche qty si et seulement si le stock courant suffit.
// La condition quantite >= qty dans l'UPDATE rend la vérification et le décrément
// atomiques ; aucune ligne affectée vaut stock insuffisant.
func (r *DepotItemRepo) DecrementIfAvailable(ctx context.Context, key repository.DepotItemKey, qty decimal.Decimal, prix *decimal.Decimal) (*entity.DepotItem, error) {
	query := `
		UPDATE depot_items
		SET quantite = quantite - $4,
			prix_unitaire = COALESCE($5, prix_unitaire),
			last_update = now()
		WHERE owner_id = $1 AND depot_id = $2 AND product_id = $3 AND quantite >= $4
		RETURNING ` + depotItemColumns
	d, err := scanDepotItem(r.q.QueryRow(ctx, query, key.OwnerID, key.DepotID, key.ProductID, qty, prix))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInsufficientStock
		}
		return nil, fmt.Errorf("decrement depot item: %w", err)
	}
	return d, nil
}

// ListByOwner liste les lignes d'un propriétaire, dernière mise à jour d'abord.
func (r *DepotItemRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.DepotItem, error) {
	query := `
		SELECT ` + depotItemColumns + `
		FROM depot_items WHERE owner_id = $1
		ORDER BY last_update DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list depot items: %w", err)
	}
	defer rows.Close()

	var list []*entity.DepotItem
	for rows.Next() {
		var d entity.DepotItem
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.DepotID, &d.ProductID,
			&d.Quantite, &d.PrixUnitaire, &d.LastUpdate, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan depot item: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CountByOwner compte les lignes d'un propriétaire.
func (r *DepotItemRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM depot_items WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count depot items: %w", err)
	}
	return total, nil
}

func scanDepotItem(row pgx.Row) (*entity.DepotItem, error) {
	var d entity.DepotItem
	err := row.Scan(&d.ID, &d.OwnerID, &d.DepotID, &d.ProductID,
		&d.Quantite, &d.PrixUnitaire, &d.LastUpdate, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
