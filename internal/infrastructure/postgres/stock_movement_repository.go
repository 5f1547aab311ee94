package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

// StockMovementRepo implémentation du grand livre des mouvements sur PostgreSQL.
// Aucune mise à jour ni suppression : les lignes sont immuables.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, operator_id, origin_site_id, origin_site_nom, dest_site_id, dest_site_nom, product_id, quantite, prix_unitaire, type, observation, created_at`

// Create persiste une nouvelle ligne du grand livre.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.OperatorID, m.OriginSiteID, m.OriginSiteNom, m.DestSiteID, m.DestSiteNom,
		m.ProductID, m.Quantite, m.PrixUnitaire, m.Type, m.Observation, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByOperator liste les mouvements d'un opérateur, du plus récent au plus ancien.
func (r *StockMovementRepo) ListByOperator(ctx context.Context, operatorID string, opts repository.MovementListOptions) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE operator_id = $1`
	args := []any{operatorID}
	query, args = appendMovementFilters(query, args, opts)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.OperatorID, &m.OriginSiteID, &m.OriginSiteNom,
			&m.DestSiteID, &m.DestSiteNom, &m.ProductID, &m.Quantite, &m.PrixUnitaire,
			&m.Type, &m.Observation, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByOperator compte les mouvements visibles par la page.
func (r *StockMovementRepo) CountByOperator(ctx context.Context, operatorID string, opts repository.MovementListOptions) (int, error) {
	query := `SELECT COUNT(*) FROM stock_movements WHERE operator_id = $1`
	args := []any{operatorID}
	query, args = appendMovementFilters(query, args, opts)

	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

// SumBalancesByOperator agrège tout l'historique de l'opérateur par produit :
// +quantité pour un dépôt, -quantité pour tout autre type. L'agrégat ignore
// volontairement les filtres de la page.
func (r *StockMovementRepo) SumBalancesByOperator(ctx context.Context, operatorID string) ([]*entity.ProductBalance, error) {
	query := `
		SELECT m.product_id, p.nom,
			COALESCE(SUM(CASE WHEN m.type = 'depot' THEN m.quantite ELSE -m.quantite END), 0)
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.operator_id = $1
		GROUP BY m.product_id, p.nom
		ORDER BY p.nom`
	rows, err := r.q.Query(ctx, query, operatorID)
	if err != nil {
		return nil, fmt.Errorf("sum balances: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductBalance
	for rows.Next() {
		var b entity.ProductBalance
		if err := rows.Scan(&b.ProductID, &b.ProductNom, &b.Balance); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func appendMovementFilters(query string, args []any, opts repository.MovementListOptions) (string, []any) {
	if opts.SiteID != "" {
		args = append(args, opts.SiteID)
		query += fmt.Sprintf(" AND (origin_site_id = $%d OR dest_site_id = $%d)", len(args), len(args))
	}
	if opts.ProductID != "" {
		args = append(args, opts.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if opts.From != nil {
		args = append(args, *opts.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if opts.To != nil {
		args = append(args, *opts.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	return query, args
}
