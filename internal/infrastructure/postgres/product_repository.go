package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

// ProductRepo implémentation du port ProductRepository sur PostgreSQL (pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construit l'adaptateur de persistance des produits.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, cpc_code, nom, etat, owner_id, product_validation, is_stocker, created_at, updated_at`

// Create persiste un nouveau produit.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CPCCode, p.Nom, p.Etat, p.OwnerID, p.ProductValidation, p.IsStocker,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID charge un produit par ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update réécrit les champs modifiables d'un produit.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET cpc_code = $2, nom = $3, etat = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, p.ID, p.CPCCode, p.Nom, p.Etat, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List liste les produits selon les filtres explicites.
func (r *ProductRepo) List(ctx context.Context, opts repository.ProductListOptions) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []any
	query, args = appendProductFilters(query, args, opts)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CPCCode, &p.Nom, &p.Etat, &p.OwnerID,
			&p.ProductValidation, &p.IsStocker, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count compte les produits visibles avec les mêmes filtres que List.
func (r *ProductRepo) Count(ctx context.Context, opts repository.ProductListOptions) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE 1=1`
	var args []any
	query, args = appendProductFilters(query, args, opts)

	var total int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// SetValidation pose le drapeau de validation admin.
func (r *ProductRepo) SetValidation(ctx context.Context, id string, validated bool) error {
	query := `UPDATE products SET product_validation = $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, validated); err != nil {
		return fmt.Errorf("set product validation: %w", err)
	}
	return nil
}

// SetStocker pose le verrou "stocké". Jamais remis à faux par ce chemin.
func (r *ProductRepo) SetStocker(ctx context.Context, id string) error {
	query := `UPDATE products SET is_stocker = true, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("set product stocker: %w", err)
	}
	return nil
}

func appendProductFilters(query string, args []any, opts repository.ProductListOptions) (string, []any) {
	if opts.OwnerID != "" {
		args = append(args, opts.OwnerID)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if opts.Etat != "" {
		args = append(args, opts.Etat)
		query += fmt.Sprintf(" AND etat = $%d", len(args))
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		query += fmt.Sprintf(" AND nom ILIKE $%d", len(args))
	}
	return query, args
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CPCCode, &p.Nom, &p.Etat, &p.OwnerID,
		&p.ProductValidation, &p.IsStocker, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
