package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

var _ repository.CPCRepository = (*CPCRepo)(nil)

// CPCRepo implémentation du référentiel CPC sur PostgreSQL.
type CPCRepo struct {
	q Querier
}

// NewCPCRepository construit l'adaptateur du référentiel CPC.
func NewCPCRepository(q Querier) *CPCRepo {
	return &CPCRepo{q: q}
}

const cpcColumns = `id, code, nom, niveau, parent_code, correspondances, created_at`

// Create persiste un code CPC ; ErrDuplicate si le code existe déjà.
func (r *CPCRepo) Create(ctx context.Context, c *entity.CPCCode) error {
	query := `
		INSERT INTO cpc_codes (` + cpcColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Code, c.Nom, c.Niveau, c.ParentCode, c.Correspondances, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cpc code: %w", err)
	}
	return nil
}

// GetByCode charge un code CPC par son code.
func (r *CPCRepo) GetByCode(ctx context.Context, code string) (*entity.CPCCode, error) {
	query := `SELECT ` + cpcColumns + ` FROM cpc_codes WHERE code = $1`
	var c entity.CPCCode
	err := r.q.QueryRow(ctx, query, code).Scan(
		&c.ID, &c.Code, &c.Nom, &c.Niveau, &c.ParentCode, &c.Correspondances, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cpc code: %w", err)
	}
	return &c, nil
}

// List liste les codes CPC par code croissant avec pagination.
func (r *CPCRepo) List(ctx context.Context, limit, offset int) ([]*entity.CPCCode, error) {
	query := `SELECT ` + cpcColumns + ` FROM cpc_codes ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cpc codes: %w", err)
	}
	defer rows.Close()
	return collectCPC(rows)
}

// ListAll retourne tout le référentiel trié par code (export CSV).
func (r *CPCRepo) ListAll(ctx context.Context) ([]*entity.CPCCode, error) {
	query := `SELECT ` + cpcColumns + ` FROM cpc_codes ORDER BY code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all cpc codes: %w", err)
	}
	defer rows.Close()
	return collectCPC(rows)
}

// Count compte les codes du référentiel.
func (r *CPCRepo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM cpc_codes`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count cpc codes: %w", err)
	}
	return total, nil
}

func collectCPC(rows pgx.Rows) ([]*entity.CPCCode, error) {
	var list []*entity.CPCCode
	for rows.Next() {
		var c entity.CPCCode
		if err := rows.Scan(&c.ID, &c.Code, &c.Nom, &c.Niveau, &c.ParentCode,
			&c.Correspondances, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cpc code: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
