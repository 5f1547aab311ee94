package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harenatech/harena-api/internal/application/ledger"
	"github.com/harenatech/harena-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner exécute des callbacks dans une transaction PostgreSQL, avec des
// adaptateurs attachés à la tx. C'est lui qui garantit l'atomicité des séquences
// multi-lignes du grand livre (transfert, mouvement + verrou produit).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construit le runner sur le pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run démarre une transaction, exécute fn avec les dépôts attachés à la tx,
// puis Commit si fn réussit, Rollback sinon.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ledger.TxRepos{
		Actifs:     NewActifRepository(tx),
		DepotItems: NewDepotItemRepository(tx),
		Movements:  NewStockMovementRepository(tx),
		Products:   NewProductRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Les adaptateurs acceptent pool ou tx ; on matérialise l'exigence ici.
var (
	_ repository.ActifRepository         = (*ActifRepo)(nil)
	_ repository.DepotItemRepository     = (*DepotItemRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
)
