package ledger

import (
	"context"

	"github.com/harenatech/harena-api/internal/domain/repository"
)

// TxRepos dépôts liés à une même transaction. Fournis par le TxRunner à la
// fonction exécutée ; ne doivent pas être retenus au-delà.
type TxRepos struct {
	Actifs     repository.ActifRepository
	DepotItems repository.DepotItemRepository
	Movements  repository.StockMovementRepository
	Products   repository.ProductRepository
}

// TxRunner exécute fn dans une transaction : commit si fn retourne nil,
// rollback sinon.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// Notifier pousse les notifications émises par les opérations du grand livre.
// Implémenté par notify.Service ; les deux appels sont au mieux.
type Notifier interface {
	NotifyUser(ctx context.Context, userID, titre, message string, data map[string]any)
	NotifyAllAdmins(titre, message string, data map[string]any)
}
