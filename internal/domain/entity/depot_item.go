package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepotItem ligne de stock par dépôt, représentation alternative de l'inventaire.
// Contrainte d'unicité sur (OwnerID, DepotID, ProductID) : les ajustements concurrents
// sur la même clé se sérialisent par l'incrément atomique de la base, pas par un
// verrou applicatif.
type DepotItem struct {
	ID           string
	OwnerID      string
	DepotID      string
	ProductID    string
	Quantite     decimal.Decimal
	PrixUnitaire decimal.Decimal
	LastUpdate   time.Time
	CreatedAt    time.Time
}
