package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Actif position de stock positive d'un utilisateur pour un produit sur un site.
// Au plus une ligne active par clé (UserID, SiteID, ProductID). Quand la quantité
// atteint exactement zéro par retrait, la ligne est archivée (IsActive=false,
// ArchivedAt posé), jamais supprimée : l'historique est conservé.
type Actif struct {
	ID           string
	UserID       string
	SiteID       string
	ProductID    string
	Quantite     decimal.Decimal
	PrixUnitaire decimal.Decimal
	IsActive     bool
	ArchivedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Champs d'affichage joints en lecture ; jamais persistés sur cette table.
	UserNom    string
	SiteNom    string
	ProductNom string
}
