package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de mouvement de stock.
const (
	MovementTypeDepot     = "depot"
	MovementTypeRetrait   = "retrait"
	MovementTypeTransfert = "transfert"
	MovementTypeReglement = "reglement"
)

// StockMovement ligne immuable du grand livre des mouvements : jamais modifiée après
// création. Les noms des sites sont dénormalisés à l'écriture — ils restent figés même
// si le site est renommé ensuite. Le solde par produit n'est jamais stocké : il se
// dérive du grand livre (dépôts moins tout le reste).
type StockMovement struct {
	ID             string
	OperatorID     string
	OriginSiteID   string
	OriginSiteNom  string
	DestSiteID     string
	DestSiteNom    string
	ProductID      string
	Quantite       decimal.Decimal
	PrixUnitaire   decimal.Decimal
	Type           string // depot, retrait, transfert, reglement
	Observation    string
	CreatedAt      time.Time
}

// ValidMovementType vérifie qu'un type de mouvement est reconnu.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeDepot, MovementTypeRetrait, MovementTypeTransfert, MovementTypeReglement:
		return true
	}
	return false
}

// ProductBalance solde dérivé d'un produit pour un opérateur :
// somme des dépôts moins somme des autres types de mouvement.
type ProductBalance struct {
	ProductID  string
	ProductNom string
	Balance    decimal.Decimal
}
