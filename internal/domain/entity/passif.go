package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raisons valides d'un passif.
const (
	RaisonRetrait = "retrait"
	RaisonVente   = "vente"
	RaisonPerte   = "perte"
	RaisonAutre   = "autre"
)

// Passif dette/créance : distingue qui détient physiquement le produit (DetentaireID)
// de qui en est l'ayant droit (AyantDroitID). Clé naturelle : (DetentaireID, SiteID,
// ProductID, AyantDroitID). PrixUnitaire est figé à la création du passif. Raison est
// écrasée à chaque incrément : la dernière raison l'emporte pour toute la ligne.
type Passif struct {
	ID           string
	DetentaireID string
	SiteID       string
	ProductID    string
	AyantDroitID string
	Quantite     decimal.Decimal
	PrixUnitaire decimal.Decimal
	Raison       string // retrait, vente, perte, autre
	IsActive     bool
	ArchivedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Champs d'affichage joints en lecture.
	DetentaireNom string
	AyantDroitNom string
	SiteNom       string
	ProductNom    string
}

// ValidRaison vérifie qu'une raison de passif est reconnue.
func ValidRaison(raison string) bool {
	switch raison {
	case RaisonRetrait, RaisonVente, RaisonPerte, RaisonAutre:
		return true
	}
	return false
}
