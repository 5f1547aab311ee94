package entity

import "time"

// CPCCode code de classification hiérarchique des produits.
// Code est unique ; ParentCode pointe vers le niveau supérieur (vide à la racine).
type CPCCode struct {
	ID              string
	Code            string
	Nom             string
	Niveau          int
	ParentCode      string
	Correspondances string
	CreatedAt       time.Time
}
