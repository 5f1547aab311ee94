package entity

import "time"

// États valides d'un produit.
const (
	EtatBrut       = "brut"
	EtatTransforme = "transforme"
	EtatEmballe    = "emballe"
)

// Product représente un produit du catalogue, rattaché à un code de classification CPC.
// ProductValidation doit être vrai (validation admin) avant toute entrée dans le grand
// livre des mouvements ; IsStocker est un verrou à sens unique posé au premier dépôt.
type Product struct {
	ID                string
	CPCCode           string
	Nom               string
	Etat              string // brut, transforme, emballe
	OwnerID           string
	ProductValidation bool
	IsStocker         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidEtat vérifie qu'un état de produit est reconnu.
func ValidEtat(etat string) bool {
	switch etat {
	case EtatBrut, EtatTransforme, EtatEmballe:
		return true
	}
	return false
}
