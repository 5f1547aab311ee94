package domain

import "errors"

// Erreurs de domaine (sans dépendances externes). Les handlers HTTP les traduisent
// en codes de statut ; les couches basses les enveloppent avec %w.
var (
	ErrNotFound             = errors.New("ressource introuvable")
	ErrUserNotFound         = errors.New("utilisateur introuvable")
	ErrSiteNotFound         = errors.New("site introuvable")
	ErrEmailAlreadyExists   = errors.New("cet email est déjà enregistré")
	ErrInvalidInput         = errors.New("entrée invalide")
	ErrDuplicate            = errors.New("ressource dupliquée")
	ErrUnauthorized         = errors.New("non autorisé")
	ErrForbidden            = errors.New("accès refusé")
	ErrConflict             = errors.New("conflit avec l'état courant")
	ErrInsufficientQuantity = errors.New("quantité insuffisante")
	ErrInsufficientStock    = errors.New("stock insuffisant")
	ErrProductNotValidated  = errors.New("produit non validé par un administrateur")
	ErrAccountNotVerified   = errors.New("compte non vérifié ou non activé")
	ErrInvalidCoordinates   = errors.New("coordonnées géographiques invalides")
)
