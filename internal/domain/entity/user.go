package entity

import "time"

// Rôles valides pour User.
const (
	RoleAcheteur = "acheteur"
	RoleVendeur  = "vendeur"
	RoleAdmin    = "admin"
)

// User représente un utilisateur du système.
// Créé non vérifié et non activé ; la suppression est logique (DeletedAt), jamais physique.
type User struct {
	ID            string
	Email         string
	PasswordHash  string // hash bcrypt, jamais en clair après persistance
	Nom           string
	Prenom        string
	Role          string // acheteur, vendeur, admin
	EmailVerified bool
	Validated     bool // activation par un admin ou le parcours email
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive indique si le compte peut se connecter : vérifié, activé et non supprimé.
func (u *User) IsActive() bool {
	return u.EmailVerified && u.Validated && u.DeletedAt == nil
}
