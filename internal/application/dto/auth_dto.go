package dto

import "time"

// RegisterRequest entrée d'inscription. Le compte est créé non vérifié et non activé.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nom      string `json:"nom" validate:"required,min=1,max=100"`
	Prenom   string `json:"prenom" validate:"max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=acheteur vendeur"`
}

// LoginRequest entrée de connexion.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest entrée de rafraîchissement du jeton d'accès.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair jetons émis à la connexion ou au rafraîchissement.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse sortie de connexion : jetons + utilisateur.
type LoginResponse struct {
	Tokens TokenPair    `json:"tokens"`
	User   UserResponse `json:"user"`
}

// UserResponse projection publique d'un utilisateur (jamais le hash).
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Nom           string    `json:"nom"`
	Prenom        string    `json:"prenom"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	Validated     bool      `json:"validated"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateUserRequest entrée de mise à jour du profil.
type UpdateUserRequest struct {
	Nom    *string `json:"nom" validate:"omitempty,min=1,max=100"`
	Prenom *string `json:"prenom" validate:"omitempty,max=100"`
}
