package entity

import "time"

// Notification message persistant destiné à un utilisateur, poussé en temps réel
// après écriture.
type Notification struct {
	ID        string
	UserID    string
	Titre     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
