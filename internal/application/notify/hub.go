package notify

import (
	"sync"

	"github.com/harenatech/harena-api/internal/application/dto"
)

// PushConn connexion temps réel minimale ; implémentée par *websocket.Conn.
type PushConn interface {
	WriteJSON(v any) error
}

// Hub registre des connexions temps réel : un canal par utilisateur et un canal
// partagé pour les admins. Protégé par RWMutex ; une connexion en échec d'écriture
// est retirée du registre.
type Hub struct {
	mu    sync.RWMutex
	users map[string]map[PushConn]struct{}
	admin map[PushConn]struct{}
}

// NewHub construit un hub vide.
func NewHub() *Hub {
	return &Hub{
		users: make(map[string]map[PushConn]struct{}),
		admin: make(map[PushConn]struct{}),
	}
}

// Register attache une connexion au canal d'un utilisateur ; isAdmin l'ajoute aussi
// au canal admin partagé.
func (h *Hub) Register(userID string, conn PushConn, isAdmin bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[userID] == nil {
		h.users[userID] = make(map[PushConn]struct{})
	}
	h.users[userID][conn] = struct{}{}
	if isAdmin {
		h.admin[conn] = struct{}{}
	}
}

// Unregister détache une connexion de tous les canaux.
func (h *Hub) Unregister(userID string, conn PushConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns := h.users[userID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.users, userID)
		}
	}
	delete(h.admin, conn)
}

// PushToUser écrit le message sur toutes les connexions de l'utilisateur.
// Retourne le nombre de connexions servies.
func (h *Hub) PushToUser(userID string, msg dto.PushMessage) int {
	h.mu.RLock()
	conns := make([]PushConn, 0, len(h.users[userID]))
	for c := range h.users[userID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range conns {
		if err := c.WriteJSON(msg); err != nil {
			h.Unregister(userID, c)
			continue
		}
		sent++
	}
	return sent
}

// PushToAdmins diffuse le message sur le canal admin partagé.
func (h *Hub) PushToAdmins(msg dto.PushMessage) int {
	h.mu.RLock()
	conns := make([]PushConn, 0, len(h.admin))
	for c := range h.admin {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range conns {
		if err := c.WriteJSON(msg); err != nil {
			h.mu.Lock()
			delete(h.admin, c)
			h.mu.Unlock()
			continue
		}
		sent++
	}
	return sent
}
