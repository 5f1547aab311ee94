package notify

import (
	"context"
	"time"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
	"github.com/harenatech/harena-api/pkg/logger"
)

// Service persiste les notifications et les pousse en temps réel via le hub.
// La persistance fait foi ; le push est au mieux.
type Service struct {
	repo repository.NotificationRepository
	hub  *Hub
	log  *logger.Logger
}

func NewService(repo repository.NotificationRepository, hub *Hub, log *logger.Logger) *Service {
	return &Service{repo: repo, hub: hub, log: log}
}

// Hub expose le registre de connexions pour le handler websocket.
func (s *Service) Hub() *Hub { return s.hub }

// NotifyUser enregistre la notification puis la pousse sur les connexions
// ouvertes de l'utilisateur. L'échec de persistance est journalisé, jamais
// propagé à l'opération appelante.
func (s *Service) NotifyUser(ctx context.Context, userID, titre, message string, data map[string]any) {
	n := &entity.Notification{
		UserID:    userID,
		Titre:     titre,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("échec de persistance de la notification")
	}
	s.hub.PushToUser(userID, dto.PushMessage{
		Type:      "notification",
		Titre:     titre,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// NotifyAllAdmins diffuse un évènement sur le canal admin. Push uniquement :
// rien n'est écrit en base.
func (s *Service) NotifyAllAdmins(titre, message string, data map[string]any) {
	s.hub.PushToAdmins(dto.PushMessage{
		Type:      "admin",
		Titre:     titre,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// ListForUser retourne la page de notifications de l'utilisateur, plus récentes
// d'abord, avec le total.
func (s *Service) ListForUser(ctx context.Context, userID string, page dto.PageRequest) ([]*entity.Notification, int, error) {
	page.Normalize()
	items, err := s.repo.ListByUser(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// MarkRead marque la notification comme lue si elle appartient à l'utilisateur.
func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}
