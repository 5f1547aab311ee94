package repository

import (
	"context"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// NotificationRepository port de persistance des notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// MarkRead marque comme lue une notification appartenant à userID.
	MarkRead(ctx context.Context, id, userID string) error
}
