package repository

import (
	"context"

	"github.com/harenatech/harena-api/internal/domain/entity"
)

// AuditLogRepository port du journal d'audit, en append-only.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]*entity.AuditLog, error)
	Count(ctx context.Context) (int, error)
}
