package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
	"github.com/harenatech/harena-api/pkg/logger"
)

// Meta métadonnées de la requête à l'origine de l'action.
type Meta struct {
	IP        string
	UserAgent string
}

// Recorder écrit le journal d'audit. Toutes les écritures sont best-effort :
// un échec est journalisé puis avalé, l'opération principale reste acquise.
// Le journal n'est donc pas une piste de conformité fiable en cas de panne.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewRecorder construit le recorder.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record ajoute une entrée. userID nil pour les actions refusées avant authentification.
// prev et next sont sérialisés en JSON ; une valeur nil donne un état vide.
func (r *Recorder) Record(ctx context.Context, action, entityType, entityID string, userID *string, prev, next any, meta Meta) {
	entry := &entity.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		PrevState:  marshalState(prev),
		NewState:   marshalState(next),
		IP:         meta.IP,
		UserAgent:  meta.UserAgent,
		CreatedAt:  time.Now(),
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		r.log.Error().Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("écriture du journal d'audit échouée")
	}
}

func marshalState(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
