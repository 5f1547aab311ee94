package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/dto"
	"github.com/harenatech/harena-api/internal/application/notify"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/pkg/jwt"
	"github.com/harenatech/harena-api/pkg/logger"
)

// NotificationHandler routes des notifications, REST et temps réel.
type NotificationHandler struct {
	svc       *notify.Service
	jwtSecret string
	log       *logger.Logger
}

func NewNotificationHandler(svc *notify.Service, jwtSecret string, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, jwtSecret: jwtSecret, log: log}
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Titre:     n.Titre,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// List GET /notifications — notifications du demandeur.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondBadBody(c)
	}
	page.Normalize()
	items, total, err := h.svc.ListForUser(c.UserContext(), GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, toNotificationResponse(n))
	}
	return c.JSON(dto.OKPage("notifications", out, total, page.Page, page.Limit))
}

// MarkRead PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.svc.MarkRead(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("notification lue", nil))
}

// UpgradeGuard vérifie la demande d'upgrade websocket et authentifie par le
// paramètre de requête token (les en-têtes ne passent pas l'upgrade).
func (h *NotificationHandler) UpgradeGuard(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	claims, err := jwt.ParseAccess(h.jwtSecret, c.Query("token"))
	if err != nil {
		return fiber.ErrUnauthorized
	}
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalRole, claims.Role)
	return c.Next()
}

// Stream GET /notifications/ws — canal temps réel. La connexion reste inscrite
// au hub jusqu'à la première erreur de lecture.
func (h *NotificationHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals(LocalUserID).(string)
		role, _ := conn.Locals(LocalRole).(string)
		if userID == "" {
			_ = conn.Close()
			return
		}
		hub := h.svc.Hub()
		hub.Register(userID, conn, role == entity.RoleAdmin)
		defer hub.Unregister(userID, conn)

		h.log.Debug().Str("user_id", userID).Msg("connexion temps réel ouverte")
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.log.Debug().Str("user_id", userID).Msg("connexion temps réel fermée")
	})
}
