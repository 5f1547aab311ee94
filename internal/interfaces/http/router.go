package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harenatech/harena-api/internal/application/auth"
	"github.com/harenatech/harena-api/internal/application/ledger"
	"github.com/harenatech/harena-api/internal/application/notify"
	"github.com/harenatech/harena-api/internal/application/usecase"
	"github.com/harenatech/harena-api/internal/infrastructure/storage"
	"github.com/harenatech/harena-api/pkg/logger"
)

// RouterDeps dépendances du routeur.
type RouterDeps struct {
	AuthUC      *auth.Usecase
	UserUC      *usecase.UserUsecase
	SiteUC      *usecase.SiteUsecase
	ProductUC   *usecase.ProductUsecase
	CPCUC       *usecase.CPCUsecase
	ActifUC     *ledger.ActifUsecase
	PassifUC    *ledger.PassifUsecase
	MovementUC  *ledger.MovementUsecase
	DepotItemUC *ledger.DepotItemUsecase
	NotifySvc   *notify.Service
	AuditUC     *usecase.AuditUsecase
	Store       *storage.LocalStore
	JWTSecret   string
	Log         *logger.Logger
}

// Router enregistre toutes les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Fichiers déposés, servis en statique.
	app.Static(deps.Store.PublicPath(), deps.Store.Dir())

	v1 := app.Group("/api/v1")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := v1.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)

	// Canal temps réel : authentifié par token en query, hors middleware Bearer.
	notificationHandler := NewNotificationHandler(deps.NotifySvc, deps.JWTSecret, deps.Log)
	v1.Get("/notifications/ws", notificationHandler.UpgradeGuard, notificationHandler.Stream())

	// Routes protégées (Bearer)
	protected := v1.Group("/", AuthMiddleware(deps.JWTSecret))

	authGroup = protected.Group("/auth")
	authGroup.Post("/verify/:id", RequireAdmin(), authHandler.VerifyEmail)
	authGroup.Post("/activate/:id", RequireAdmin(), authHandler.Activate)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Get("/", RequireAdmin(), userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	siteHandler := NewSiteHandler(deps.SiteUC)
	sites := protected.Group("/sites")
	sites.Post("/", siteHandler.Create)
	sites.Get("/", siteHandler.List)
	sites.Get("/:id", siteHandler.GetByID)
	sites.Put("/:id", siteHandler.Update)
	sites.Delete("/:id", siteHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/validate", RequireAdmin(), productHandler.Validate)

	cpcHandler := NewCPCHandler(deps.CPCUC)
	cpc := protected.Group("/cpc")
	cpc.Get("/", cpcHandler.List)
	cpc.Get("/export", cpcHandler.Export)
	cpc.Post("/import", RequireAdmin(), cpcHandler.Import)
	cpc.Get("/:code", cpcHandler.GetByCode)

	actifHandler := NewActifHandler(deps.ActifUC)
	actifs := protected.Group("/actifs")
	actifs.Post("/", actifHandler.Add)
	actifs.Post("/decrease", actifHandler.Decrease)
	actifs.Get("/", actifHandler.List)

	passifHandler := NewPassifHandler(deps.PassifUC)
	passifs := protected.Group("/passifs")
	passifs.Post("/", passifHandler.Add)
	passifs.Get("/one", passifHandler.GetOne)
	passifs.Get("/site/:siteId", passifHandler.ListBySite)

	movementHandler := NewMovementHandler(deps.MovementUC)
	movements := protected.Group("/movements")
	movements.Post("/", movementHandler.Create)
	movements.Get("/my-assets", movementHandler.GetMyAssets)

	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	uploadHandler := NewUploadHandler(deps.Store)
	protected.Post("/upload", uploadHandler.Upload)

	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit", RequireAdmin(), auditHandler.List)

	// Surface v2 : stock par dépôt.
	v2 := app.Group("/api/v2", AuthMiddleware(deps.JWTSecret))
	depotItemHandler := NewDepotItemHandler(deps.DepotItemUC)
	v2.Get("/depot-items", depotItemHandler.List)
	v2.Post("/stock/adjust", depotItemHandler.Adjust)
	v2.Post("/stock/transfer", depotItemHandler.Transfer)
}
