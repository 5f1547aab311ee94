package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/auth"
	"github.com/harenatech/harena-api/internal/application/ledger"
	"github.com/harenatech/harena-api/internal/application/notify"
	"github.com/harenatech/harena-api/internal/application/usecase"
	"github.com/harenatech/harena-api/internal/infrastructure/postgres"
	"github.com/harenatech/harena-api/internal/infrastructure/redisstore"
	"github.com/harenatech/harena-api/internal/infrastructure/smtp"
	"github.com/harenatech/harena-api/internal/infrastructure/storage"
	httpRouter "github.com/harenatech/harena-api/internal/interfaces/http"
	"github.com/harenatech/harena-api/pkg/config"
	"github.com/harenatech/harena-api/pkg/jwt"
	"github.com/harenatech/harena-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration : " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	tokenStore := redisstore.New(cfg.Redis, cfg.JWT.RefreshExpiration)
	if err := tokenStore.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("connexion à Redis")
	}

	store, err := storage.NewLocalStore(cfg.Upload)
	if err != nil {
		log.Fatal().Err(err).Msg("préparer le répertoire d'upload")
	}
	mailer := smtp.NewMailer(cfg.SMTP)
	if !mailer.Enabled() {
		log.Warn().Msg("SMTP non configuré, envoi de courriels désactivé")
	}

	userRepo := postgres.NewUserRepository(pool)
	siteRepo := postgres.NewSiteRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cpcRepo := postgres.NewCPCRepository(pool)
	actifRepo := postgres.NewActifRepository(pool)
	passifRepo := postgres.NewPassifRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	depotItemRepo := postgres.NewDepotItemRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditRec := audit.NewRecorder(auditRepo, log)
	notifySvc := notify.NewService(notificationRepo, notify.NewHub(), log)

	jwtOpts := jwt.Options{
		Secret:            cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
		AccessExpiration:  cfg.JWT.AccessExpiration,
		RefreshExpiration: cfg.JWT.RefreshExpiration,
	}
	authUC := auth.NewUsecase(userRepo, tokenStore, mailer, jwtOpts, auditRec, log)
	userUC := usecase.NewUserUsecase(userRepo, auditRec)
	siteUC := usecase.NewSiteUsecase(siteRepo, auditRec)
	productUC := usecase.NewProductUsecase(productRepo, cpcRepo, auditRec)
	cpcUC := usecase.NewCPCUsecase(cpcRepo, log)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	actifUC := ledger.NewActifUsecase(actifRepo, productRepo, siteRepo, txRunner, auditRec)
	passifUC := ledger.NewPassifUsecase(passifRepo, productRepo, siteRepo, userRepo, auditRec, notifySvc)
	movementUC := ledger.NewMovementUsecase(movementRepo, productRepo, siteRepo, txRunner, auditRec, notifySvc)
	depotItemUC := ledger.NewDepotItemUsecase(depotItemRepo, txRunner, auditRec)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		SiteUC:      siteUC,
		ProductUC:   productUC,
		CPCUC:       cpcUC,
		ActifUC:     actifUC,
		PassifUC:    passifUC,
		MovementUC:  movementUC,
		DepotItemUC: depotItemUC,
		NotifySvc:   notifySvc,
		AuditUC:     auditUC,
		Store:       store,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP arrêté")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
