package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/sadieom/BiblioMatch/docs" // swagger docs

	"github.com/sadieom/BiblioMatch/internal/config"
	"github.com/sadieom/BiblioMatch/internal/db"
	"github.com/sadieom/BiblioMatch/internal/external"
	"github.com/sadieom/BiblioMatch/internal/handler"
	"github.com/sadieom/BiblioMatch/internal/logging"
	"github.com/sadieom/BiblioMatch/internal/pubsub"
	"github.com/sadieom/BiblioMatch/internal/repository"
	"github.com/sadieom/BiblioMatch/internal/service"
)

// @title BiblioMatch Book Recommender API
// @version 1.0
// @description Recomendaciones de libros por similitud coseno (Mongo, Redis)
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	cfg.LogNotices()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.InitMongo(cfg); err != nil {
		logging.Fatal().Err(err).Msg("no se pudo conectar a Mongo")
	}
	d := db.DB()

	// repos
	userRepo := repository.NewUserRepository(d)
	bookRepo := repository.NewBookRepository(d)
	simRepo := repository.NewSimilarityRepository(d)
	modelRepo := repository.NewModelRepository(d)
	historyRepo := repository.NewRecommendationRepository(d)

	// modelo en memoria; sin modelo la API arranca igual y responde 503
	store := service.NewModelStore(modelRepo, bookRepo, simRepo)
	if _, err := store.Load(ctx); err != nil {
		logging.Warn().Err(err).Msg("arrancando sin modelo cargado")
	}

	// Redis es opcional: sin él solo se pierde la recarga automática
	if rdb, err := pubsub.NewRedisClient(cfg); err != nil {
		logging.Warn().Err(err).Msg("redis no disponible, /admin/model/reload para recargar")
	} else {
		defer rdb.Close()
		notifier := pubsub.NewNotifier(rdb, cfg.ModelChannel)
		go func() {
			err := notifier.Subscribe(ctx, func(ctx context.Context, msg pubsub.ModelUpdated) {
				if _, err := store.Load(ctx); err != nil {
					logging.Error().Err(err).Str("version", msg.Version).Msg("recarga del modelo falló")
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logging.Error().Err(err).Msg("suscripción a modelos terminó")
			}
		}()
	}

	ext := external.NewClient(external.Config{
		OpenLibraryURL: cfg.OpenLibraryURL,
		GoogleBooksURL: cfg.GoogleBooksURL,
		Timeout:        cfg.ExternalTimeout,
	})

	// services
	recSvc := service.NewRecommendService(store, cfg.MatchThreshold)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AdminEmails)
	shelfSvc := service.NewBookshelfService(userRepo, historyRepo, recSvc, store)
	bookSvc := service.NewBookService(ext, store)

	r := newRouter(cfg, routerDeps{
		health:    handler.NewHealthHandler(store),
		recommend: handler.NewRecommendHandler(recSvc),
		auth:      handler.NewAuthHandler(authSvc),
		shelf:     handler.NewBookshelfHandler(shelfSvc),
		books:     handler.NewBookHandler(bookSvc),
		admin:     handler.NewAdminModelHandler(store),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("apagando")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown HTTP")
	}
	if err := db.Close(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("cerrando Mongo")
	}
}
