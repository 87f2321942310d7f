package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dress_rental_backend/internal/config"
	"dress_rental_backend/internal/database"
	"dress_rental_backend/internal/middleware"
	"dress_rental_backend/internal/repositories"
	"dress_rental_backend/internal/repositories/mongostore"
	"dress_rental_backend/internal/router"
	"dress_rental_backend/internal/services"
	"dress_rental_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("info", "console")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)

	// Unknown JSON fields are rejected on every bound request.
	binding.EnableDecoderDisallowUnknownFields = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("Failed to initialize store")
	}
	defer closeStore()
	utils.LogInfo("Store initialized", map[string]interface{}{"driver": cfg.DBDriver})

	if cfg.AdminUsername != "" {
		if err := services.NewAuthService(store.Users).EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap admin user")
		}
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, store, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "pricing_mode": cfg.PricingMode})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
}

// openStore connects the configured backend and returns its repositories with a close func.
func openStore(ctx context.Context, cfg *config.Config) (*repositories.Store, func(), error) {
	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch cfg.DBDriver {
	case config.DriverMongo:
		if !cfg.Mongo.Transactions {
			utils.LogWarn("MONGO_TRANSACTIONS is off; failed rental writes are undone by compensating updates")
		}
		client, db, err := database.InitMongo(initCtx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureIndexes(initCtx, db); err != nil {
			disconnectMongo(client)
			return nil, nil, err
		}
		return mongostore.NewStore(client, db, cfg.Mongo.Transactions), func() { disconnectMongo(client) }, nil
	default:
		db, err := database.InitPostgres(initCtx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewPostgresStore(db), func() { closePostgres(db) }, nil
	}
}

func disconnectMongo(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		utils.LogError(err, "Failed to disconnect MongoDB")
	}
}

func closePostgres(db *sql.DB) {
	if err := db.Close(); err != nil {
		utils.LogError(err, "Failed to close PostgreSQL pool")
	}
}
