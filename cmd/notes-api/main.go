package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/notes/internal/config"
	"github.com/dimitrije/notes/internal/database"
	"github.com/dimitrije/notes/internal/handlers"
	authmw "github.com/dimitrije/notes/internal/middleware"
	"github.com/dimitrije/notes/internal/oauth"
	"github.com/dimitrije/notes/internal/services"
	"github.com/dimitrije/notes/internal/session"
	"github.com/dimitrije/notes/internal/sse"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

// tokenStore is a refresh token store that also prunes its own expired rows.
type tokenStore interface {
	handlers.TokenServiceInterface
	CleanupExpired(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var tokens tokenStore = services.NewTokenService(db)
	if cfg.RedisURL != "" {
		store, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer func() { _ = store.Close() }()
		tokens = store
		log.Println("Refresh tokens stored in redis")
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	workspaceService := services.NewWorkspaceService(db)
	itemService := services.NewItemService(db, workspaceService)

	hub := sse.NewHub()
	go hub.Run(ctx)

	providers := oauth.NewProviders(cfg)
	for name := range providers {
		log.Printf("OAuth provider enabled: %s", name)
	}

	authHandler := handlers.NewAuthHandler(cfg, providers, userService, tokens, jwtService)
	userHandler := handlers.NewUserHandler(userService, tokens)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, hub)
	itemHandler := handlers.NewItemHandler(itemService, hub)
	sseHandler := handlers.NewSSEHandler(hub, workspaceService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/exchange", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/auth/user", userHandler.GetMe)
	protected.Patch("/auth/user", userHandler.UpdateMe)
	protected.Delete("/auth/user", userHandler.DeleteMe)

	protected.Get("/workspaces", workspaceHandler.List)
	protected.Post("/workspaces", workspaceHandler.Create)
	protected.Get("/workspaces/:workspaceId", workspaceHandler.Get)
	protected.Put("/workspaces/:workspaceId", workspaceHandler.Update)
	protected.Delete("/workspaces/:workspaceId", workspaceHandler.Delete)
	protected.Get("/workspaces/:workspaceId/preferences", workspaceHandler.GetPreferences)
	protected.Put("/workspaces/:workspaceId/preferences", workspaceHandler.UpdatePreferences)
	protected.Get("/workspaces/:workspaceId/events", sseHandler.Connect)

	protected.Get("/items", itemHandler.List)
	protected.Post("/items", itemHandler.Create)
	protected.Get("/items/:itemId", itemHandler.Get)
	protected.Put("/items/:itemId", itemHandler.Update)
	protected.Delete("/items/:itemId", itemHandler.Delete)

	api.Get("/health", func(c *drift.Context) {
		if err := db.Pool.Ping(c.Request.Context()); err != nil {
			_ = c.JSON(503, map[string]string{"status": "unavailable"})
			return
		}
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go authHandler.CleanupExpired(ctx, time.Minute)

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := tokens.CleanupExpired(ctx); err != nil {
					log.Printf("refresh token cleanup failed: %v", err)
				}
			}
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
}
