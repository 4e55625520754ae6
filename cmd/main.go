package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"github.com/nikhilr05/civicreport/internal/config"
	"github.com/nikhilr05/civicreport/internal/db"
	"github.com/nikhilr05/civicreport/internal/handlers"
	"github.com/nikhilr05/civicreport/internal/middleware"
	"github.com/nikhilr05/civicreport/internal/observability"
	"github.com/nikhilr05/civicreport/internal/services"
	"github.com/nikhilr05/civicreport/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	mongoDB, err := db.ConnectMongoDB(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		zlog.Fatal("mongodb setup failed", zap.Error(err))
	}
	zlog.Info("connected to mongodb", zap.String("database", cfg.Mongo.Database))

	evidence, err := storage.NewFromConfig(cfg.Storage)
	if err != nil {
		zlog.Fatal("evidence storage setup failed", zap.Error(err))
	}
	zlog.Info("evidence storage ready", zap.String("backend", cfg.Storage.Backend))

	tokens := services.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := services.NewAuthService(mongoDB, tokens, cfg.Auth.BcryptCost)
	issueService := services.NewIssueService(mongoDB, zlog)
	userService := services.NewUserService(mongoDB, zlog)

	authHandler := handlers.NewAuthHandler(authService, zlog)
	issueHandler := handlers.NewIssueHandler(issueService, evidence, zlog)
	adminHandler := handlers.NewAdminHandler(userService, zlog)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Evidence URLs from the local backend resolve against this route.
	if cfg.Storage.Backend == "local" {
		app.Static("/uploads", cfg.Storage.UploadDir)
	}

	api := app.Group("/api")
	adminOnly := middleware.AdminRequired(tokens)

	users := api.Group("/users")
	users.Post("/signup", authHandler.Signup)
	users.Post("/login", authHandler.Login)
	users.Get("/count", adminOnly, adminHandler.CountUsers)
	users.Get("/search", adminOnly, adminHandler.SearchUsers)
	users.Delete("/:email", adminOnly, adminHandler.DeleteUser)

	admins := api.Group("/admins")
	admins.Post("/login", authHandler.AdminLogin)
	api.Get("/admin/verify", adminOnly, authHandler.Verify)

	issues := api.Group("/issues")
	issues.Post("/", issueHandler.Submit)
	issues.Get("/", adminOnly, issueHandler.ListAll)
	issues.Get("/accepted", issueHandler.ListAccepted)
	issues.Get("/status/:status", issueHandler.ListByStatus)
	issues.Get("/user/:emailid", issueHandler.ListByUser)
	issues.Patch("/:id/status", adminOnly, issueHandler.UpdateStatus)

	zlog.Info("starting server", zap.String("port", cfg.App.Port))
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
