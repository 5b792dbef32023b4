package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
	config "github.com/smbsocial/postpilot/configs"
	"github.com/smbsocial/postpilot/internal/api/handlers"
	"github.com/smbsocial/postpilot/internal/api/middleware"
	job "github.com/smbsocial/postpilot/internal/jobs"
	"github.com/smbsocial/postpilot/internal/platform"
	"github.com/smbsocial/postpilot/internal/repository"
	"github.com/smbsocial/postpilot/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    25 * 1024 * 1024, // 25 MB, image uploads only
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       3600,
	}))

	postRepo := repository.NewPostRepository(db)
	clientRepo := repository.NewClientRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	qaLogRepo := repository.NewQALogRepository(db)
	publicationRepo := repository.NewPublicationRepository(db)

	adapters := platform.NewRegistry(*cfg)
	scorer := service.NewClaudeScorer(*cfg)

	qaService := service.NewQAService(*cfg, scorer, clientRepo, postRepo, qaLogRepo)
	dispatchService := service.NewDispatchService(*cfg, adapters, postRepo, connectionRepo, publicationRepo)
	postService := service.NewPostService(postRepo, connectionRepo, publicationRepo)
	mediaService := service.NewMediaService(*cfg)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	post := handlers.NewPostHandler(postService)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/:id/reset", post.ResetPost)
	api.Get("/report", post.MonthlyReport)
	api.Get("/connections", post.ListConnections)

	run := handlers.NewRunHandler(qaService, dispatchService)
	api.Post("/qa/run", run.RunQA)
	api.Post("/dispatch/run", run.RunDispatch)

	asset := handlers.NewAssetHandler(mediaService)
	api.Post("/assets/upload", asset.UploadImage)

	// cron jobs
	dispatchJob := job.NewDispatchJob(dispatchService)
	qaJob := job.NewQAJob(qaService, postRepo)

	c := cron.New()
	c.AddFunc("@every 00h15m00s", dispatchJob.Run)
	c.AddFunc("@every 01h00m00s", qaJob.Run)
	c.Start()
	defer c.Stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
