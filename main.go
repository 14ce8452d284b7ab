package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gdmcare/assessment-api/config"
	"github.com/gdmcare/assessment-api/handlers"
	"github.com/gdmcare/assessment-api/middleware"
	"github.com/gdmcare/assessment-api/prediction"
	"github.com/gdmcare/assessment-api/store"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "gdm-assessment-api").Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	st := store.New(client.Database(cfg.DatabaseName))
	predictor := prediction.NewClient(cfg.PredictionURL, logger)
	h := handlers.New(st, predictor, logger)

	app := fiber.New()

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))

	auth := middleware.Auth(middleware.NewJWTVerifier(cfg.JWTSecret))

	// Public routes
	app.Get("/health", h.Health)
	app.Get("/doctors", h.ListDoctors)
	app.Get("/doctors/:id", h.GetDoctor)

	// Protected routes
	app.Post("/doctors/register", auth, h.RegisterDoctor)
	app.Get("/doctors/:id/dashboard", auth, h.DoctorDashboard)
	app.Get("/doctors/:id/assessments/pending", auth, h.PendingAssessments)

	app.Post("/patients/register", auth, h.RegisterPatient)
	app.Get("/patients/:id", auth, h.GetPatient)
	app.Get("/patients/:id/dashboard", auth, h.PatientDashboard)
	app.Get("/patients/:id/assessments", auth, h.PatientAssessments)

	app.Post("/assessments", auth, h.CreateAssessment)
	app.Get("/assessments/:id", auth, h.GetAssessment)
	app.Post("/assessments/:id/review", auth, h.SubmitReview)

	app.Get("/notifications/:userId", auth, h.ListNotifications)
	app.Put("/notifications/:id/read", auth, h.MarkNotificationRead)

	// Graceful shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}()

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
