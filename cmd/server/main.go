package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"salon-booking-api/internal/config"
	"salon-booking-api/internal/handler"
	"salon-booking-api/internal/middleware"
	"salon-booking-api/internal/migrations"
	"salon-booking-api/internal/model"
	"salon-booking-api/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	logger.Info("connected to postgres")

	if err := runMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	logger.Info("migrations applied")

	st := store.New(pool)
	h := handler.New(st, cfg.JWTSecret, cfg.StoreTimeout)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			logger.Error("unexpected error", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		},
	})

	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	rl := middleware.NewRateLimiter(5, 10)
	app.Post("/login", middleware.RateLimit(rl), h.Login)

	protect := middleware.Protect(cfg.JWTSecret)
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleEmployee)

	// listing is public unless the deployment gates it
	if cfg.PublicListing {
		app.Get("/appointments", h.ListAppointments)
	} else {
		app.Get("/appointments", protect, h.ListAppointments)
	}
	app.Post("/appointments", protect, staff, h.CreateAppointment)
	app.Put("/appointments/:id", protect, staff, h.UpdateAppointment)
	app.Delete("/appointments/:id", protect, staff, h.DeleteAppointment)

	admin := middleware.RequireRole(model.RoleAdmin)
	app.Get("/users", protect, admin, h.ListUsers)
	app.Post("/users", protect, admin, h.CreateUser)

	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

// runMigrations applies the embedded goose migrations over a short-lived
// database/sql connection; the app itself talks to pgxpool.
func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, db, ".")
}
