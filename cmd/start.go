package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gacha-tracker/core/config"
	"gacha-tracker/core/database"
	"gacha-tracker/core/loader"
	"gacha-tracker/core/logger"
	"gacha-tracker/core/middleware/auth"
	"gacha-tracker/core/middleware/rayid"
	"gacha-tracker/core/storage"
	"gacha-tracker/core/upstream"

	"gacha-tracker/feature/achievement"
	"gacha-tracker/feature/ledger"
	"gacha-tracker/feature/profile"
	"gacha-tracker/feature/stats"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "gacha-tracker/docs/swagger"
)

// @title Gacha Tracker API
// @version 1.0
// @description Pull history ledger, luck statistics, achievements and profile cache.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gacha tracker server",
	Long:  `Starts the HTTP server, the background tasks and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage and Upstream Clients
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		provider := upstream.NewClient(cfg.Upstream)

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features. The stats feature reads the ledger store, so the
		// ledger feature is created first and shared.
		ledgerFeature := ledger.NewFeature(db, logg)
		statsFeature := stats.NewFeature(db, ledgerFeature.Service().Store(), logg)
		mgr.Register(ledgerFeature)
		mgr.Register(statsFeature)
		mgr.Register(achievement.NewFeature(db, logg, cfg.Server.EffectiveAdminKey()))
		mgr.Register(profile.NewFeature(store, cfg.Storage.Bucket, provider, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Background Tasks
		taskCtx, stopTasks := context.WithCancel(context.Background())
		defer stopTasks()

		refresher := stats.NewRefresher(
			ledgerFeature.Service().Store(),
			statsFeature.Service().Store(),
			logg,
			time.Duration(cfg.Tasks.StatsIntervalMinutes)*time.Minute,
		)
		go refresher.Run(taskCtx)

		if cfg.Tasks.ReferenceSyncEnabled {
			syncer := stats.NewReferenceSyncer(
				provider,
				statsFeature.Service().Store(),
				logg,
				time.Duration(cfg.Tasks.ReferenceIntervalMinutes)*time.Minute,
			)
			go syncer.Run(taskCtx)
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		stopTasks()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
