package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storygrabber/core/cache"
	"storygrabber/core/config"
	"storygrabber/core/database"
	"storygrabber/core/loader"
	"storygrabber/core/logger"
	"storygrabber/core/middleware/auth"
	"storygrabber/core/middleware/rayid"
	"storygrabber/core/storage"

	"storygrabber/feature/library"
	"storygrabber/feature/reconcile"
	"storygrabber/feature/storygraph"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "storygrabber/docs/swagger"
)

// @title Storygrabber API
// @version 1.0
// @description API for reconciling StoryGraph want-to-read lists against a LazyLibrarian library.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the storygrabber server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
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

		// 3. Connect to Database (Optional)
		// History recording degrades gracefully when no database is reachable.
		var history *reconcile.HistoryRepo
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, run history disabled", zap.Error(err))
		} else if history, err = reconcile.NewHistoryRepo(db); err != nil {
			logg.Warn("Run history migration failed, run history disabled", zap.Error(err))
			history = nil
		} else {
			logg.Info("Connected to run history database", zap.String("driver", cfg.Database.Driver))
		}

		// 4. Open the snapshot cache
		// The storage client is only needed for the s3 backend.
		var store storage.Client
		if cfg.Cache.Backend == cache.BackendObject {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}
		backend, err := cache.Open(cfg.Cache, store, cfg.Storage.Bucket, logg)
		if err != nil {
			logg.Fatal("Failed to open cache backend", zap.Error(err))
		}
		defer backend.Close()
		cacheStore := cache.NewStore(backend, logg)

		// 5. Build Services
		sourceClient := storygraph.NewClient(cfg.Storygraph, logg)
		sourceService := storygraph.NewService(sourceClient, cacheStore, cfg.Cache.SourceTTL(), logg)

		libraryClient := library.NewClient(cfg.Library, logg)
		libraryService := library.NewService(libraryClient, time.Duration(cfg.Library.HoldingsTTLSeconds)*time.Second, logg)

		reconcileService := reconcile.NewService(sourceService, libraryService, cacheStore, history, cfg.Reconcile, logg)

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(storygraph.NewFeature(sourceService, logg))
		mgr.Register(library.NewFeature(libraryService, logg))
		mgr.Register(reconcile.NewFeature(reconcileService, logg))

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

		// 8. Load Features
		if err := mgr.LoadAll(app.Group("/api")); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Background refresh job
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if cfg.Sync.Enabled() {
			sched := reconcile.NewScheduler(reconcileService, cfg.Sync, logg)
			go sched.Run(ctx)
			logg.Info("Background refresh enabled",
				zap.Strings("users", cfg.Sync.UserList()),
				zap.Int("interval_minutes", cfg.Sync.IntervalMinutes),
			)
		}

		// 10. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 11. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
