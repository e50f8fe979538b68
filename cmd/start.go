package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"path-store/core/config"
	"path-store/core/loader"
	"path-store/core/logger"
	"path-store/core/middleware/auth"
	"path-store/core/middleware/rayid"
	"path-store/core/storage"
	"path-store/feature/pathstore"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the path store server",
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

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 4. Initialize Storage Backend and Store
		backend, err := storage.NewBackend(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage backend", zap.Error(err))
		}

		store := pathstore.New(backend, logg)
		if cfg.Storage.Bucket != "" {
			if err := store.SetBucketName(cmd.Context(), cfg.Storage.Bucket); err != nil {
				logg.Fatal("Failed to select startup bucket",
					zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
			}
		} else {
			logg.Warn("No startup bucket configured; store operations will fail until one is selected")
		}

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(pathstore.NewFeature(store, logg))

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging Middleware (Zap + RayID)
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

		// Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
