package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"storygrabber/core/cache"
	"storygrabber/core/config"
	"storygrabber/core/database"
	"storygrabber/core/logger"
	"storygrabber/core/storage"

	"storygrabber/feature/library"
	"storygrabber/feature/reconcile"
	"storygrabber/feature/storygraph"

	"github.com/gofrs/flock"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncUsers    []string
	syncMaxBooks int
)

// syncCmd runs one reconciliation pass per user and prints a summary table.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile configured users once and print a summary",
	Long: `Runs a single forced reconciliation pass for each user and prints
a per-user summary table.

Users come from the --user flag, falling back to the SYNC_USERS
configuration. A lock file prevents overlapping runs.

Examples:
  # Sync the configured users
  sync

  # Sync specific users, capped at 100 books each
  sync --user alice --user bob --max-books 100`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringArrayVar(&syncUsers, "user", nil, "Username to reconcile (repeatable, overrides configuration)")
	syncCmd.Flags().IntVar(&syncMaxBooks, "max-books", 0, "Limit each pass to the first N books (0 = full list)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	users := syncUsers
	if len(users) == 0 {
		users = cfg.Sync.UserList()
	}
	if len(users) == 0 {
		return fmt.Errorf("no users to sync: pass --user or set SYNC_USERS")
	}

	// Guard against overlapping runs (cron + manual invocation).
	lock := flock.New(filepath.Join(os.TempDir(), "storygrabber-sync.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another sync is already running")
	}
	defer lock.Unlock()

	// Connect to database (optional, history only)
	var history *reconcile.HistoryRepo
	if db, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Optional database connection failed, run history disabled", zap.Error(err))
	} else if history, err = reconcile.NewHistoryRepo(db); err != nil {
		l.Warn("Run history migration failed, run history disabled", zap.Error(err))
		history = nil
	}

	// Open the snapshot cache
	var store storage.Client
	if cfg.Cache.Backend == cache.BackendObject {
		if store, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}
	backend, err := cache.Open(cfg.Cache, store, cfg.Storage.Bucket, l)
	if err != nil {
		return fmt.Errorf("failed to open cache backend: %w", err)
	}
	defer backend.Close()
	cacheStore := cache.NewStore(backend, l)

	// Build services
	sourceClient := storygraph.NewClient(cfg.Storygraph, l)
	sourceService := storygraph.NewService(sourceClient, cacheStore, cfg.Cache.SourceTTL(), l)
	libraryClient := library.NewClient(cfg.Library, l)
	libraryService := library.NewService(libraryClient, time.Duration(cfg.Library.HoldingsTTLSeconds)*time.Second, l)
	svc := reconcile.NewService(sourceService, libraryService, cacheStore, history, cfg.Reconcile, l)

	maxBooks := syncMaxBooks
	if maxBooks == 0 {
		maxBooks = cfg.Sync.MaxBooks
	}

	l.Info("Starting sync", zap.Strings("users", users))

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"User", "Total", "Matched", "Failures", "Status"})

	failed := 0
	for _, user := range users {
		report, err := svc.Reconcile(ctx, user, reconcile.Options{
			ForceRefresh: true,
			MaxBooks:     maxBooks,
			Trigger:      "cli",
		})
		if err != nil {
			failed++
			l.Error("Sync failed for user", zap.String("username", user), zap.Error(err))
			tw.AppendRow(table.Row{user, "-", "-", "-", "error: " + err.Error()})
			continue
		}

		status := "ok"
		if report.SourceStale {
			status = "ok (stale source list)"
		}
		tw.AppendRow(table.Row{
			user,
			report.Summary.Total,
			report.Summary.Matched,
			report.Summary.Failures,
			status,
		})
	}

	tw.Render()

	if failed == len(users) {
		return fmt.Errorf("sync failed for all %d users", failed)
	}
	return nil
}
