// Package cli implements the skyhook command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/skyhookui/skyhook/pkg/buildinfo"
	"github.com/skyhookui/skyhook/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "skyhook"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "skyhook",
		Short:        "Skyhook positions floating overlay panels",
		Long:         `Skyhook solves overlay placement: given an anchor rectangle, a panel, and a list of preferred positions, it picks the best placement inside the viewport, pushing or shrinking the panel when nothing fits outright.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factory
// =============================================================================

// storeOpts holds the backend-selection flags shared by store-using commands.
type storeOpts struct {
	backend   string // memory, file, redis, or mongo
	dataDir   string // directory for the file backend
	redisAddr string // address for the redis backend
	mongoURI  string // connection string for the mongo backend
}

// registerStoreFlags wires the store selection flags onto a command.
func registerStoreFlags(cmd *cobra.Command, opts *storeOpts) {
	cmd.Flags().StringVar(&opts.backend, "store", "memory", "scenario store backend: memory, file, redis, mongo")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "directory for the file backend (default: XDG data dir)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis address for the redis backend")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "connection string for the mongo backend")
}

// newStore creates the scenario store selected by the flags, wrapped with
// observability instrumentation.
func newStore(ctx context.Context, opts storeOpts) (store.Store, error) {
	switch opts.backend {
	case "memory":
		return store.Instrument("memory", store.NewMemoryStore()), nil
	case "file":
		dir := opts.dataDir
		if dir == "" {
			var err error
			if dir, err = dataDir(); err != nil {
				return nil, err
			}
		}
		s, err := store.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		return store.Instrument("file", s), nil
	case "redis":
		s, err := store.NewRedisStore(ctx, store.RedisConfig{Addr: opts.redisAddr})
		if err != nil {
			return nil, err
		}
		return store.Instrument("redis", s), nil
	case "mongo":
		s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return nil, err
		}
		return store.Instrument("mongo", s), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the data directory using XDG standard (~/.local/share/skyhook/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
