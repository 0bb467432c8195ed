// Package cli implements the wardrobe command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"wardrobe/internal/config"
	"wardrobe/internal/imaging"
	"wardrobe/internal/logging"
	"wardrobe/internal/session"
	"wardrobe/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DBPath     string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the wardrobe CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "Wardrobe - outfit photo catalog",
		Long:  "A local-first catalog for outfit photos: capture, rate, tag, and track wear.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", filepath.Join(config.Dir(), "config.yaml"), "config file path")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewWearCommand(opts))
	cmd.AddCommand(NewFavoriteCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewUndoCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewTagsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// cmdEnv bundles everything a command invocation needs: the resolved
// configuration, an open store and a session over it.
type cmdEnv struct {
	cfg   config.Config
	store *store.Store
	sess  *session.Session
}

// openEnv loads the configuration, applies flag overrides and opens the
// database. Callers must Close the returned env.
func openEnv(opts *RootOptions) (*cmdEnv, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o700); err != nil {
		return nil, WrapExitError(ExitCommandError, "create data directory", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}

	log := logging.Nop()
	if opts.Verbose {
		log = logging.New(os.Stderr, slog.LevelDebug)
	}

	sess := session.New(st, session.Options{
		Logger: log,
		Image: imaging.Options{
			MaxSide:    cfg.Image.MaxSide,
			Quality:    cfg.Image.Quality,
			CropSquare: cfg.Image.CropSquare,
		},
		UndoWindow: time.Duration(cfg.UndoWindowSeconds) * time.Second,
	})

	return &cmdEnv{cfg: cfg, store: st, sess: sess}, nil
}

func (e *cmdEnv) Close() {
	e.sess.Close()
	e.store.Close()
}

// undoPath locates the persisted undo snapshot next to the database, so an
// `undo` in a fresh process can still restore the last delete.
func (e *cmdEnv) undoPath() string {
	return filepath.Join(filepath.Dir(e.cfg.DBPath), "last-delete.json")
}

// newFormatter builds the per-command output formatter.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}
