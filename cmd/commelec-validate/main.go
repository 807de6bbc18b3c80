// Command commelec-validate runs the advertisement validation procedure of
// pkg/validator against one or more wire-format files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/commelec/agent-core/internal/advconfig"
	"github.com/commelec/agent-core/internal/advlog"
	"github.com/commelec/agent-core/internal/cache"
	"github.com/commelec/agent-core/pkg/expr/visitors"
	"github.com/commelec/agent-core/pkg/validator"
	"github.com/commelec/agent-core/pkg/wire"
)

var (
	flagConfig    string
	flagUnpacked  bool
	flagCachePath string
	flagLogLevel  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "commelec-validate FILE [FILE...]",
		Short: "Validate Commelec advertisements encoded on the wire",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to a JSON settings file")
	rootCmd.Flags().BoolVar(&flagUnpacked, "unpacked", false, "treat input files as the unpacked wire variant")
	rootCmd.Flags().StringVar(&flagCachePath, "cache", "", "path to a validation result cache (skip unchanged files)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "override the config file's log level")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := advconfig.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	log, err := advlog.New(cfg.LogLevel, "")
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}

	var c *cache.Cache
	if flagCachePath != "" {
		c, err = cache.Load(flagCachePath)
		if err != nil {
			return fmt.Errorf("loading cache: %w", err)
		}
	}

	mode := wire.Packed
	if flagUnpacked {
		mode = wire.Unpacked
	}

	runID := uuid.NewString()
	log = log.With("run_id", runID)

	failures := 0
	for _, path := range args {
		fileLog := log.With("file", path)
		data, err := os.ReadFile(path)
		if err != nil {
			fileLog.Error("reading file", "err", err)
			failures++
			continue
		}

		if c != nil {
			if entry, ok := c.Lookup(data); ok {
				if entry.Valid {
					fileLog.Info("valid (cached)")
				} else {
					fileLog.Error("invalid (cached)", "reason", entry.Reason)
					failures++
				}
				continue
			}
		}

		msg, err := wire.Decode(data, mode, cfg.DecodeOptions())
		if err != nil {
			fileLog.Error("decoding message", "err", err)
			failures++
			if c != nil {
				c.Store(data, cache.Entry{Valid: false, Reason: err.Error()})
			}
			continue
		}

		if msg.Advertisement != nil && fileLog.Enabled(cmd.Context(), slog.LevelDebug) {
			dp := visitors.NewDebugPrinter()
			fileLog.Debug("decoded PQ profile", "tree", dp.PrintSet(msg.Advertisement.PQProfile))
			fileLog.Debug("decoded cost function", "tree", dp.PrintReal(msg.Advertisement.CostFunction))
		}

		_, err = validator.Validate(msg, mode, fileLog)
		if err != nil {
			fileLog.Error("validation failed", "err", err)
			failures++
			if c != nil {
				c.Store(data, cache.Entry{Valid: false, Reason: err.Error()})
			}
			continue
		}

		fileLog.Info("valid")
		if c != nil {
			c.Store(data, cache.Entry{Valid: true})
		}
	}

	if c != nil {
		if err := c.Save(); err != nil {
			return fmt.Errorf("saving cache: %w", err)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failures, len(args))
	}
	return nil
}
