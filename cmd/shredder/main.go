package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Ruzu28/File-Shredder/internal/audit"
	"github.com/Ruzu28/File-Shredder/internal/config"
	"github.com/Ruzu28/File-Shredder/internal/engine"
	"github.com/Ruzu28/File-Shredder/internal/event"
	"github.com/Ruzu28/File-Shredder/internal/randsrc"
	"github.com/Ruzu28/File-Shredder/internal/stats"
	"github.com/Ruzu28/File-Shredder/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: main CLI entry point orchestrates all flag parsing and wiring
func run() int {
	var (
		passes      int
		zeroFill    bool
		verbose     bool
		quiet       bool
		dryRun      bool
		verifyFlag  bool
		auditFlag   bool
		bwLimitStr  string
		logFile     string
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "shredder [flags] <file>...",
		Short: "Best-effort secure deletion: overwrite, rename, unlink",
		Long: `shredder overwrites each file with random data, optionally zero-fills
it, renames it to a random name, and unlinks it.

This is best-effort destruction. Copy-on-write filesystems, snapshots,
journaling layers, and SSD wear-leveling can all retain old data blocks
that no application-level overwrite reaches.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "shredder %s\n", version)
				return nil
			}

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd.Flags(), cfg.Defaults,
				&passes, &zeroFill, &verifyFlag, &auditFlag, &bwLimitStr)

			// Pass count floor. The engine clamps too; doing it here
			// keeps the logged value honest.
			if passes < 1 {
				passes = 1
			}

			if verifyFlag && !zeroFill {
				return errors.New("--verify requires --zero (only a zero fill is verifiable)")
			}

			var bwLimit int64
			if bwLimitStr != "" {
				bwLimit, err = config.ParseSize(bwLimitStr)
				if err != nil {
					return fmt.Errorf("invalid --bwlimit: %w", err)
				}
			}

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			slog.SetDefault(slog.New(logHandler))

			if dryRun {
				slog.Info("dry run mode")
			}

			// Set up context with signal handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			// When --log is set, tee events through a logging goroutine
			// that writes structured records before forwarding to the presenter.
			presenterEvents := (<-chan event.Event)(events)
			if logFile != "" {
				teed := make(chan event.Event, 256)
				go func() {
					for ev := range events {
						attrs := []slog.Attr{
							slog.String("type", ev.Type.String()),
							slog.String("path", ev.Path),
							slog.Int64("size", ev.Size),
							slog.Int("pass", ev.Pass),
						}
						if ev.Error != nil {
							attrs = append(attrs, slog.String("error", ev.Error.Error()))
						}
						slog.LogAttrs(context.Background(), slog.LevelInfo, "shredder.event", attrs...)
						teed <- ev
					}
					close(teed)
				}()
				presenterEvents = teed
			}

			var journal *audit.Journal
			if auditFlag && !dryRun {
				journal, err = audit.Open()
				if err != nil {
					return fmt.Errorf("open audit journal: %w", err)
				}
				defer func() {
					if cerr := journal.Close(); cerr != nil {
						slog.Warn("audit journal close failed", "error", cerr)
					}
				}()
				slog.Debug("audit journal opened", "path", journal.Path(), "run", journal.RunID())
			}

			presenter := ui.NewPresenter(ui.Config{
				Writer:    os.Stdout,
				ErrWriter: os.Stderr,
				Stats:     collector,
				IsTTY:     ui.IsTTY(os.Stderr.Fd()),
				Quiet:     quiet,
				Verbose:   verbose,
				DryRun:    dryRun,
			})

			engineCfg := engine.Config{
				Paths:    args,
				Passes:   passes,
				ZeroFill: zeroFill,
				Verify:   verifyFlag,
				DryRun:   dryRun,
				BWLimit:  bwLimit,
				Rand:     randsrc.System(),
				Events:   events,
				Stats:    collector,
				Audit:    journal,
			}

			slog.Debug("starting wipe",
				"files", len(args),
				"passes", passes,
				"zero", zeroFill,
				"verify", verifyFlag,
				"bwlimit", bwLimit,
			)

			// Run presenter in background, engine in foreground.
			var presenterErr error
			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				presenterErr = presenter.Run(presenterEvents)
			}()

			result := engine.Run(ctx, engineCfg)
			stop()
			close(events)
			presenterWg.Wait()
			if presenterErr != nil {
				fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
			}

			if !quiet {
				summary := presenter.Summary()
				if summary != "" {
					fmt.Fprintln(os.Stderr, summary)
				}
			}

			if result.Err != nil {
				slog.Error("wipe failed", "error", result.Err)
				// Per-file failures exit 1; code 2 is reserved for usage
				// and setup errors so scripts can tell them apart.
				return &exitError{code: 1}
			}

			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().IntVarP(&passes, "passes", "n", 3, "number of random overwrite passes (min 1)")
	rootCmd.Flags().BoolVarP(&zeroFill, "zero", "z", false, "add a final pass of zeros after random passes")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be destroyed without writing")
	rootCmd.Flags().BoolVar(&verifyFlag, "verify", false, "re-read and verify the zero fill before unlinking (BLAKE3)")
	rootCmd.Flags().BoolVar(&auditFlag, "audit", false, "record destroyed files in the audit journal")
	rootCmd.Flags().StringVar(&bwLimitStr, "bwlimit", "", "overwrite bandwidth limit (e.g. 100M, 1G)")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")

	rootCmd.AddCommand(docsCmd)

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	flags *pflag.FlagSet,
	defaults config.DefaultsConfig,
	passes *int,
	zeroFill *bool,
	verify *bool,
	auditFlag *bool,
	bwLimitStr *string,
) {
	if !flags.Changed("passes") && defaults.Passes != nil {
		*passes = *defaults.Passes
	}
	if !flags.Changed("zero") && defaults.Zero != nil {
		*zeroFill = *defaults.Zero
	}
	if !flags.Changed("verify") && defaults.Verify != nil {
		*verify = *defaults.Verify
	}
	if !flags.Changed("audit") && defaults.Audit != nil {
		*auditFlag = *defaults.Audit
	}
	if !flags.Changed("bwlimit") && defaults.BWLimit != nil {
		*bwLimitStr = *defaults.BWLimit
	}
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
