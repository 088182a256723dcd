// Command colorbar demonstrates the colorbar progress bar and spinner.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	ansi "github.com/k0kubun/go-ansi"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oerlikon/colorbar"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	cmd.SetOut(ansi.NewAnsiStdout())
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger := newLogger(os.Stderr, false)
		logger.Error().Err(err).Msg("colorbar failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "colorbar",
		Short:         "Render a colored progress bar in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			verbose, _ := flags.GetBool("verbose")
			logger := newLogger(cmd.ErrOrStderr(), verbose)

			path, _ := flags.GetString("config")
			cfg, err := LoadConfig(path)
			if err != nil {
				return err
			}
			if err := applyFlags(&cfg, flags); err != nil {
				return err
			}
			file, _ := flags.GetString("file")
			return run(cmd.Context(), cmd.OutOrStdout(), cfg, file, logger)
		},
	}
	addFlags(cmd.Flags())
	return cmd
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func run(ctx context.Context, out io.Writer, cfg Config, file string, logger zerolog.Logger) error {
	if f, ok := out.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		logger.Warn().Msg("output is not a terminal, the bar will not redraw in place")
	}

	bar, err := colorbar.New(append(cfg.barOptions(), colorbar.OptionWriter(out))...)
	if err != nil {
		return fmt.Errorf("creating bar: %w", err)
	}
	logger.Debug().
		Str("color", cfg.Color).
		Bool("bright", cfg.Bright).
		Interface("length", cfg.Length).
		Bool("estimate", cfg.Estimate).
		Msg("bar created")

	if file != "" {
		err = copyFile(bar, file)
	} else {
		err = simulate(ctx, bar, cfg)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, colorbar.Framed("Done"))

	spin, _ := cfg.Spin()
	if spin <= 0 {
		return nil
	}
	spinner, err := colorbar.NewSpinner(colorbar.SpinnerStyle(cfg.SpinnerStyle), out)
	if err != nil {
		return fmt.Errorf("creating spinner: %w", err)
	}
	spinCtx, cancel := context.WithTimeout(ctx, spin)
	defer cancel()
	return spinner.Spin(spinCtx, 500*time.Millisecond)
}

// simulate advances the bar in cfg.Steps equal steps.
func simulate(ctx context.Context, bar *colorbar.ProgressBar, cfg Config) error {
	interval, _ := cfg.Interval()
	return bar.Run(func(b *colorbar.ProgressBar) error {
		for i := 0; i < cfg.Steps; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
			if err := b.Update(float64(i+1) / float64(cfg.Steps)); err != nil {
				return err
			}
		}
		return nil
	})
}

// copyFile reads the named file to the end, driving the bar by bytes read.
func copyFile(bar *colorbar.ProgressBar, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat file: %w", err)
	}

	// r.Close closes f on success
	r := colorbar.NewReader(f, info.Size(), bar)
	return bar.Run(func(*colorbar.ProgressBar) error {
		if _, err := io.Copy(io.Discard, r); err != nil {
			f.Close()
			return fmt.Errorf("reading file: %w", err)
		}
		return r.Close()
	})
}
