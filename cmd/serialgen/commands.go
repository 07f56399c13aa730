package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/neomorfeo/serialgen/internal/adapter/console"
	"github.com/neomorfeo/serialgen/internal/adapter/fsm"
	"github.com/neomorfeo/serialgen/internal/app"
	"github.com/neomorfeo/serialgen/internal/domain"
)

// newRootCmd builds the serialgen command tree. clip backs generate --copy.
func newRootCmd(clip domain.Clipboard) *cobra.Command {
	root := &cobra.Command{
		Use:   "serialgen",
		Short: "serialgen generates random serials",
		Long: `serialgen samples fixed-length serials from a 72-character alphabet.

Without a subcommand it runs the HTTP API (same as "serialgen serve").
Configuration is read from the environment: PORT, DATABASE_PATH,
SERIAL_LENGTH, SERIAL_SEED, LOG_LEVEL, LOG_FORMAT and OTEL_*.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			return run()
		},
	}

	root.AddCommand(
		newServeCmd(),
		newGenerateCmd(clip),
		newBackgroundCmd(),
	)
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return run()
		},
	}
}

func newGenerateCmd(clip domain.Clipboard) *cobra.Command {
	var (
		length int
		seed   string
		toClip bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a new serial",
		Example: `  serialgen generate
  serialgen generate --length 32 --copy
  serialgen generate --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("length") {
				n, err := strconv.Atoi(envOrDefault("SERIAL_LENGTH", strconv.Itoa(domain.DefaultLength)))
				if err != nil {
					return fmt.Errorf("invalid SERIAL_LENGTH: %w", err)
				}
				length = n
			}

			generator, err := newGenerator(seed)
			if err != nil {
				return err
			}

			logger := newLogger()
			serials, err := app.NewSerialService(generator, &logPublisher{logger: logger},
				app.WithDefaultLength(length), app.WithLogger(logger))
			if err != nil {
				return err
			}

			shell := console.NewShell(cmd.OutOrStdout())
			widget := app.NewWidget(shell.Handles(), serials, clip, fsm.New(), app.WithWidgetLogger(logger))

			ctx := cmd.Context()
			widget.Bind(ctx)
			if _, err := widget.OnGenerateRequested(ctx); err != nil {
				return err
			}
			if !toClip {
				return nil
			}

			// The notifier has already printed the failure notice.
			var clipErr *domain.ClipboardError
			if err := widget.OnCopyRequested(ctx); err != nil && !errors.As(err, &clipErr) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", domain.DefaultLength, "Number of characters (default from SERIAL_LENGTH)")
	cmd.Flags().StringVar(&seed, "seed", envOrDefault("SERIAL_SEED", ""), "Seed for a reproducible sequence")
	cmd.Flags().BoolVarP(&toClip, "copy", "c", false, "Copy the serial to the system clipboard")
	return cmd
}

func newBackgroundCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "background",
		Short: "Print the CSS gradient for a color",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			generator, err := newGenerator("")
			if err != nil {
				return err
			}

			logger := newLogger()
			serials, err := app.NewSerialService(generator, &logPublisher{logger: logger}, app.WithLogger(logger))
			if err != nil {
				return err
			}

			g, err := serials.Background(cmd.Context(), color)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), g.CSS())
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", domain.DefaultColor, "Color in #rrggbb form")
	return cmd
}

// logPublisher writes activity to the debug log. CLI runs have no ledger.
type logPublisher struct {
	logger *slog.Logger
}

func (p *logPublisher) Publish(ctx context.Context, a domain.Activity) error {
	p.logger.DebugContext(ctx, "activity",
		"id", a.ID,
		"event", a.Event,
		"length", a.Length,
		"detail", a.Detail,
	)
	return nil
}
