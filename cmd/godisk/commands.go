package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gosuri/uilive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/godisk/internal/domain/explorer"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/config"
	"github.com/GriffinCanCode/godisk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/godisk/internal/remote"
)

type options struct {
	verbose bool
	format  string
	backend string
	timeout time.Duration
	quiet   bool
	logger  *logging.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "godisk",
		Short: "godisk - disk backend console and explorer",
		Long: `godisk runs console scripts against the disk backend and rebuilds the
explorer view (disks, partitions, folders and files) from the backend output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown output format %q", opts.format)
			}

			if !opts.verbose {
				opts.logger = logging.NewNop()
				return nil
			}
			logger, err := logging.New(logging.Config{
				Level:       "debug",
				Development: true,
				OutputPaths: []string{"stderr"},
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging to stderr")
	root.PersistentFlags().StringVarP(&opts.format, "output", "o", formatText, "Output format: text, json or yaml")

	root.AddCommand(newRunCmd(opts), newParseCmd(opts))
	return root
}

func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [script-file|-]",
		Short: "Execute a script against the backend and print the explorer",
		Long: `Sends every non-empty, non-comment line of the script to the backend in
order, stopping at the first failing command, then reconciles the combined
output into the explorer model.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.backend, "backend", "", "Backend base URL (default from BACKEND_URL)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-command timeout (default from BACKEND_TIMEOUT)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Hide live progress")
	return cmd
}

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [output-file|-]",
		Short: "Reconcile captured backend output without contacting the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			svc := explorer.NewService(nil).WithLogger(opts.logger)
			res, err := svc.Apply(cmdContext(cmd), text)
			if err != nil {
				return err
			}
			res.Output = ""
			return render(cmd.OutOrStdout(), opts.format, res)
		},
	}
}

func runScript(cmd *cobra.Command, opts *options, source string) error {
	script, err := readInput(cmd.InOrStdin(), source)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	clientCfg := remote.Config{
		BaseURL:         cfg.Backend.URL,
		Timeout:         cfg.Backend.Timeout.Std(),
		Retries:         cfg.Backend.Retries,
		RPS:             cfg.Backend.RPS,
		BreakerFailures: cfg.Backend.BreakerFailures,
	}
	if opts.backend != "" {
		clientCfg.BaseURL = opts.backend
	}
	if opts.timeout > 0 {
		clientCfg.Timeout = opts.timeout
	}

	client := remote.NewClient(clientCfg).WithLogger(opts.logger)
	svc := explorer.NewService(remote.NewRunner(client, cfg.Console.MaxLines)).WithLogger(opts.logger)

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	total := len(remote.Commands(script))
	var onStep func(remote.Step)
	if !opts.quiet && total > 0 {
		writer := uilive.New()
		writer.Out = cmd.ErrOrStderr()
		writer.Start()
		defer writer.Stop()

		done := 0
		onStep = func(step remote.Step) {
			done++
			_, _ = fmt.Fprintf(writer, "[%d/%d] line %d: %s\n", done, total, step.Line, step.Command)
		}
	}

	res, err := svc.Execute(ctx, script, onStep)
	if err != nil {
		opts.logger.Debug("Script failed", zap.Error(err))
		return err
	}
	return render(cmd.OutOrStdout(), opts.format, res)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readInput reads a file, or stdin when source is "-"
func readInput(stdin io.Reader, source string) (string, error) {
	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return string(data), nil
}
