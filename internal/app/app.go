package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/fibseq/internal/cli"
	"github.com/agbru/fibseq/internal/config"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/server"
	"github.com/agbru/fibseq/internal/tui"
	"github.com/agbru/fibseq/internal/ui"
)

// Application represents the fibseq application instance.
type Application struct {
	Config    config.AppConfig
	Factory   sequence.Factory
	ErrWriter io.Writer
	// In feeds --prompt and the REPL.
	In io.Reader

	logger   logging.Logger
	recorder *metrics.Recorder
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom generator factory for the application.
func WithFactory(f sequence.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used by --prompt and the REPL.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = sequence.NewDefaultFactory()
	}

	programName := "fibseq"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	app.logger = logging.NewLogger(errWriter, "app")
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	if err := logging.SetLevel(a.Config.LogLevel); err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	ui.InitTheme(a.Config.NoColor, os.Stdout)

	mode := a.Config.Mode()
	if a.Config.MetricsFile != "" || mode == config.ModeServer {
		a.recorder = metrics.NewRecorder()
	}
	a.logger.Debug("starting",
		logging.String("mode", mode.String()),
		logging.Uint64("count", a.Config.Count),
		logging.String("width", a.Config.Width))

	code := a.runMode(ctx, mode, out)
	if metricsCode := a.writeMetrics(); code == apperrors.ExitSuccess {
		code = metricsCode
	}

	a.logger.Info("finished", logging.String("mode", mode.String()), logging.Int("exit_code", code))
	return code
}

func (a *Application) runMode(ctx context.Context, mode config.Mode, out io.Writer) int {
	switch mode {
	case config.ModeTUI:
		return a.runTUI(ctx)
	case config.ModeREPL:
		return a.runREPL(ctx, out)
	case config.ModeServer:
		return a.runServer(ctx, out)
	}

	// Batch modes share one deadline.
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch mode {
	case config.ModePrompt:
		return a.runPrompt(ctx, out)
	case config.ModeIndex:
		return a.runIndex(ctx, a.Config.At, out)
	default:
		return a.runSequence(ctx, out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the index explorer. Interactive sessions are bounded by
// signals only; --timeout applies to batch runs.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	return tui.Run(ctx, a.Factory, a.Config, Version, a.recorder)
}

// runREPL starts the interactive session. --timeout bounds each command.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	collection, _ := a.Config.Collection()
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		Width:      a.Config.Width,
		Separator:  a.Config.Separator,
		Timeout:    a.Config.Timeout,
		Collection: collection,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.SetRecorder(a.recorder)
	repl.Start(ctx)

	if ctx.Err() != nil {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until a signal arrives. --timeout bounds
// each generation request.
func (a *Application) runServer(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	collection, _ := a.Config.Collection()
	srv := server.New(a.Config.Serve, a.Factory, collection, a.recorder,
		server.WithLogger(logging.NewLogger(a.ErrWriter, "server")),
		server.WithTimeout(a.Config.Timeout),
		server.WithSeparator(a.Config.Separator),
	)
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Serving on %s%s%s (endpoints: /sequence /access /metrics /health)\n",
			ui.ColorCyan(), a.Config.Serve, ui.ColorReset())
	}
	if err := srv.Start(ctx); err != nil {
		return apperrors.HandleError(err, a.ErrWriter, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

// writeMetrics exports the recorder to --metrics-file, if any.
func (a *Application) writeMetrics() int {
	if a.recorder == nil || a.Config.MetricsFile == "" {
		return apperrors.ExitSuccess
	}
	if err := a.recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.logger.Error("metrics export failed", err, logging.String("path", a.Config.MetricsFile))
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
