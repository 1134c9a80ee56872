// Command devconsole runs the developer console and telemetry overlay in a
// terminal. Press the toggle key (default "|") to open the console and
// type "list" for the available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"codeberg.org/mutker/devconsole/internal/config"
	"codeberg.org/mutker/devconsole/internal/errors"
	"codeberg.org/mutker/devconsole/internal/gpu"
	"codeberg.org/mutker/devconsole/internal/logger"
	"codeberg.org/mutker/devconsole/internal/overlay"
	"codeberg.org/mutker/devconsole/internal/pid"
	"codeberg.org/mutker/devconsole/internal/recorder"
	"codeberg.org/mutker/devconsole/internal/source"
	"codeberg.org/mutker/devconsole/internal/telemetry"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

const logFilePerm = 0o644

func main() {
	os.Exit(execute())
}

// execute runs the host and returns the process exit code. Deferred
// cleanup runs before main exits.
func execute() int {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	logFile, err := initLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		return 1
	}
	defer logFile.Close()

	if err := pid.Write(cfg.PIDFile); err != nil {
		fmt.Fprintf(os.Stderr, "devconsole: %v\n", err)
		return 1
	}
	defer func() {
		if err := pid.Remove(cfg.PIDFile); err != nil {
			logger.Error().Err(err).Msg("Failed to remove PID file")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := run(ctx, cfg); err != nil {
		logger.Error().Err(err).Msg("Error in main loop")
		fmt.Fprintf(os.Stderr, "devconsole: %v\n", err)
		return 1
	}

	logger.Info().Msg("Exiting...")
	return 0
}

// initLogger sends logs to the configured file so they never land on the
// terminal being drawn.
func initLogger(cfg *config.Config) (*os.File, error) {
	errFactory := errors.New()

	level, err := logger.ParseLevel(cfg.LogLevel.String())
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, errFactory.Wrap(errors.ErrOpenLogFile, err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrOpenLogFile, err)
	}

	logger.Init(level, f, logger.IsService())
	logger.Debug().
		Str("config", cfg.Source).
		Str("log_level", cfg.LogLevel.String()).
		Msg("Config loaded")

	return f, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	errFactory := errors.New()

	rec, err := recorder.New(cfg.RecorderConfig(), logger.New().With("recorder"))
	if err != nil {
		return errFactory.Wrap(errors.ErrInitApp, err)
	}

	ov, err := overlay.New(overlay.Config{
		Console:      cfg.ConsoleConfig(),
		Board:        cfg.BoardConfig(),
		GraphEnabled: cfg.GraphEnabled,
	}, overlay.WithRecorder(rec))
	if err != nil {
		rec.Close()
		return errFactory.Wrap(errors.ErrInitApp, err)
	}
	defer func() {
		if err := ov.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close recorder")
		}
	}()

	sources := []telemetry.Source{
		source.NewFrameRate(nil),
		source.NewCPU(nil),
		source.NewHeap(nil),
	}
	for _, src := range sources {
		if err := ov.AddSeries(src); err != nil {
			return errFactory.Wrap(errors.ErrInitApp, err)
		}
	}

	if cfg.GPUEnabled {
		reader, err := attachGPU(ov, cfg.GPUIndex)
		if err != nil {
			logger.Warn().Err(err).Int("index", cfg.GPUIndex).Msg("GPU sensors unavailable")
			ov.Session().Print("GPU sensors unavailable: " + err.Error())
		} else {
			defer reader.Close()
		}
	}

	m := newModel(ctx, ov, newKeyMap(cfg.ToggleKey), cfg.TickInterval)
	if err := registerHostCommands(ov, m); err != nil {
		return errFactory.Wrap(errors.ErrInitApp, err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errFactory.Wrap(errors.ErrMainLoop, err)
	}

	return nil
}

func attachGPU(ov *overlay.Overlay, index int) (*gpu.Reader, error) {
	reader, err := gpu.Open(index, logger.New().With("gpu"))
	if err != nil {
		return nil, err
	}

	for _, src := range reader.Sources(gpu.DefaultPollInterval) {
		if err := ov.AddSeries(src); err != nil {
			reader.Close()
			return nil, err
		}
	}
	if err := reader.RegisterCommands(ov.Registry()); err != nil {
		reader.Close()
		return nil, err
	}

	return reader, nil
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
