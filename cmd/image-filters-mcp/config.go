package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ironsheep/image-filters-mcp/internal/compute"
	"github.com/ironsheep/image-filters-mcp/internal/compute/webgpu"
	"github.com/ironsheep/image-filters-mcp/internal/engine"
)

// Backend names accepted by --backend and IMAGE_FILTERS_BACKEND.
const (
	backendAuto       = "auto"
	backendSequential = "sequential"
	backendSoftware   = "software"
	backendWebGPU     = "webgpu"
)

// config is the command line and environment configuration.
type config struct {
	backend  string
	logLevel slog.Level
	version  bool
	help     bool
}

// parseConfig reads args (without the program name) over the environment.
// Flags win over environment variables.
func parseConfig(args []string, getenv func(string) string) (config, error) {
	cfg := config{backend: backendAuto, logLevel: slog.LevelWarn}

	if v := getenv("IMAGE_FILTERS_BACKEND"); v != "" {
		cfg.backend = strings.ToLower(v)
	}
	if v := getenv("IMAGE_FILTERS_LOG_LEVEL"); v != "" {
		if err := cfg.logLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("IMAGE_FILTERS_LOG_LEVEL: %w", err)
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--version" || arg == "-v" || arg == "version":
			cfg.version = true
		case arg == "--help" || arg == "-h" || arg == "help":
			cfg.help = true
		case strings.HasPrefix(arg, "--backend="):
			cfg.backend = strings.ToLower(strings.TrimPrefix(arg, "--backend="))
		case arg == "--backend":
			if i+1 >= len(args) {
				return cfg, fmt.Errorf("--backend needs a value")
			}
			i++
			cfg.backend = strings.ToLower(args[i])
		default:
			return cfg, fmt.Errorf("unknown argument: %s", arg)
		}
	}

	switch cfg.backend {
	case backendAuto, backendSequential, backendSoftware, backendWebGPU:
	default:
		return cfg, fmt.Errorf("unknown backend %q (want auto, sequential, software or webgpu)", cfg.backend)
	}
	return cfg, nil
}

// acquirerFor returns the device source for a backend name, or nil for the
// sequential backend.
func acquirerFor(backend string) compute.Acquirer {
	switch backend {
	case backendSoftware:
		return compute.SoftwareAcquirer
	case backendWebGPU:
		return webgpu.Acquirer
	case backendAuto:
		return compute.First(webgpu.Acquirer, compute.SoftwareAcquirer)
	default:
		return nil
	}
}

// newEngine acquires the configured device and builds the engine. An
// unavailable device under auto leaves the engine sequential; an explicitly
// requested device that cannot be acquired is an error.
func newEngine(ctx context.Context, cfg config) (*engine.Engine, error) {
	acq := acquirerFor(cfg.backend)
	if acq == nil {
		return engine.New(engine.Options{Prefer: engine.Sequential}), nil
	}

	dev, err := acq.Acquire(ctx)
	if err != nil {
		if cfg.backend != backendAuto {
			return nil, fmt.Errorf("acquire %s device: %w", cfg.backend, err)
		}
		engine.Logger().Warn("no compute device; using sequential backend", "err", err)
		return engine.New(engine.Options{Prefer: engine.Sequential}), nil
	}

	prefer := engine.Auto
	if cfg.backend != backendAuto {
		prefer = engine.Parallel
	}
	return engine.New(engine.Options{Device: dev, Prefer: prefer}), nil
}
