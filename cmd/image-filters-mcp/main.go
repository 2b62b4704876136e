package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/image-filters-mcp/internal/engine"
	"github.com/ironsheep/image-filters-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func printHelp() {
	fmt.Println("image-filters-mcp - MCP server for image filters")
	fmt.Println()
	fmt.Println("Usage: image-filters-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --backend NAME   auto, sequential, software or webgpu (default auto)")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_FILTERS_BACKEND=NAME       Same as --backend")
	fmt.Println("  IMAGE_FILTERS_LOG_LEVEL=LEVEL    debug, info, warn or error (default warn)")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "image-filters-mcp: %v\n", err)
		os.Exit(2)
	}

	if cfg.version {
		fmt.Printf("image-filters-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}
	if cfg.help {
		printHelp()
		return
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel})))

	if cfg.logLevel <= slog.LevelDebug {
		log.Printf("Image Filters MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := newEngine(ctx, cfg)
	if err != nil {
		log.Fatalf("Engine error: %v", err)
	}
	defer eng.Close()

	engine.Logger().Info("serving", "backend", eng.Backend().String(), "device", eng.DeviceName())

	if err := server.New(eng).Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("Server error: %v", err)
		stop()
		eng.Close()
		os.Exit(1)
	}
}
