package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"catalog-extract/internal/config"
	"catalog-extract/internal/logger"
	"catalog-extract/internal/server"
)

const (
	appName    = "Catalog Extract Server"
	appVersion = "1.0.0"
)

var (
	configPath  string
	addr        string
	verbose     bool
	showVersion bool
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.StringVar(&addr, "addr", "", "Override listen address from config")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n", appName, appVersion)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		return 1
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	logPath := filepath.Join(cfg.Output.Dir, "catalog_extract.log")
	if err := logger.Init(os.Stdout, logPath, verbose); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	if verbose {
		cfg.Print()
	}

	srv := server.New(cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error: %v", err)
			return 1
		}
	case sig := <-sigCh:
		logger.Info("Received %s, shutting down...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error: %v", err)
			return 1
		}
	}

	logger.Info("✅ Server stopped.")
	return 0
}
