// Package main is the entry point for the idraft CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/runoshun/idraft/internal/app"
	"github.com/runoshun/idraft/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := cli.Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Create dependency injection container
	container, err := app.New(cwd)
	if err != nil {
		return runWithoutContainer(ctx, fmt.Errorf("failed to initialize: %w", err))
	}
	defer func() {
		_ = container.Close()
	}()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.ExecuteContext(ctx)
}

// runWithoutContainer handles a broken configuration or data directory.
// Help, version and the config template still work so the user can repair it.
func runWithoutContainer(ctx context.Context, initErr error) error {
	if !canRunWithoutContainer(os.Args[1:]) {
		return initErr
	}
	rootCmd := cli.NewRootCommand(nil, version)
	return rootCmd.ExecuteContext(ctx)
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help":
		return true
	case "config":
		return len(args) > 1 && args[1] == "template"
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "-h" || strings.HasPrefix(arg, "--help") {
			return true
		}
	}
	return false
}
