package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"mova.dev/relay/internal/cli"
	"mova.dev/relay/internal/config"
)

func runProviders(args []string) int {
	fs := flag.NewFlagSet("providers", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build provider registry: %v\n", err)
		return 1
	}

	fmt.Printf("%-16s %-8s %-8s\n", "NAME", "PRIORITY", "ENABLED")
	for _, status := range registry.Status(nil) {
		fmt.Printf("%-16s %-8d %-8t\n", status.Name, status.Priority, status.Enabled)
	}
	return 0
}
