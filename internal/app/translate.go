package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"mova.dev/relay/internal/cli"
	"mova.dev/relay/internal/config"
	"mova.dev/relay/internal/logging"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	source := fs.String("source", "", "Source language code (default from RELAY_SOURCE_LANG, \"auto\" to detect)")
	target := fs.String("target", "", "Target language code (default from RELAY_TARGET_LANG)")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")
	verbose := fs.Bool("verbose", false, "Print the provider summary line")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read stdin: %v\n", err)
			return 1
		}
		text = strings.TrimSpace(string(raw))
	}
	if text == "" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  relay translate [--source en] [--target uk] [--env .env] <text>")
		fmt.Fprintln(os.Stderr, "  relay translate - < file.txt")
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

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	svc, _, cleanup, err := buildService(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer cleanup()

	result := svc.Translate(ctx, text, *source, *target)
	if !result.Succeeded {
		fmt.Fprintln(os.Stderr, "Nothing to translate")
		return 1
	}

	fmt.Println(result.Text)
	if *verbose {
		fmt.Fprintf(os.Stderr, "translate provider=%s latency_ms=%d\n", result.Provider, result.LatencyMs)
	}
	return 0
}
