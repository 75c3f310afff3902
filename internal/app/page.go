package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"mova.dev/relay/internal/cli"
	"mova.dev/relay/internal/config"
	"mova.dev/relay/internal/logging"
	"mova.dev/relay/internal/reader"
)

func runPage(args []string) int {
	fs := flag.NewFlagSet("page", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	source := fs.String("source", "", "Source language code (default from RELAY_SOURCE_LANG, \"auto\" to detect)")
	target := fs.String("target", "", "Target language code (default from RELAY_TARGET_LANG)")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")
	extractOnly := fs.Bool("extract-only", false, "Print the extracted text without translating")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  relay page [--source en] [--target uk] [--extract-only] [--env .env] <url>")
		return 2
	}

	pageURL := strings.TrimSpace(fs.Arg(0))
	if pageURL == "" {
		fmt.Fprintln(os.Stderr, "page URL must not be empty")
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

	text, err := reader.FetchText(ctx, pageURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to extract text: %v\n", err)
		return 1
	}
	if *extractOnly {
		fmt.Println(text)
		return 0
	}

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
	return 0
}
