package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"mova.dev/relay/internal/cli"
	"mova.dev/relay/internal/config"
	"mova.dev/relay/internal/db"
)

func runHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	limit := fs.Int("limit", 25, "Maximum number of rows to list")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *limit <= 0 {
		fmt.Fprintln(os.Stderr, "--limit must be positive")
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
	if !cfg.HistoryEnabled() {
		fmt.Fprintln(os.Stderr, "Translation history requires DATABASE_URL")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		return 1
	}
	defer pool.Close()

	rows, err := db.NewHistoryStore(pool).ListRecent(ctx, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list translation history: %v\n", err)
		return 1
	}
	if len(rows) == 0 {
		fmt.Println("No stored translations")
		return 0
	}

	for _, row := range rows {
		fmt.Printf(
			"%s  %s->%s  provider=%s  %q -> %q\n",
			row.CreatedAt.UTC().Format(time.RFC3339),
			row.SourceLang,
			row.TargetLang,
			row.ProviderName,
			clipText(row.OriginalText, 40),
			clipText(row.TranslatedText, 40),
		)
	}
	return 0
}

func clipText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
