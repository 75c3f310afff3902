package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"mova.dev/relay/internal/auth"
)

func runHashKey(args []string) int {
	fs := flag.NewFlagSet("hash-key", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  relay hash-key <key>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Prints a bcrypt hash suitable for RELAY_ADMIN_KEY_HASH.")
		return 2
	}

	key := strings.TrimSpace(fs.Arg(0))
	if len(key) < 8 {
		fmt.Fprintln(os.Stderr, "key must be at least 8 characters")
		return 2
	}

	hash, err := auth.HashAPIKey(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash key: %v\n", err)
		return 1
	}

	fmt.Println(hash)
	return 0
}
