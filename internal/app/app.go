package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "translate":
		return runTranslate(args[1:])
	case "page":
		return runPage(args[1:])
	case "providers":
		return runProviders(args[1:])
	case "history":
		return runHistory(args[1:])
	case "hash-key":
		return runHashKey(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "relay CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  relay <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  translate  Translate text through the provider chain")
	fmt.Fprintln(os.Stderr, "  page       Extract readable text from a URL and translate it")
	fmt.Fprintln(os.Stderr, "  providers  Show the configured provider rotation")
	fmt.Fprintln(os.Stderr, "  history    List recent stored translations")
	fmt.Fprintln(os.Stderr, "  hash-key   Hash an admin API key for RELAY_ADMIN_KEY_HASH")
	fmt.Fprintln(os.Stderr, "  serve      Start the Echo API server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"relay <command> -h\" for command-specific flags.")
}
