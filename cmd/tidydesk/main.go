package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/tidydesk/tidydesk/internal/fsops"
	"github.com/tidydesk/tidydesk/internal/provider"
	"github.com/tidydesk/tidydesk/internal/runner"
	"github.com/tidydesk/tidydesk/internal/workdir"
	"github.com/tidydesk/tidydesk/memory"
	"github.com/tidydesk/tidydesk/tools"
)

func main() {
	// Basic env check (SDK also reads API key)
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		fmt.Println("Missing ANTHROPIC_API_KEY; export it before running.")
		os.Exit(1)
	}

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Which folder should I organize? (desktop/downloads/documents/pictures or a path): ")
	ref, ok := readLine(scanner)
	if !ok {
		os.Exit(0)
	}

	target, err := workdir.Resolve(ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Target: %s\n", target)
	fmt.Print("Organize this folder? [y/N]: ")
	answer, ok := readLine(scanner)
	if !ok {
		os.Exit(0)
	}
	if !isYes(answer) {
		fmt.Print("Enter a folder path instead (blank to cancel): ")
		alt, ok := readLine(scanner)
		if !ok || strings.TrimSpace(alt) == "" {
			fmt.Println("Cancelled.")
			os.Exit(0)
		}
		target, err = workdir.Resolve(alt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Target: %s\n", target)
	}

	// All tool paths are validated relative to this root from here on.
	if err := fsops.SetRoot(target); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Set up graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	client := provider.NewAnthropicClient()
	r := runner.New(client, tools.Registry())
	r.Log = diagnosticsLogger()

	conv := memory.NewConversation()
	conv.AppendUserText(fmt.Sprintf(
		"Please organize the files in %s. Work with paths relative to that directory (it is '.').",
		target,
	))

	summary, err := r.Run(ctx, provider.DefaultModel, conv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n\u001b[93mClaude\u001b[0m: %s\n", summary)
}

// readLine returns the next stdin line; ok=false on EOF.
func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
		}
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

// diagnosticsLogger writes runner diagnostics to stderr; verbose output is
// gated behind TIDY_DEBUG=1.
func diagnosticsLogger() logr.Logger {
	verbosity := 0
	if os.Getenv("TIDY_DEBUG") == "1" {
		verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		fmt.Fprintln(os.Stderr, prefix, args)
	}, funcr.Options{Verbosity: verbosity})
}
