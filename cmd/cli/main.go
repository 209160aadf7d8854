package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/amirasaad/shoplist/infra/initializer"
	"github.com/amirasaad/shoplist/pkg/config"
	"github.com/fatih/color"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  migrate                            import every pending legacy generation
  status                             show the migration state of each generation
  lists [purchases|archive|trash]    show arranged lists with totals
  products <shopping-uid>            show the arranged products of a list
  dump <gen1|gen2>                   print the raw legacy rows as YAML`

var errUsage = errors.New("invalid arguments")

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Failed to load config: %v", err))
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Failed to initialize: %v", err))
		os.Exit(1)
	}

	err = newCLI(deps, os.Stdout).run(context.Background(), os.Args[1:])
	if cerr := deps.Close(); cerr != nil {
		deps.Logger.Warn("Failed to close resources", "error", cerr)
	}
	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
