// Command estoquectl opera la API de estoque desde la terminal.
//
//	estoquectl [--url URL] [--token TOKEN] <comando> [flags]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Getenv); err != nil {
		fmt.Fprintln(os.Stderr, "estoquectl:", err)
		os.Exit(1)
	}
}
