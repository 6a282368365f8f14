// Command promptsplit packs text fragments into prompts that fit a token limit.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/skosovsky/promptsplit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
