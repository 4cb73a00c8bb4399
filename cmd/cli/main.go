package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fileledger/internal/client/cli"
	"github.com/dmitrijs2005/fileledger/internal/client/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, args := config.LoadConfig(os.Args[1:])
	app, err := cli.NewApp(cfg)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Run(ctx, args); err != nil {
		stop()
		if errors.Is(err, cli.ErrUsage) {
			if len(args) > 0 {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

}
