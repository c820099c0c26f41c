package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/app"
	kernel "github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/config"
)

func main() {
	cfg := config.Load() // loads .env when present

	application, err := kernel.New(cfg, kernel.WithConfigurations(app.Config{}))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger.Error("application stopped with error", zap.Error(err))
		_ = application.Logger.Sync()
		os.Exit(1)
	}
}
