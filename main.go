package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmorgan81/pollinate/internal/inject"
	"github.com/dmorgan81/pollinate/internal/log"
	"github.com/dmorgan81/pollinate/internal/session"
	"github.com/samber/do"
)

func main() {
	logger := log.New(os.Stderr, log.ParseLevel(os.Getenv("POLLINATE_LOG_LEVEL"), slog.LevelWarn))
	ctx := log.NewContext(context.Background(), logger)
	injector := inject.Setup(ctx)

	err := do.MustInvoke[*session.Session](injector).Run(ctx)
	_ = injector.Shutdown()
	if err != nil {
		logger.Error("session ended", "error", err)
		os.Exit(1)
	}
}
