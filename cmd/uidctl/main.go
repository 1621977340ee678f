package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raise-sistemas/jsr-uid/internal/cmd/uidctl"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkglog"
)

func main() {
	pkglog.InitLogging()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := uidctl.NewRoot().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "uidctl:", err)
		os.Exit(1)
	}
}
