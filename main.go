package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/cmd"
)

// Set via -ldflags "-X main.Version=... -X main.BuildTime=...".
var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	cmd.SetVersion(Version, BuildTime)

	// SIGINT/SIGTERM cancel the root context; the TUI and any in-flight
	// requests unwind through it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
