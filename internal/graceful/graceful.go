package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Execute runs the given function with a context that is cancelled on
// SIGINT/SIGTERM, so an interrupted run stops cleanly mid-pipeline.
func Execute(pCtx context.Context, execute func(context.Context)) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(pCtx)
	go func() {
		if _, ok := <-sig; ok {
			cancel()
		}
	}()

	defer func() {
		signal.Stop(sig)
		close(sig)
	}()

	execute(ctx)
}
