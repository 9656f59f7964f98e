package engine

import (
	"context"
	"time"

	Logger "github.com/Luismorlan/logosarena/utils/log"
)

// GracefulRetryDelay is the wait before a failed module is restarted.
var GracefulRetryDelay = 3 * time.Second

// RunModuleWithGracefulRestart runs module until it returns nil or ctx is
// done, restarting it after every error.
func RunModuleWithGracefulRestart(ctx context.Context, module Module) {
	for {
		err := module.RunModule(ctx)
		if err == nil || ctx.Err() != nil {
			return
		}
		Logger.Log.Errorf(
			"Module %s exited with error %v, retry in %s",
			module.Name(),
			err,
			GracefulRetryDelay)

		// Wait for a small amount of time and restart.
		select {
		case <-ctx.Done():
			return
		case <-time.After(GracefulRetryDelay):
		}
	}
}

type Module interface {
	// RunModule contains the customized logic of the module. It takes in a
	// context object by which its lifecycle is managed. Return error if
	// encountered any error during execution.
	RunModule(ctx context.Context) error

	// Return name of the Module. Uniquely identifies the module instance.
	Name() string

	// Shutdown releases resources held by the module after its context is
	// cancelled.
	Shutdown()
}
