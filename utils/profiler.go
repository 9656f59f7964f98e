package utils

import (
	"github.com/Luismorlan/logosarena/utils/flag"
	Logger "github.com/Luismorlan/logosarena/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

// StartProfiler starts the Datadog profiler. Failing to start is logged and
// does not stop the service.
func StartProfiler() {
	if err := profiler.Start(
		profiler.WithService(flag.ServiceName),
		profiler.WithEnv(datadogEnv()),
		profiler.WithProfileTypes(
			profiler.CPUProfile,
			profiler.HeapProfile,
		),
	); err != nil {
		Logger.Log.Warn("cannot start profiler: ", err)
	}
}

// Stop profiler, OK to be closed multiple times
func CloseProfiler() {
	profiler.Stop()
}
