package utils

import (
	"github.com/Luismorlan/logosarena/utils/flag"
	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/sirupsen/logrus"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func datadogEnv() string {
	if IsProdEnv() {
		return "production"
	}
	return "development"
}

// StartTracer starts the Datadog tracer for the current service.
func StartTracer() {
	tracer.Start(
		tracer.WithService(flag.ServiceName),
		tracer.WithEnv(datadogEnv()),
	)

	Logger.Log.WithFields(
		logrus.Fields{"env": datadogEnv()},
	).Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	tracer.Stop()
}
