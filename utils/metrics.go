package utils

import (
	"os"

	"github.com/DataDog/datadog-go/statsd"
	Logger "github.com/Luismorlan/logosarena/utils/log"
)

const (
	MetricMutation = "arena.mutation"
)

// GetStatsdClient returns a dogstatsd client for DD_AGENT_ADDR, or a no-op
// client when the agent is not configured or unreachable.
func GetStatsdClient() statsd.ClientInterface {
	addr := os.Getenv("DD_AGENT_ADDR")
	if addr == "" {
		return &statsd.NoOpClient{}
	}
	client, err := statsd.New(addr)
	if err != nil {
		Logger.Log.Warn("cannot create statsd client, metrics disabled: ", err)
		return &statsd.NoOpClient{}
	}
	return client
}
