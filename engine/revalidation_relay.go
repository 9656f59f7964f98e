package engine

import (
	"context"

	"github.com/Luismorlan/logosarena/revalidate"
	"github.com/go-redis/redis/v8"
)

// RevalidationRelay forwards revalidation events published by other api
// server instances to the local websocket hub.
type RevalidationRelay struct {
	name   string
	client *redis.Client
	sink   revalidate.Signal
}

func NewRevalidationRelay(name string, client *redis.Client, sink revalidate.Signal) *RevalidationRelay {
	return &RevalidationRelay{name: name, client: client, sink: sink}
}

func (r *RevalidationRelay) RunModule(ctx context.Context) error {
	return revalidate.Relay(ctx, r.client, r.sink)
}

func (r *RevalidationRelay) Name() string {
	return r.name
}

func (r *RevalidationRelay) Shutdown() {
	r.client.Close()
}
