package revalidate

import (
	"context"
	"sync"
)

const (
	PathHome    = "/"
	PathNotice  = "/notice"
	PathRanking = "/ranking"
)

func DebatePath(debateID string) string {
	return "/debate/" + debateID
}

// Event is what subscribers receive: the presentation paths whose cached
// views must be recomputed on next read.
type Event struct {
	Paths []string `json:"paths"`
}

// Signal is notified after every successful mutation. It is best effort: a
// failed delivery is logged by the implementation and never fails the
// mutation.
type Signal interface {
	Revalidate(ctx context.Context, paths ...string)
}

// Multi fans a signal out to several implementations in order.
type Multi []Signal

func (m Multi) Revalidate(ctx context.Context, paths ...string) {
	for _, s := range m {
		s.Revalidate(ctx, paths...)
	}
}

// Noop drops every signal.
type Noop struct{}

func (Noop) Revalidate(ctx context.Context, paths ...string) {}

// Recorder keeps every signalled path. Used by tests.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *Recorder) Revalidate(ctx context.Context, paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
}

// Paths returns the recorded paths in signal order.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = nil
}
