package resolver

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/Luismorlan/logosarena/app_setting"
	"github.com/Luismorlan/logosarena/engine"
	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/revalidate"
	"github.com/Luismorlan/logosarena/store"
	"github.com/Luismorlan/logosarena/utils"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type countingStatsd struct {
	*statsd.NoOpClient
	mu   sync.Mutex
	incr []string
}

func (c *countingStatsd) Incr(name string, tags []string, rate float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.incr = append(c.incr, name+"|"+strings.Join(tags, ","))
	return nil
}

func (c *countingStatsd) counted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.incr...)
}

type testEnv struct {
	st      *store.FakeStore
	rec     *revalidate.Recorder
	bus     *gochannel.GoChannel
	metrics *countingStatsd
	r       *Resolver
	now     time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithSetting(t, app_setting.DefaultArenaAppSetting())
}

func newTestEnvWithSetting(t *testing.T, setting app_setting.ArenaAppSetting) *testEnv {
	e := &testEnv{
		st:      store.NewFakeStore(),
		rec:     &revalidate.Recorder{},
		bus:     engine.NewEventBus(),
		metrics: &countingStatsd{NoOpClient: &statsd.NoOpClient{}},
		now:     testClock,
	}
	t.Cleanup(func() { e.bus.Close() })
	clock := func() time.Time { return e.now }
	e.st.Now = clock
	e.r = New(e.st, e.rec, e.bus, e.metrics, setting)
	e.r.Now = clock
	return e
}

// advance moves the shared clock of the store and the resolver.
func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

func identity(id string) *model.Identity {
	return &model.Identity{Id: id, Email: id + "@example.com"}
}

func kindOf(err error) FailureKind {
	if f := AsFailure(err); f != nil {
		return f.Kind
	}
	return ""
}

// panicStore panics on every call through the nil embedded interface.
type panicStore struct {
	store.Store
}

func TestTrackRecoversPanic(t *testing.T) {
	metrics := &countingStatsd{NoOpClient: &statsd.NoOpClient{}}
	r := New(panicStore{}, revalidate.Noop{}, nil, metrics, app_setting.DefaultArenaAppSetting())

	argument, err := r.SubmitArgument(context.Background(), identity("user_a"), SubmitArgumentInput{
		DebateID: uuid.New().String(),
		Side:     model.SidePro,
		Content:  utils.TestArgumentContent,
	})
	assert.Nil(t, argument)
	require.Error(t, err)
	assert.Equal(t, StoreError, kindOf(err))
	assert.Equal(t, UnexpectedErrorMessage, err.Error())
	assert.Equal(t, []string{"arena.mutation|operation:submit_argument,outcome:store_error"}, metrics.counted())
}

func TestGuardRecoversPanic(t *testing.T) {
	r := New(panicStore{}, nil, nil, nil, app_setting.DefaultArenaAppSetting())
	debates, err := r.ListDebates(context.Background())
	assert.Nil(t, debates)
	assert.Equal(t, StoreError, kindOf(err))
}

func TestTrackCountsOutcome(t *testing.T) {
	e := newTestEnv(t)
	utils.TestCreateAdminAndValidate(t, e.st, "admin", "admin")

	_, err := e.r.CreateNotice(context.Background(), identity("admin"), NoticeInput{Title: "hello", Content: "world"})
	require.NoError(t, err)
	_, err = e.r.CreateNotice(context.Background(), nil, NoticeInput{Title: "hello", Content: "world"})
	require.Error(t, err)

	assert.Equal(t, []string{
		"arena.mutation|operation:create_notice,outcome:success",
		"arena.mutation|operation:create_notice,outcome:auth_required",
	}, e.metrics.counted())
}

func TestStoreErrorPassesMessageThrough(t *testing.T) {
	e := newTestEnv(t)
	e.st.FailWith = assert.AnError

	_, err := e.r.ListDebates(context.Background())
	require.Error(t, err)
	assert.Equal(t, StoreError, kindOf(err))
	assert.Equal(t, assert.AnError.Error(), err.Error())
}

func TestAsFailure(t *testing.T) {
	assert.Nil(t, AsFailure(nil))

	f := &Failure{Kind: NotFound, Message: "gone"}
	assert.Equal(t, f, AsFailure(f))

	wrapped := AsFailure(assert.AnError)
	assert.Equal(t, StoreError, wrapped.Kind)
	assert.Equal(t, assert.AnError.Error(), wrapped.Message)
}
