package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/Luismorlan/logosarena/model"
	"github.com/Luismorlan/logosarena/notify"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyModule struct {
	runs     int32
	failures int32
	shutdown int32
}

func (m *flakyModule) RunModule(ctx context.Context) error {
	if atomic.AddInt32(&m.runs, 1) <= m.failures {
		return errors.New("transient")
	}
	<-ctx.Done()
	return nil
}

func (m *flakyModule) Name() string { return "flaky" }

func (m *flakyModule) Shutdown() { atomic.AddInt32(&m.shutdown, 1) }

func TestRunModuleWithGracefulRestart(t *testing.T) {
	GracefulRetryDelay = 10 * time.Millisecond
	defer func() { GracefulRetryDelay = 3 * time.Second }()

	m := &flakyModule{failures: 2}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunModuleWithGracefulRestart(ctx, m)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&m.runs) == 3
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestEngineRunAndShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := &flakyModule{}
	e := NewEngine([]Module{m}, ctx, cancel, NewEventBus())

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&m.runs) == 1
	}, time.Second, 5*time.Millisecond)

	e.Shutdown()
	<-done
	assert.Equal(t, int32(1), atomic.LoadInt32(&m.shutdown))
}

func TestReportNotifier(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()
	rec := &notify.Recorder{}
	notifier := NewReportNotifier("report_notifier", bus, rec, &statsd.NoOpClient{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.RunModule(ctx)
	// Subscription happens inside RunModule, wait for it before publishing.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, bus.Publish(TopicReportFiled, message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	require.NoError(t, PublishReportFiled(bus, &model.ReportFiled{
		Report:       model.Report{Id: "report_1", TargetType: model.ReportTargetArgument, Reason: "spam"},
		ReporterName: "alice",
	}))

	require.Eventually(t, func() bool {
		return len(rec.Reports()) == 1
	}, time.Second, 10*time.Millisecond)
	got := rec.Reports()[0]
	assert.Equal(t, "report_1", got.Report.Id)
	assert.Equal(t, "alice", got.ReporterName)
}
