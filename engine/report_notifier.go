package engine

import (
	"context"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/Luismorlan/logosarena/notify"
	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/ThreeDotsLabs/watermill/message"
)

const metricReportNotified = "arena.report.notified"

// ReportNotifier listens to filed reports and tells the admin about them.
// Delivery is attempted once, failures are logged and counted.
type ReportNotifier struct {
	name       string
	subscriber message.Subscriber
	notifier   notify.Notifier
	statsd     statsd.ClientInterface
}

func NewReportNotifier(name string, subscriber message.Subscriber, notifier notify.Notifier, statsd statsd.ClientInterface) *ReportNotifier {
	return &ReportNotifier{
		name:       name,
		subscriber: subscriber,
		notifier:   notifier,
		statsd:     statsd,
	}
}

func (r *ReportNotifier) RunModule(ctx context.Context) error {
	messages, err := r.subscriber.Subscribe(ctx, TopicReportFiled)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		report, err := DecodeReportFiled(msg)
		if err != nil {
			Logger.Log.Errorln("drop malformed report event: ", err)
			continue
		}

		outcome := "sent"
		if err := r.notifier.NotifyReport(ctx, report); err != nil {
			outcome = "failed"
			Logger.Log.WithField("report_id", report.Report.Id).Errorln("cannot notify report: ", err)
		}
		r.statsd.Incr(metricReportNotified, []string{"outcome:" + outcome}, 1)
	}

	return nil
}

func (r *ReportNotifier) Name() string {
	return r.name
}

func (r *ReportNotifier) Shutdown() {}
