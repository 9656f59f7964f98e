package engine

import (
	"encoding/json"

	"github.com/Luismorlan/logosarena/model"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"
)

const (
	// Report stored, payload is a json model.ReportFiled.
	TopicReportFiled = "report.filed"
)

// NewEventBus returns the in-process bus shared by the api handlers and the
// engine modules. Events published before a module subscribes are dropped.
func NewEventBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            100,
			BlockPublishUntilSubscriberAck: false,
		},
		watermill.NewStdLogger(false, false),
	)
}

func PublishReportFiled(pub message.Publisher, report *model.ReportFiled) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "marshal report event")
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return errors.Wrap(pub.Publish(TopicReportFiled, msg), "publish report event")
}

func DecodeReportFiled(msg *message.Message) (*model.ReportFiled, error) {
	var report model.ReportFiled
	if err := json.Unmarshal(msg.Payload, &report); err != nil {
		return nil, errors.Wrap(err, "unmarshal report event")
	}
	return &report, nil
}
