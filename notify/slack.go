package notify

import (
	"context"
	"fmt"

	"github.com/Luismorlan/logosarena/model"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// SlackNotifier posts report notifications to an incoming webhook.
type SlackNotifier struct {
	webhookURL string
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

func buildReportMessage(report *model.ReportFiled) *slack.WebhookMessage {
	header := slack.NewTextBlockObject("mrkdwn", "*"+ReportSubject(report)+"*", false, false)
	detail := slack.NewTextBlockObject("mrkdwn", fmt.Sprintf(
		"*Target:* %s `%s`\n*Reason:* %s",
		report.Report.TargetType, report.Report.TargetID, report.Report.Reason), false, false)
	return &slack.WebhookMessage{
		Text: ReportSubject(report),
		Blocks: &slack.Blocks{BlockSet: []slack.Block{
			slack.NewSectionBlock(header, nil, nil),
			slack.NewDividerBlock(),
			slack.NewSectionBlock(detail, nil, nil),
		}},
	}
}

func (n *SlackNotifier) NotifyReport(ctx context.Context, report *model.ReportFiled) error {
	err := slack.PostWebhookContext(ctx, n.webhookURL, buildReportMessage(report))
	return errors.Wrap(err, "post report to slack")
}
