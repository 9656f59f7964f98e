package notify

import (
	"context"
	"fmt"
	"html"
	"os"
	"sync"

	"github.com/Luismorlan/logosarena/model"
	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

const defaultAWSRegion = "ap-northeast-2"

// Notifier tells the admin that a report was filed.
type Notifier interface {
	NotifyReport(ctx context.Context, report *model.ReportFiled) error
}

// Multi notifies through every notifier and returns the first error after
// trying all of them.
type Multi []Notifier

func (m Multi) NotifyReport(ctx context.Context, report *model.ReportFiled) error {
	var first error
	for _, n := range m {
		if err := n.NotifyReport(ctx, report); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Skip is used when no delivery channel is configured.
type Skip struct{}

func (Skip) NotifyReport(ctx context.Context, report *model.ReportFiled) error {
	Logger.Log.Warn("no notification channel configured, skipping notification for report ", report.Report.Id)
	return nil
}

// Recorder keeps every notified report. Used by tests.
type Recorder struct {
	mu      sync.Mutex
	reports []*model.ReportFiled
}

func (r *Recorder) NotifyReport(ctx context.Context, report *model.ReportFiled) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

func (r *Recorder) Reports() []*model.ReportFiled {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.ReportFiled(nil), r.reports...)
}

// NewNotifierFromEnv builds the notifiers configured by env: SES email when
// SES_SENDER is set, Slack when SLACK_WEBHOOK_URL is set.
func NewNotifierFromEnv(adminEmail string) (Notifier, error) {
	var notifiers Multi
	if sender := os.Getenv("SES_SENDER"); sender != "" {
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = defaultAWSRegion
		}
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(region),
		})
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, NewEmailNotifier(ses.New(sess), sender, adminEmail))
	}
	if url := os.Getenv("SLACK_WEBHOOK_URL"); url != "" {
		notifiers = append(notifiers, NewSlackNotifier(url))
	}
	if len(notifiers) == 0 {
		return Skip{}, nil
	}
	return notifiers, nil
}

func reporterName(report *model.ReportFiled) string {
	if report.ReporterName == "" {
		return "Unknown"
	}
	return report.ReporterName
}

// ReportSubject is the fixed subject template of a report notification.
func ReportSubject(report *model.ReportFiled) string {
	return fmt.Sprintf("[Logos Arena report] %s report filed (%s)",
		report.Report.TargetType, reporterName(report))
}

// ReportHTMLBody is the fixed body template. User text is escaped.
func ReportHTMLBody(report *model.ReportFiled) string {
	return fmt.Sprintf(`<h2>A new report was filed.</h2>
<p><strong>Reporter:</strong> %s (%s)</p>
<p><strong>Target type:</strong> %s</p>
<p><strong>Target id:</strong> %s</p>
<p><strong>Reason:</strong><br/>%s</p>
<hr/>
<p>Logos Arena Admin System</p>`,
		html.EscapeString(reporterName(report)),
		html.EscapeString(report.ReporterEmail),
		html.EscapeString(string(report.Report.TargetType)),
		html.EscapeString(report.Report.TargetID),
		html.EscapeString(report.Report.Reason),
	)
}
