package notify

import (
	"context"

	"github.com/Luismorlan/logosarena/model"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
	"github.com/pkg/errors"
)

const charset = "UTF-8"

// EmailNotifier mails report notifications to the admin address through SES.
type EmailNotifier struct {
	svc        sesiface.SESAPI
	sender     string
	adminEmail string
}

func NewEmailNotifier(svc sesiface.SESAPI, sender string, adminEmail string) *EmailNotifier {
	return &EmailNotifier{svc: svc, sender: sender, adminEmail: adminEmail}
}

func (n *EmailNotifier) NotifyReport(ctx context.Context, report *model.ReportFiled) error {
	_, err := n.svc.SendEmailWithContext(ctx, &ses.SendEmailInput{
		Source: aws.String(n.sender),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(n.adminEmail)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{
				Charset: aws.String(charset),
				Data:    aws.String(ReportSubject(report)),
			},
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String(charset),
					Data:    aws.String(ReportHTMLBody(report)),
				},
			},
		},
	})
	return errors.Wrap(err, "send report email")
}
