package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridSender struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) Sender {
	return &sendGridSender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridSender) Send(ctx context.Context, ev Event) error {
	to := ev.Payload["contact_email"]
	if to == "" {
		return fmt.Errorf("event for tenant %s has no contact address", ev.TenantID)
	}
	toName := ev.Payload["contact_name"]

	subject, body := renderNotice(ev)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func renderNotice(ev Event) (subject, body string) {
	reason := ev.Payload["reason"]

	switch ev.Type {
	case EventApproval:
		subject = fmt.Sprintf("Your account for %s has been approved", ev.TenantName)
		body = fmt.Sprintf("Hello,\n\nThe account for %s is now active. You can sign in and start working right away.", ev.TenantName)
	case EventRejection:
		subject = fmt.Sprintf("Your application for %s was rejected", ev.TenantName)
		body = fmt.Sprintf("Hello,\n\nThe application for %s has been rejected.", ev.TenantName)
	case EventSuspension:
		subject = fmt.Sprintf("Account status update for %s", ev.TenantName)
		body = fmt.Sprintf("Hello,\n\nThe account for %s has been restricted. Current status: %s.", ev.TenantName, ev.Payload["status"])
		if until := ev.Payload["suspension_expires_at"]; until != "" {
			body += fmt.Sprintf("\n\nThe suspension is scheduled to end on %s.", until)
		}
	case EventReactivation:
		subject = fmt.Sprintf("Your account for %s has been reactivated", ev.TenantName)
		body = fmt.Sprintf("Hello,\n\nThe account for %s is active again.", ev.TenantName)
	case EventDeactivation:
		subject = fmt.Sprintf("Your account for %s has been deactivated", ev.TenantName)
		body = fmt.Sprintf("Hello,\n\nThe account for %s has been marked inactive.", ev.TenantName)
	default:
		subject = fmt.Sprintf("Account status update for %s", ev.TenantName)
		body = fmt.Sprintf("Hello,\n\nThe account for %s has a new status: %s.", ev.TenantName, ev.Payload["status"])
	}

	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe BizDesk Team"
	return subject, body
}
