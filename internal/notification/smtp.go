package notification

import (
	"context"
	"fmt"

	logrus "github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"
)

// SMTPMailer delivers the templated emails over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

func NewSMTPMailer(host string, port int, user, pass, from string, log *logrus.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		log:    log,
	}
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, html, plain string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plain)
	msg.AddAlternative("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.WithFields(logrus.Fields{"to": to, "subject": subject}).
			WithError(err).Error("email send failed")
		return err
	}
	return nil
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, resetLink string) error {
	html, plain := renderPasswordReset(name, resetLink)
	return m.send(ctx, to, "Reset your password", html, plain)
}

func (m *SMTPMailer) SendBookingConfirmed(ctx context.Context, to, name string, bookingID int64, carLabel string, totalPrice float64) error {
	html, plain := renderBookingConfirmed(name, bookingID, carLabel, totalPrice)
	return m.send(ctx, to, fmt.Sprintf("Booking #%d confirmed", bookingID), html, plain)
}

func (m *SMTPMailer) SendBookingStatusChanged(ctx context.Context, to, name string, bookingID int64, newStatus string) error {
	html, plain := renderBookingStatusChanged(name, bookingID, newStatus)
	return m.send(ctx, to, fmt.Sprintf("Booking #%d update", bookingID), html, plain)
}

func (m *SMTPMailer) SendAgencyApproved(ctx context.Context, to, agencyName string) error {
	html, plain := renderAgencyApproved(agencyName)
	return m.send(ctx, to, "Your agency is approved", html, plain)
}

func (m *SMTPMailer) SendAgencyRejected(ctx context.Context, to, agencyName, reason string) error {
	html, plain := renderAgencyRejected(agencyName, reason)
	return m.send(ctx, to, "Your agency application", html, plain)
}

func (m *SMTPMailer) SendNewBookingAlert(ctx context.Context, to, agencyName string, bookingID int64, carLabel string) error {
	html, plain := renderNewBookingAlert(agencyName, bookingID, carLabel)
	return m.send(ctx, to, fmt.Sprintf("New booking #%d", bookingID), html, plain)
}

func (m *SMTPMailer) SendSupportReply(ctx context.Context, to, name string, ticketID int64, subject string) error {
	html, plain := renderSupportReply(name, ticketID, subject)
	return m.send(ctx, to, fmt.Sprintf("Re: %s (ticket #%d)", subject, ticketID), html, plain)
}
