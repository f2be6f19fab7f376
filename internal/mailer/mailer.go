// Package mailer delivers booking decision notifications over SMTP. Email is
// a courtesy side effect: a delivery failure is logged and never propagated
// back into the lifecycle operation that triggered it.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/campusconnect/venue-booking-backend/internal/booking"
)

// Config holds SMTP settings. An empty Host disables real delivery.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer sends decision emails through an SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
	name   string
}

// NewSMTPMailer builds the SMTP client from config.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize smtp client failed: %w", err)
	}
	return &SMTPMailer{
		client: client,
		from:   cfg.From,
		name:   cfg.FromName,
	}, nil
}

// SendDecision emails the requester that their booking was approved or
// rejected.
func (m *SMTPMailer) SendDecision(ctx context.Context, b *booking.Booking, status booking.Status, notes *string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.name, m.from); err != nil {
		return fmt.Errorf("set from address failed: %w", err)
	}
	if err := msg.To(b.RequesterEmail); err != nil {
		return fmt.Errorf("set to address failed: %w", err)
	}
	msg.Subject(fmt.Sprintf("Your booking has been %s", status))
	msg.SetBodyString(mail.TypeTextPlain, decisionBody(b, status, notes))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send decision email failed: %w", err)
	}
	return nil
}

func decisionBody(b *booking.Booking, status booking.Status, notes *string) string {
	venueName := b.ResourceID
	if v, ok := booking.VenueByID(b.ResourceID); ok {
		venueName = v.Name
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hello,\n\n")
	fmt.Fprintf(&sb, "Your booking for %s on %s has been %s.\n\n",
		venueName, b.Date.Format("2006-01-02"), status)
	if notes != nil && *notes != "" {
		fmt.Fprintf(&sb, "Admin notes: %s\n\n", *notes)
	}
	if b.CheckIn != nil && b.CheckOut != nil {
		fmt.Fprintf(&sb, "Stay: %s to %s\n\n",
			b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"))
	} else {
		fmt.Fprintf(&sb, "Time: %s - %s\n\n",
			b.StartAt.Format("15:04"), b.EndAt.Format("15:04"))
	}
	fmt.Fprintf(&sb, "If you have questions, please contact the administration.\n\n")
	fmt.Fprintf(&sb, "Regards,\nCampusConnect Team\n")
	return sb.String()
}

// LogMailer is the fallback used when SMTP is not configured: it logs the
// email instead of sending it, so decisions still succeed in environments
// without a relay.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendDecision(_ context.Context, b *booking.Booking, status booking.Status, notes *string) error {
	logrus.WithFields(logrus.Fields{
		"to":         b.RequesterEmail,
		"booking_id": b.ID,
		"status":     status,
	}).Info("email delivery disabled, decision notification logged only")
	return nil
}
