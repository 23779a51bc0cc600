// Package mail sends the welcome and invoice e-mails over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"inventory/internal/domain/auth"
	"inventory/internal/domain/invoice"
	"inventory/pkg/logger"
)

// implicitTLSPort is the SMTPS port; other ports upgrade with STARTTLS when offered.
const implicitTLSPort = 465

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Attachment is a file attached to a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is one outgoing e-mail.
type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type sendFunc func(ctx context.Context, cfg Config, msg *gomail.Msg) error

// Mailer implements auth.WelcomeNotifier and invoice.Mailer.
type Mailer struct {
	cfg  Config
	send sendFunc
}

var (
	_ auth.WelcomeNotifier = (*Mailer)(nil)
	_ invoice.Mailer       = (*Mailer)(nil)
)

// New creates a mailer for cfg.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, send: sendSMTP}
}

// Send delivers msg.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	out, err := m.compose(msg)
	if err != nil {
		return err
	}
	to := strings.Join(msg.To, ",")
	if err := m.send(ctx, m.cfg, out); err != nil {
		logger.Error(ctx, "email delivery failed", "to", to, "subject", msg.Subject, "error", err)
		return fmt.Errorf("send mail: %w", err)
	}
	logger.Info(ctx, "email sent", "to", to, "subject", msg.Subject)
	return nil
}

// SendWelcome greets a newly registered user.
func (m *Mailer) SendWelcome(ctx context.Context, email, name string) error {
	body := fmt.Sprintf(`<h1>Welcome, %s!</h1>
<p>Thank you for registering with our Inventory Management System.</p>
<p>We're excited to have you on board.</p>
<p>If you have any questions, please don't hesitate to contact our support team.</p>`, html.EscapeString(name))

	return m.Send(ctx, Message{
		To:      []string{email},
		Subject: "Welcome to our Inventory Management System",
		HTML:    body,
	})
}

// SendInvoice mails the rendered invoice as a PDF attachment.
func (m *Mailer) SendInvoice(ctx context.Context, email, name, invoiceNumber string, pdf []byte) error {
	number := html.EscapeString(invoiceNumber)
	body := fmt.Sprintf(`<h1>Invoice #%s</h1>
<p>Dear %s,</p>
<p>Please find attached your invoice #%s.</p>
<p>Thank you for your business!</p>`, number, html.EscapeString(name), number)

	return m.Send(ctx, Message{
		To:      []string{email},
		Subject: "Invoice #" + invoiceNumber,
		HTML:    body,
		Attachments: []Attachment{{
			Filename:    invoice.PDFFilename(invoiceNumber),
			ContentType: "application/pdf",
			Content:     pdf,
		}},
	})
}

func (m *Mailer) compose(msg Message) (*gomail.Msg, error) {
	out := gomail.NewMsg()
	if err := out.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("sender %q: %w", m.cfg.From, err)
	}
	if err := out.To(msg.To...); err != nil {
		return nil, fmt.Errorf("recipients: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	for _, a := range msg.Attachments {
		err := out.AttachReader(a.Filename, bytes.NewReader(a.Content),
			gomail.WithFileContentType(gomail.ContentType(a.ContentType)))
		if err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}
	return out, nil
}

// clientOptions maps cfg onto go-mail client options.
func clientOptions(cfg Config) []gomail.Option {
	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.Port == implicitTLSPort {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Password),
		)
	}
	return opts
}

func sendSMTP(ctx context.Context, cfg Config, msg *gomail.Msg) error {
	client, err := gomail.NewClient(cfg.Host, clientOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("smtp client for %s: %w", cfg.Host, err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
