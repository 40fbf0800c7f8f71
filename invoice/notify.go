package invoice

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/frooos9199/q8fruits-api/errs"
	"github.com/frooos9199/q8fruits-api/models"
	"github.com/frooos9199/q8fruits-api/pricing"
)

// Mailer sends invoice emails. The SMTP implementation below is the
// production one; tests swap in a fake.
type Mailer interface {
	Send(to, subject, htmlBody string, attachment []byte, filename string) error
}

type smtpMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewSMTPMailer reads SMTP_* env vars. Returns nil when SMTP is not
// configured, which callers treat as "email channel disabled".
func NewSMTPMailer() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return &smtpMailer{
		host: host,
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: os.Getenv("SMTP_FROM"),
	}
}

func (m *smtpMailer) Send(to, subject, htmlBody string, attachment []byte, filename string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	if len(attachment) > 0 {
		msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}
	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return dialer.DialAndSend(msg)
}

// EmailTo renders the invoice and mails it with the PDF attached.
// Failures come back as NotificationError: the order is already
// durable, so callers log and carry on.
func EmailTo(mailer Mailer, order *models.Order, address string) error {
	if mailer == nil {
		return &errs.NotificationError{Channel: "email", Err: fmt.Errorf("smtp not configured")}
	}
	html, err := Render(order, order.Language)
	if err != nil {
		return &errs.NotificationError{Channel: "email", Err: err}
	}
	pdf, err := PDF(order)
	if err != nil {
		return &errs.NotificationError{Channel: "email", Err: err}
	}
	subject := fmt.Sprintf("%s — Invoice %s", brandName, order.OrderNumber)
	if err := mailer.Send(address, subject, html, pdf, Filename(order, "pdf")); err != nil {
		return &errs.NotificationError{Channel: "email", Err: err}
	}
	return nil
}

// WhatsAppLink builds a wa.me deep link carrying an invoice summary.
// Pure; opening the link is the client's job.
func WhatsAppLink(order *models.Order, phone string) string {
	totals := Totals(order)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", brandName)
	fmt.Fprintf(&b, "Order %s — %s\n", order.OrderNumber, order.DisplayDate)
	for _, it := range order.Items {
		line := pricing.Line{UnitPrice: it.UnitPrice, Quantity: it.Quantity}
		fmt.Fprintf(&b, "%d x %s (%s) = %s\n", it.Quantity, it.NameEN, it.UnitLabelEN, pricing.Format(pricing.LineTotal(line)))
	}
	fmt.Fprintf(&b, "Subtotal: %s\nDelivery: %s\nTotal: %s KWD",
		pricing.Format(totals.Subtotal), pricing.Format(totals.Delivery), pricing.Format(totals.Total))

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(b.String()))
}
