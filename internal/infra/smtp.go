package infra

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Zar-ufo/Pentagon/internal/config"
	"github.com/Zar-ufo/Pentagon/internal/dto"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending report emails.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendLowStockReport mails the low-stock listing as a plain-text table.
func (m *Mailer) SendLowStockReport(to string, report *dto.LowStockResponse) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Low stock report (threshold %d)\n\n", report.Threshold)
	if report.Count == 0 {
		b.WriteString("All products above threshold.\n")
	}
	for _, item := range report.LowStockItems {
		size := ""
		if item.Size != nil {
			size = " " + *item.Size
		}
		fmt.Fprintf(&b, "%-8s %s%s — %d pcs\n", strings.ToUpper(item.Urgency), item.ItemName, size, item.CurrentStock)
	}
	fmt.Fprintf(&b, "\n%d items low, %d critical.\n", report.Count, report.CriticalItems)

	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Low stock report: %d items below %d", report.Count, report.Threshold)
	e.Text = []byte(b.String())

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send report: %w", err)
	}
	return nil
}
