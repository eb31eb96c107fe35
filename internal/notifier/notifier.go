// Package notifier mengirim kabar kondisi resident ke wali.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Alert struct {
	To           string
	GuardianName string
	ResidentName string
	ResidentCode string
	Activity     string
	Condition    string
	RecordedAt   string
	Notes        string
}

type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type MailNotifier struct {
	sender Sender
	from   string
	log    *zap.Logger
}

func NewMailNotifier(cfg MailConfig, log *zap.Logger) *MailNotifier {
	return &MailNotifier{
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

// NewMailNotifierWithSender dipakai bila pengiriman perlu diganti (mis. di test).
func NewMailNotifierWithSender(sender Sender, from string, log *zap.Logger) *MailNotifier {
	return &MailNotifier{sender: sender, from: from, log: log}
}

func (n *MailNotifier) NotifyGuardian(ctx context.Context, alert Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", alert.To)
	m.SetHeader("Subject", fmt.Sprintf("Kabar kondisi %s", alert.ResidentName))
	m.SetBody("text/plain", Body(alert))

	// gomail tidak menerima context; pengiriman ditinggal bila ctx habis
	done := make(chan error, 1)
	go func() { done <- n.sender.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("kirim email ke %s: %w", alert.To, err)
		}
	case <-ctx.Done():
		return fmt.Errorf("kirim email ke %s: %w", alert.To, ctx.Err())
	}
	n.log.Info("notifikasi wali terkirim",
		zap.String("to", alert.To),
		zap.String("resident_id", alert.ResidentCode),
	)
	return nil
}

func Body(a Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Yth. %s,\n\n", a.GuardianName)
	fmt.Fprintf(&b, "Kami informasikan bahwa kondisi %s (%s) pada %s tercatat: %s.\n",
		a.ResidentName, a.ResidentCode, a.RecordedAt, a.Condition)
	if a.Activity != "" {
		fmt.Fprintf(&b, "Kegiatan: %s\n", a.Activity)
	}
	if a.Notes != "" {
		fmt.Fprintf(&b, "Catatan petugas: %s\n", a.Notes)
	}
	b.WriteString("\nSilakan hubungi pengurus panti untuk informasi lebih lanjut.\n")
	return b.String()
}

// Nop dipakai bila SMTP tidak dikonfigurasi.
type Nop struct{}

func (Nop) NotifyGuardian(context.Context, Alert) error { return nil }
