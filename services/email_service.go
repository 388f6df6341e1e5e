package services

import (
	"fmt"
	"net/smtp"

	"github.com/sportsbridge/platform/config"
)

// EmailService шлёт уведомления о решениях по заявкам. Отказ SMTP никогда не
// влияет на само решение — вызывающие стороны логируют и продолжают.
type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	if s.cfg.SMTPHost == "" {
		// SMTP не сконфигурирован — уведомления по почте выключены.
		return nil
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	if err := smtp.SendMail(addr, auth, s.cfg.SMTPFrom, to, msg); err != nil {
		return fmt.Errorf("%w: smtp: %v", ErrUpstreamFailure, err)
	}
	return nil
}
