package email

import (
	"fmt"

	"jigz_backend/internal/config"
	"jigz_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail.
type SMTPProvider struct {
	dialer    *gomail.Dialer
	from      string
	enabled   bool
	templates *templateStore
}

func NewSMTPProvider() *SMTPProvider {
	cfg := config.GetConfig()

	dialer := gomail.NewDialer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
	)

	from := cfg.Email.FromEmail
	if cfg.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.Email.FromName, cfg.Email.FromEmail)
	}

	return &SMTPProvider{
		dialer:    dialer,
		from:      from,
		enabled:   cfg.Email.Enabled,
		templates: newTemplateStore(),
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if !p.enabled {
		logger.Debug("email sending disabled, skipping", "subject", email.Subject)
		return nil
	}

	message := gomail.NewMessage()
	message.SetHeader("From", p.from)
	message.SetHeader("To", email.To...)
	message.SetHeader("Subject", email.Subject)
	if email.IsHTML {
		message.SetBody("text/html", email.Body)
	} else {
		message.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	body, err := p.templates.Render(templateName, data)
	if err != nil {
		return err
	}

	return p.Send(&Email{
		To:      to,
		Subject: subject,
		Body:    body,
		IsHTML:  true,
	})
}

func (p *SMTPProvider) SendWelcome(to string, username string) error {
	cfg := config.GetConfig()
	return p.SendTemplate([]string{to}, "Добро пожаловать в Jigz", "welcome", TemplateData{
		"Username": username,
		"Coins":    cfg.Coins.UserBaseline,
	})
}

func (p *SMTPProvider) Validate() error {
	cfg := config.GetConfig()
	if !cfg.Email.Enabled {
		return nil
	}
	if cfg.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if cfg.Email.SMTPPort <= 0 || cfg.Email.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", cfg.Email.SMTPPort)
	}
	return nil
}

func (p *SMTPProvider) Close() error {
	return nil
}
