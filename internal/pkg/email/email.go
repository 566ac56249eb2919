package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for outbound email. The production
// deployment points this at a transactional provider; tests swap in a fake.
type EmailService interface {
	SendWelcomeEmail(toEmail, toName string) error
	SendInviteEmail(toEmail, inviterName, customMessage string) error
	SendNewsletterEmail(toEmail, title, htmlBody string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	BaseURL   string
}

// EmailServiceImpl implements EmailService over plain SMTP
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendWelcomeEmail sends a welcome email to a newly registered user
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName string) error {
	if s.devFallback("welcome", toEmail) {
		return nil
	}

	subject := "Welcome to TrashMob.eco!"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to TrashMob.eco!</h2>
				<p>Hello %s,</p>
				<p>Your account is active. Find a cleanup event near you, join a team, or start your own mob.</p>
				<p>Thank you for helping keep your community clean!</p>
				<p>The TrashMob.eco Team</p>
			</div>
		</body>
		</html>
	`, toName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendInviteEmail sends an invitation to join the platform
func (s *EmailServiceImpl) SendInviteEmail(toEmail, inviterName, customMessage string) error {
	if s.devFallback("invite", toEmail) {
		return nil
	}

	subject := fmt.Sprintf("%s invited you to TrashMob.eco", inviterName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">You're invited!</h2>
				<p>%s invited you to join TrashMob.eco, a community of volunteers organizing litter cleanups.</p>
				<p>%s</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Join TrashMob.eco</a>
				</div>
				<p>The TrashMob.eco Team</p>
			</div>
		</body>
		</html>
	`, inviterName, customMessage, s.config.BaseURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendNewsletterEmail sends one newsletter edition to a recipient
func (s *EmailServiceImpl) SendNewsletterEmail(toEmail, title, htmlBody string) error {
	if s.devFallback("newsletter", toEmail) {
		return nil
	}

	return s.sendHTMLEmail(toEmail, title, htmlBody)
}

// devFallback logs instead of sending when SMTP credentials are not
// configured, so local development works without a mail server.
func (s *EmailServiceImpl) devFallback(kind, toEmail string) bool {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("kind", kind).
			Str("toEmail", toEmail).
			Msg("SMTP credentials not configured - email not sent")
		return true
	}
	return false
}

// sendHTMLEmail sends an HTML email over SMTP
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, []byte(message)); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
